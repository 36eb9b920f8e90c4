package xcmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/xcmd"
)

type otherCommand struct {
	Name string `json:"name"`
}

func (otherCommand) Kind() string { return "other" }

func TestRegistry_OneBusPerKind(t *testing.T) {
	reg := xcmd.NewRegistry()
	bus := xcmd.NewBus[testCommand]()

	require.NoError(t, reg.RegisterBus("test", bus))

	err := reg.RegisterBus("test", xcmd.NewBus[testCommand]())
	require.Error(t, err)
	assert.ErrorContains(t, err, "already registered")
}

func TestRegistry_TypeErasedAccess(t *testing.T) {
	reg := xcmd.NewRegistry()
	testBus := xcmd.NewBus[testCommand]()
	otherBus := xcmd.NewBus[otherCommand]()

	require.NoError(t, reg.RegisterBus("test", testBus))
	require.NoError(t, reg.RegisterBus("other", otherBus))

	testBus.Send(testCommand{Value: 1})
	testBus.Send(testCommand{Value: 2})
	otherBus.Send(otherCommand{Name: "a"})

	assert.Equal(t, 3, reg.Pending())
	assert.ElementsMatch(t, []string{"test", "other"}, reg.Kinds())

	q, ok := reg.Bus("test")
	require.True(t, ok)
	assert.Equal(t, 2, q.Len())

	_, ok = reg.Bus("missing")
	assert.False(t, ok)
}

func TestRegistry_ClearAll(t *testing.T) {
	reg := xcmd.NewRegistry()
	testBus := xcmd.NewBus[testCommand]()
	otherBus := xcmd.NewBus[otherCommand]()

	require.NoError(t, reg.RegisterBus("test", testBus))
	require.NoError(t, reg.RegisterBus("other", otherBus))

	testBus.Send(testCommand{Value: 1})
	otherBus.Send(otherCommand{Name: "a"})

	reg.ClearAll()
	assert.Equal(t, 0, reg.Pending())
	assert.True(t, testBus.IsEmpty())
	assert.True(t, otherBus.IsEmpty())
}

func TestRegistry_Logs(t *testing.T) {
	reg := xcmd.NewRegistry()
	log := xcmd.NewLog[testCommand]()

	require.NoError(t, reg.RegisterLog("test", log))
	require.Error(t, reg.RegisterLog("test", xcmd.NewLog[testCommand]()))

	log.LogSuccess(testCommand{Value: 1}, makeMeta(1))

	trail, ok := reg.Log("test")
	require.True(t, ok)
	assert.Equal(t, 1, trail.Len())
}
