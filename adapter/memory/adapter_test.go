package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/xcmd"
)

func TestSink_CapturesAppends(t *testing.T) {
	s := NewSink(Config{})

	require.NoError(t, s.Append([]byte("one")))
	require.NoError(t, s.Append([]byte("two")))

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "one", string(lines[0]))
	assert.Equal(t, "two", string(lines[1]))
}

func TestSink_MaxLinesDropsOldest(t *testing.T) {
	s := NewSink(Config{MaxLines: 2})

	require.NoError(t, s.Append([]byte("a")))
	require.NoError(t, s.Append([]byte("b")))
	require.NoError(t, s.Append([]byte("c")))

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "b", string(lines[0]))
	assert.Equal(t, "c", string(lines[1]))
}

func TestSink_ClosedRejectsAppends(t *testing.T) {
	s := NewSink(Config{})
	require.NoError(t, s.Close())
	assert.Error(t, s.Append([]byte("x")))
}

func TestSink_RegisteredFactory(t *testing.T) {
	sink, err := xcmd.NewSink(SinkName, map[string]any{"max_lines": 10})
	require.NoError(t, err)

	ms, ok := sink.(*Sink)
	require.True(t, ok)
	require.NoError(t, ms.Append([]byte("x")))
	assert.Equal(t, 1, ms.Len())
}
