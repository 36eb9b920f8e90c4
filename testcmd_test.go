package xcmd_test

import (
	"github.com/trickstertwo/xcmd"
)

// testCommand is a sample domain command for testing.
type testCommand struct {
	Value int `json:"value"`
}

func (testCommand) Kind() string { return "test" }

// makeMeta builds metadata with the frame equal to the id, mirroring how
// fixtures are stamped throughout these tests.
func makeMeta(id uint64) xcmd.Meta {
	return xcmd.NewMeta(xcmd.ID(id), 1000).WithFrame(id)
}
