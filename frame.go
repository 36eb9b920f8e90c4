package xcmd

import "sync"

// FrameCounter tracks the logical frame number for a running session.
//
// The host loop ticks it exactly once per frame and pushes the value into
// each bus via SetFrame. One instance per session, passed explicitly; it
// is not a hidden singleton.
type FrameCounter struct {
	mu    sync.Mutex
	frame uint64
}

// NewFrameCounter creates a counter at frame 0.
func NewFrameCounter() *FrameCounter {
	return &FrameCounter{}
}

// Tick advances to the next frame and returns it.
func (f *FrameCounter) Tick() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frame++
	return f.frame
}

// Current returns the current frame number.
func (f *FrameCounter) Current() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame
}
