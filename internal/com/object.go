package com

import "sync/atomic"

// RefCount is an atomic reference count embedded by server objects.
// A RefCount starts with one reference held by its constructor.
type RefCount struct {
	refs atomic.Int32
	// final runs once, when the count drops to zero.
	final func()
}

// Init sets the count to one and installs the final-release hook.
func (r *RefCount) Init(final func()) {
	r.refs.Store(1)
	r.final = final
}

// AddRef adds a reference and returns the new count.
func (r *RefCount) AddRef() uint32 {
	return uint32(r.refs.Add(1))
}

// Release drops a reference and returns the remaining count. Releasing a
// dead object is a no-op that returns zero.
func (r *RefCount) Release() uint32 {
	for {
		n := r.refs.Load()
		if n <= 0 {
			return 0
		}
		if r.refs.CompareAndSwap(n, n-1) {
			if n == 1 && r.final != nil {
				r.final()
			}
			return uint32(n - 1)
		}
	}
}

// Count returns the current reference count.
func (r *RefCount) Count() uint32 {
	return uint32(r.refs.Load())
}

// Track initializes r and counts the owning object in m until its final
// release. If m is nil the object is not counted.
func (r *RefCount) Track(m *Module) {
	if m == nil {
		r.Init(nil)
		return
	}
	m.Acquire()
	r.Init(m.Done)
}
