// Package com implements the object lifecycle shared by every class this
// server hands out: per-object reference counts and the module-wide
// outstanding-instance and lock counters that decide whether the host may
// unload the module.
package com

import (
	"sync/atomic"

	"github.com/teamcharls/netpbm-wic/pkg/types"
)

// Module tracks live objects and server locks for one loaded module.
// All methods are safe for concurrent use.
type Module struct {
	instances atomic.Int64
	locks     atomic.Int64
}

// NewModule returns a Module with no outstanding objects.
func NewModule() *Module {
	return &Module{}
}

// Acquire records a newly constructed object.
func (m *Module) Acquire() {
	m.instances.Add(1)
}

// Done records the destruction of an object counted by Acquire.
func (m *Module) Done() {
	m.instances.Add(-1)
}

// Instances returns the number of live objects.
func (m *Module) Instances() int64 {
	return m.instances.Load()
}

// Lock increments or decrements the server lock count.
// Unlocking an unlocked module returns ErrInvalidArgument.
func (m *Module) Lock(lock bool) error {
	if lock {
		m.locks.Add(1)
		return nil
	}
	for {
		n := m.locks.Load()
		if n == 0 {
			return types.ErrInvalidArgument
		}
		if m.locks.CompareAndSwap(n, n-1) {
			return nil
		}
	}
}

// Locks returns the current server lock count.
func (m *Module) Locks() int64 {
	return m.locks.Load()
}

// CanUnloadNow reports whether no object is alive and no lock is held.
func (m *Module) CanUnloadNow() bool {
	return m.instances.Load() == 0 && m.locks.Load() == 0
}
