// Package propstore implements the read-only Netpbm property provider: a
// fixed five-slot property table bound once from an image stream, the
// provider object that exposes it, and the class factory that builds
// providers for the server.
package propstore

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/teamcharls/netpbm-wic/pkg/types"
)

// Capacity is the number of slots in every property table.
const Capacity = 5

// Schema is the ordered key set of a bound table. GetAt returns keys in
// this order.
var Schema = [Capacity]types.PropertyKey{
	types.KeyImageHorizontalSize,
	types.KeyImageVerticalSize,
	types.KeyImageHorizontalResolution,
	types.KeyImageVerticalResolution,
	types.KeyImageBitDepth,
}

// Table states. The only transitions are
// uninitialized -> binding -> initialized and binding -> uninitialized
// when the value source fails.
const (
	stateUninitialized int32 = iota
	stateBinding
	stateInitialized
)

// Table is a fixed-capacity ordered property store with an initialization
// gate. Bind is the single writer; once it publishes the initialized
// state the slots never change and any number of readers may run.
type Table struct {
	state   atomic.Int32
	records [Capacity]types.PropertyRecord
	source  ValueSource
}

// NewTable returns an unbound table that takes its values from source.
// A nil source uses PlaceholderSource.
func NewTable(source ValueSource) *Table {
	if source == nil {
		source = PlaceholderSource
	}
	return &Table{source: source}
}

// Bind fills the slots with the schema keys and the values the source
// reports for stream, then marks the table initialized. Keys the source
// does not report hold the empty value; keys outside the schema are
// dropped.
//
// Returns ErrAlreadyInitialized if the table is bound or being bound, and
// an error wrapping ErrStreamUnreadable if the source fails. A failed Bind
// leaves the table unbound.
func (t *Table) Bind(stream io.Reader) error {
	if !t.state.CompareAndSwap(stateUninitialized, stateBinding) {
		return types.ErrAlreadyInitialized
	}

	values, err := t.source.Values(stream)
	if err != nil {
		t.state.Store(stateUninitialized)
		return fmt.Errorf("%w: %w", types.ErrStreamUnreadable, err)
	}

	for i, key := range Schema {
		v, ok := values[key]
		if !ok {
			v = types.EmptyValue()
		}
		t.records[i] = types.PropertyRecord{Key: key, Value: v}
	}

	t.state.Store(stateInitialized)
	return nil
}

// Initialized reports whether Bind has succeeded.
func (t *Table) Initialized() bool {
	return t.state.Load() == stateInitialized
}

// Count returns zero until the table is bound, then Capacity.
func (t *Table) Count() uint32 {
	if !t.Initialized() {
		return 0
	}
	return Capacity
}

// KeyAt returns the key in slot index. Returns ErrInvalidArgument when the
// table is unbound or index >= Count().
func (t *Table) KeyAt(index uint32) (types.PropertyKey, error) {
	if index >= t.Count() {
		return types.PropertyKey{}, types.ErrInvalidArgument
	}
	return t.records[index].Key, nil
}

// Value returns the value stored under key, or the empty value when the
// key is absent or the table is unbound.
func (t *Table) Value(key types.PropertyKey) types.Value {
	if !t.Initialized() {
		return types.EmptyValue()
	}
	for _, r := range t.records {
		if r.Key == key {
			return r.Value
		}
	}
	return types.EmptyValue()
}

// Records returns a copy of the bound records, nil while unbound.
func (t *Table) Records() []types.PropertyRecord {
	if !t.Initialized() {
		return nil
	}
	out := make([]types.PropertyRecord, Capacity)
	copy(out, t.records[:])
	return out
}
