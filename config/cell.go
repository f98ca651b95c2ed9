package config

import "sync/atomic"

// State describes whether a Cell has been populated.
type State int

const (
	// StateEmpty means no store has been published yet.
	StateEmpty State = iota
	// StatePopulated means a store has been published and is read-only.
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// Cell is a write-once holder for a Store.
// The zero value is empty and ready to use.
type Cell struct {
	store atomic.Pointer[Store]
}

// Set publishes store if the cell is empty.
// Racing callers observe exactly one success; the others get ErrAlreadyInitialized.
func (c *Cell) Set(store *Store) error {
	if !c.store.CompareAndSwap(nil, store) {
		return ErrAlreadyInitialized
	}

	return nil
}

// Get returns the published store.
func (c *Cell) Get() (*Store, bool) {
	store := c.store.Load()

	return store, store != nil
}

// State reports whether the cell is populated.
func (c *Cell) State() State {
	if c.store.Load() == nil {
		return StateEmpty
	}

	return StatePopulated
}
