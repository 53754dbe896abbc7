package sndfile

import (
	"errors"
	"fmt"
	"sync"
)

// MaxOpenFiles is the default capacity of a Table.
const MaxOpenFiles = 64

// Table is a fixed-capacity registry of open handles. Each slot is either
// empty or holds one live handle. A Table is safe for concurrent use; the
// handles it holds are not. The zero Table has no slots; use NewTable.
type Table struct {
	mtx   sync.Mutex
	slots []*Handle
}

// NewTable returns an initialized table with capacity slots. A non-positive
// capacity selects MaxOpenFiles.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = MaxOpenFiles
	}

	return &Table{slots: make([]*Handle, capacity)}
}

// Init empties every slot. Live handles are dropped without being released;
// call Finish first to tear them down.
func (t *Table) Init() {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	clear(t.slots)
}

// Cap returns the number of slots.
func (t *Table) Cap() int { return len(t.slots) }

// Len returns the number of live slots.
func (t *Table) Len() int {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	n := 0

	for _, h := range t.slots {
		if h != nil {
			n++
		}
	}

	return n
}

// Register stores h in the lowest empty slot and returns its index. A full
// table rejects the handle with ErrTableFull; live handles are never evicted.
func (t *Table) Register(h *Handle) (int, error) {
	if h == nil {
		return -1, ErrNilHandle
	}

	t.mtx.Lock()
	defer t.mtx.Unlock()

	free := -1

	for i, live := range t.slots {
		if live == h {
			return i, fmt.Errorf("%w: slot %d", ErrHandleRegistered, i)
		}

		if live == nil && free < 0 {
			free = i
		}
	}

	if free < 0 {
		return -1, fmt.Errorf("%w: %d slots", ErrTableFull, len(t.slots))
	}

	t.slots[free] = h

	return free, nil
}

// Handle returns the live handle in slot.
func (t *Table) Handle(slot int) (*Handle, error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if slot < 0 || slot >= len(t.slots) || t.slots[slot] == nil {
		return nil, fmt.Errorf("%w: %d", ErrBadSlot, slot)
	}

	return t.slots[slot], nil
}

// Release tears down the handle in slot and empties the slot. The slot is
// emptied even if closing the stream fails.
func (t *Table) Release(slot int) error {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if slot < 0 || slot >= len(t.slots) || t.slots[slot] == nil {
		return fmt.Errorf("%w: %d", ErrBadSlot, slot)
	}

	h := t.slots[slot]
	t.slots[slot] = nil

	return ReleaseHandle(h)
}

// Finish releases every live handle and empties the table. Every slot is
// visited; close errors are joined.
func (t *Table) Finish() error {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	var errs []error

	for i, h := range t.slots {
		if h == nil {
			continue
		}

		if err := ReleaseHandle(h); err != nil {
			errs = append(errs, fmt.Errorf("slot %d: %w", i, err))
		}

		t.slots[i] = nil
	}

	return errors.Join(errs...)
}

// ReleaseHandle frees what h owns: it closes the stream, clears the name and
// drops the peak buffer. Absent resources are skipped, so it is safe on
// partially built handles and a second call does nothing.
func ReleaseHandle(h *Handle) error {
	if h == nil {
		return nil
	}

	var err error
	if h.stream != nil {
		err = h.stream.close()
	}

	if h.name != "" {
		h.name = ""
	}

	if h.peaks != nil {
		h.peaks = nil
	}

	return err
}
