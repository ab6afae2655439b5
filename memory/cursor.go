package memory

import (
	"fmt"
	"iter"
)

// Cursor walks instruction words forward from a starting address.
type Cursor struct {
	mem  Memory
	next uint32
}

// NewCursor returns a cursor positioned at addr.
func NewCursor(m Memory, addr uint32) *Cursor {
	return &Cursor{mem: m, next: addr}
}

// Addr returns the address the next word will be read from.
func (c *Cursor) Addr() uint32 {
	return c.next
}

// Next reads the word at the cursor and advances by two bytes.
// The cursor does not move when the read fails.
func (c *Cursor) Next() (uint16, error) {
	if c.next&1 != 0 {
		return 0, fmt.Errorf("fetch at $%08X: %w", c.next, ErrMisaligned)
	}

	w, err := c.mem.ReadU16(c.next)
	if err != nil {
		return 0, err
	}

	c.next += 2
	return w, nil
}

// Words yields address and word pairs starting at addr until memory runs
// out or the start is misaligned.
func Words(m Memory, addr uint32) iter.Seq2[uint32, uint16] {
	return func(yield func(uint32, uint16) bool) {
		c := NewCursor(m, addr)
		for {
			at := c.Addr()
			w, err := c.Next()
			if err != nil || !yield(at, w) {
				return
			}
		}
	}
}
