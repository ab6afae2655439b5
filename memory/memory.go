// Package memory provides the address space the CPU core runs against.
package memory

import (
	"errors"
	"fmt"
)

// Capacity is the size of a full machine address space in bytes.
const Capacity = 0x50_0000

var (
	// ErrOutOfBounds is returned for any access that extends past the end of memory.
	ErrOutOfBounds = errors.New("address out of bounds")
	// ErrMisaligned is returned when instruction words are fetched from an odd address.
	ErrMisaligned = errors.New("misaligned instruction fetch")
)

// Memory is a big-endian, bounds-checked address space.
type Memory interface {
	ReadU8(addr uint32) (uint8, error)
	ReadU16(addr uint32) (uint16, error)
	ReadU32(addr uint32) (uint32, error)
	WriteU8(addr uint32, v uint8) error
	WriteU16(addr uint32, v uint16) error
	WriteU32(addr uint32, v uint32) error
	// Size returns the number of addressable bytes.
	Size() uint32
}

// AccessError describes a failed memory access.
type AccessError struct {
	Op    string
	Addr  uint32
	Width int
	Err   error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s %d byte(s) at $%08X: %v", e.Op, e.Width, e.Addr, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// check verifies that width bytes starting at addr fit in size bytes.
func check(op string, addr uint32, width int, size uint32) error {
	if uint64(addr)+uint64(width) > uint64(size) {
		return &AccessError{Op: op, Addr: addr, Width: width, Err: ErrOutOfBounds}
	}
	return nil
}

// Load copies a raw image into memory starting at addr.
// Nothing is written unless the whole image fits.
func Load(m Memory, addr uint32, image []byte) error {
	if err := check("load", addr, len(image), m.Size()); err != nil {
		return err
	}

	for i, b := range image {
		if err := m.WriteU8(addr+uint32(i), b); err != nil {
			return err
		}
	}
	return nil
}
