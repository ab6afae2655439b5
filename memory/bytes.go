package memory

import "encoding/binary"

// ByteMemory stores one byte per cell.
type ByteMemory []byte

// New allocates a byte-backed address space of full capacity.
func New() ByteMemory {
	return make(ByteMemory, Capacity)
}

// Size returns the length of the backing slice.
func (m ByteMemory) Size() uint32 {
	return uint32(len(m))
}

// ReadU8 reads a single byte.
func (m ByteMemory) ReadU8(addr uint32) (uint8, error) {
	if err := check("read", addr, 1, m.Size()); err != nil {
		return 0, err
	}
	return m[addr], nil
}

// ReadU16 reads a big-endian 16-bit word.
func (m ByteMemory) ReadU16(addr uint32) (uint16, error) {
	if err := check("read", addr, 2, m.Size()); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(m[addr:]), nil
}

// ReadU32 reads a big-endian 32-bit long word.
func (m ByteMemory) ReadU32(addr uint32) (uint32, error) {
	if err := check("read", addr, 4, m.Size()); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(m[addr:]), nil
}

// WriteU8 writes a single byte.
func (m ByteMemory) WriteU8(addr uint32, v uint8) error {
	if err := check("write", addr, 1, m.Size()); err != nil {
		return err
	}
	m[addr] = v
	return nil
}

// WriteU16 writes a big-endian 16-bit word.
func (m ByteMemory) WriteU16(addr uint32, v uint16) error {
	if err := check("write", addr, 2, m.Size()); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(m[addr:], v)
	return nil
}

// WriteU32 writes a big-endian 32-bit long word.
func (m ByteMemory) WriteU32(addr uint32, v uint32) error {
	if err := check("write", addr, 4, m.Size()); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(m[addr:], v)
	return nil
}
