package memory

// WordMemory stores one 16-bit word per cell. The high byte of a cell
// holds the even address, so byte-level access sees the same layout as ByteMemory.
type WordMemory []uint16

// NewWords allocates a word-backed address space of full capacity.
func NewWords() WordMemory {
	return make(WordMemory, Capacity/2)
}

// Size returns the number of addressable bytes.
func (m WordMemory) Size() uint32 {
	return uint32(len(m)) * 2
}

func (m WordMemory) byteAt(addr uint32) uint8 {
	cell := m[addr>>1]
	if addr&1 == 0 {
		return uint8(cell >> 8)
	}
	return uint8(cell)
}

func (m WordMemory) setByte(addr uint32, v uint8) {
	cell := &m[addr>>1]
	if addr&1 == 0 {
		*cell = *cell&0x00FF | uint16(v)<<8
	} else {
		*cell = *cell&0xFF00 | uint16(v)
	}
}

// ReadU8 reads a single byte.
func (m WordMemory) ReadU8(addr uint32) (uint8, error) {
	if err := check("read", addr, 1, m.Size()); err != nil {
		return 0, err
	}
	return m.byteAt(addr), nil
}

// ReadU16 reads a big-endian 16-bit word. Odd addresses straddle two cells.
func (m WordMemory) ReadU16(addr uint32) (uint16, error) {
	if err := check("read", addr, 2, m.Size()); err != nil {
		return 0, err
	}
	if addr&1 == 0 {
		return m[addr>>1], nil
	}
	return uint16(m.byteAt(addr))<<8 | uint16(m.byteAt(addr+1)), nil
}

// ReadU32 reads a big-endian 32-bit long word.
func (m WordMemory) ReadU32(addr uint32) (uint32, error) {
	if err := check("read", addr, 4, m.Size()); err != nil {
		return 0, err
	}
	var v uint32
	for i := range uint32(4) {
		v = v<<8 | uint32(m.byteAt(addr+i))
	}
	return v, nil
}

// WriteU8 writes a single byte.
func (m WordMemory) WriteU8(addr uint32, v uint8) error {
	if err := check("write", addr, 1, m.Size()); err != nil {
		return err
	}
	m.setByte(addr, v)
	return nil
}

// WriteU16 writes a big-endian 16-bit word.
func (m WordMemory) WriteU16(addr uint32, v uint16) error {
	if err := check("write", addr, 2, m.Size()); err != nil {
		return err
	}
	if addr&1 == 0 {
		m[addr>>1] = v
		return nil
	}
	m.setByte(addr, uint8(v>>8))
	m.setByte(addr+1, uint8(v))
	return nil
}

// WriteU32 writes a big-endian 32-bit long word.
func (m WordMemory) WriteU32(addr uint32, v uint32) error {
	if err := check("write", addr, 4, m.Size()); err != nil {
		return err
	}
	for i := range uint32(4) {
		m.setByte(addr+i, uint8(v>>(24-8*i)))
	}
	return nil
}
