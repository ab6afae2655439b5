package cpu

import "fmt"

// read reads from memory at the given size.
func (c *CPU) read(addr uint32, size Size) (uint32, error) {
	switch size {
	case SizeByte:
		v, err := c.Mem.ReadU8(addr)
		return uint32(v), err
	case SizeWord:
		v, err := c.Mem.ReadU16(addr)
		return uint32(v), err
	}
	return c.Mem.ReadU32(addr)
}

// write writes to memory, remembering the old contents so a faulting
// instruction can be undone.
func (c *CPU) write(addr uint32, size Size, v uint32) error {
	old, err := c.read(addr, size)
	if err == nil {
		c.undo = append(c.undo, undoEntry{addr: addr, size: size, old: old})
	}
	return c.writeRaw(addr, size, v)
}

func (c *CPU) writeRaw(addr uint32, size Size, v uint32) error {
	switch size {
	case SizeByte:
		return c.Mem.WriteU8(addr, uint8(v))
	case SizeWord:
		return c.Mem.WriteU16(addr, uint16(v))
	}
	return c.Mem.WriteU32(addr, v)
}

func (c *CPU) push32(v uint32) error {
	sp := c.A[7] - 4
	if err := c.write(sp, SizeLong, v); err != nil {
		return err
	}
	c.A[7] = sp
	return nil
}

func (c *CPU) push16(v uint16) error {
	sp := c.A[7] - 2
	if err := c.write(sp, SizeWord, uint32(v)); err != nil {
		return err
	}
	c.A[7] = sp
	return nil
}

func (c *CPU) pop32() (uint32, error) {
	v, err := c.read(c.A[7], SizeLong)
	if err != nil {
		return 0, err
	}
	c.A[7] += 4
	return v, nil
}

func (c *CPU) pop16() (uint16, error) {
	v, err := c.read(c.A[7], SizeWord)
	if err != nil {
		return 0, err
	}
	c.A[7] += 2
	return uint16(v), nil
}

// setNZ updates the N and Z flags in the SR based on a value and operation size.
func (c *CPU) setNZ(value uint32, size Size) {
	c.setFlag(SRZ, value&size.Mask() == 0)
	c.setFlag(SRN, value&size.MSB() != 0)
}

// setLogical sets N and Z from the result and clears V and C.
func (c *CPU) setLogical(value uint32, size Size) {
	c.setNZ(value, size)
	c.SR &^= SRV | SRC
}

// setFlagsArith sets N, Z, V and C for result = dst + src, or dst - src
// when sub is set. X is left to the caller.
func (c *CPU) setFlagsArith(src, dst, result uint32, size Size, sub bool) {
	msb := size.MSB()
	s, d, r := src&msb != 0, dst&msb != 0, result&msb != 0

	var carry, over bool
	if sub {
		carry = (s && !d) || (r && !d) || (s && r)
		over = (!s && d && !r) || (s && !d && r)
	} else {
		carry = (s && d) || (!r && d) || (!r && s)
		over = (s && d && !r) || (!s && !d && r)
	}

	c.setNZ(result, size)
	c.setFlag(SRV, over)
	c.setFlag(SRC, carry)
}

// setExtend copies C into X.
func (c *CPU) setExtend() {
	c.setFlag(SRX, c.flag(SRC))
}

// keepZero implements the multi-precision Z rule: a zero result leaves Z as
// it was, anything else clears it.
func (c *CPU) keepZero(was bool, result uint32, size Size) {
	if result&size.Mask() == 0 {
		c.setFlag(SRZ, was)
	}
}

// privileged fails unless the processor is in supervisor state.
func (c *CPU) privileged(i Instruction) error {
	if !c.Supervisor() {
		return fmt.Errorf("%s: %w", i.Mnemonic(), ErrPrivilegeViolation)
	}
	return nil
}
