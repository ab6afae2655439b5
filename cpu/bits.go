package cpu

// opBit handles BTST, BCHG, BCLR and BSET. Data registers are addressed as
// longs with the bit number taken modulo 32, memory as bytes modulo 8.
func (c *CPU) opBit(i Instruction) error {
	n, err := c.load(i.Src, SizeLong)
	if err != nil {
		return err
	}

	size, width := SizeByte, uint32(8)
	if _, ok := i.Dst.(DataRegister); ok {
		size, width = SizeLong, 32
	}
	bit := uint32(1) << (n % width)

	o, err := c.resolve(i.Dst, size)
	if err != nil {
		return err
	}
	v, err := c.get(o, size)
	if err != nil {
		return err
	}

	c.setFlag(SRZ, v&bit == 0)
	switch i.Op {
	case OpBCHG:
		v ^= bit
	case OpBCLR:
		v &^= bit
	case OpBSET:
		v |= bit
	default:
		return nil
	}
	return c.put(o, size, v)
}
