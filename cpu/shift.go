package cpu

// opShift handles the arithmetic, logical and rotate instructions. The
// memory form has no source and shifts by one. A register count is taken
// modulo 64.
func (c *CPU) opShift(i Instruction) error {
	count := uint32(1)
	if i.Src != nil {
		n, err := c.load(i.Src, SizeLong)
		if err != nil {
			return err
		}
		count = n % 64
	}

	o, err := c.resolve(i.Dst, i.Size)
	if err != nil {
		return err
	}
	v, err := c.get(o, i.Size)
	if err != nil {
		return err
	}

	mask, msb := i.Size.Mask(), i.Size.MSB()
	x := c.flag(SRX)
	var carry, over bool
	for range count {
		switch i.Op {
		case OpASL, OpLSL:
			carry = v&msb != 0
			v = v << 1 & mask
			if i.Op == OpASL && (v&msb != 0) != carry {
				over = true
			}
			x = carry
		case OpASR:
			carry = v&1 != 0
			v = v>>1 | v&msb
			x = carry
		case OpLSR:
			carry = v&1 != 0
			v >>= 1
			x = carry
		case OpROL:
			carry = v&msb != 0
			v = v << 1 & mask
			if carry {
				v |= 1
			}
		case OpROR:
			carry = v&1 != 0
			v >>= 1
			if carry {
				v |= msb
			}
		case OpROXL:
			carry = v&msb != 0
			v = v << 1 & mask
			if x {
				v |= 1
			}
			x = carry
		case OpROXR:
			carry = v&1 != 0
			v >>= 1
			if x {
				v |= msb
			}
			x = carry
		}
	}

	rox := i.Op == OpROXL || i.Op == OpROXR
	if count == 0 && rox {
		carry = x
	}
	c.setNZ(v, i.Size)
	c.setFlag(SRV, over)
	c.setFlag(SRC, carry)
	if i.Op != OpROL && i.Op != OpROR {
		c.setFlag(SRX, x)
	}
	return c.put(o, i.Size, v)
}
