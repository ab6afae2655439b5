package cpu

// opBCD handles ABCD, SBCD and NBCD on packed decimal bytes.
func (c *CPU) opBCD(i Instruction) error {
	var src uint32
	if i.Op != OpNBCD {
		var err error
		if src, err = c.load(i.Src, SizeByte); err != nil {
			return err
		}
	}

	o, err := c.resolve(i.Dst, SizeByte)
	if err != nil {
		return err
	}
	dst, err := c.get(o, SizeByte)
	if err != nil {
		return err
	}

	var x uint32
	if c.flag(SRX) {
		x = 1
	}

	var res uint32
	var carry bool
	switch i.Op {
	case OpABCD:
		res, carry = bcdAdd(dst, src, x)
	case OpSBCD:
		res, carry = bcdSub(dst, src, x)
	default:
		res, carry = bcdSub(0, dst, x)
	}

	c.setFlag(SRC, carry)
	c.setFlag(SRX, carry)
	c.setFlag(SRN, res&0x80 != 0)
	if res != 0 {
		c.SR &^= SRZ
	}
	return c.put(o, SizeByte, res)
}

// bcdAdd returns d + s + x in packed decimal and the decimal carry.
func bcdAdd(d, s, x uint32) (uint32, bool) {
	res := d&0x0F + s&0x0F + x
	if res > 9 {
		res += 6
	}
	res += d&0xF0 + s&0xF0
	carry := res > 0x99
	if carry {
		res -= 0xA0
	}
	return res & 0xFF, carry
}

// bcdSub returns d - s - x in packed decimal and the decimal borrow.
func bcdSub(d, s, x uint32) (uint32, bool) {
	lo := int(d&0x0F) - int(s&0x0F) - int(x)
	hi := int(d&0xF0) - int(s&0xF0)
	if lo < 0 {
		lo += 10
		hi -= 0x10
	}

	res := hi + lo
	borrow := hi < 0
	if borrow {
		res += 0xA0
	}
	return uint32(res) & 0xFF, borrow
}
