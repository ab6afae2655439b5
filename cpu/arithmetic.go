package cpu

import "math"

// opADD handles ADD, ADDI and ADDQ and the matching SUB forms.
func (c *CPU) opADD(i Instruction) error {
	sub := i.Op == OpSUB || i.Op == OpSUBI || i.Op == OpSUBQ
	src, err := c.load(i.Src, i.Size)
	if err != nil {
		return err
	}

	// Quick arithmetic on an address register uses the whole register and
	// leaves the flags alone.
	if an, ok := i.Dst.(AddressRegister); ok {
		if sub {
			c.A[an&7] -= src
		} else {
			c.A[an&7] += src
		}
		return nil
	}

	o, err := c.resolve(i.Dst, i.Size)
	if err != nil {
		return err
	}
	dst, err := c.get(o, i.Size)
	if err != nil {
		return err
	}

	res := dst + src
	if sub {
		res = dst - src
	}
	res &= i.Size.Mask()
	c.setFlagsArith(src, dst, res, i.Size, sub)
	c.setExtend()
	return c.put(o, i.Size, res)
}

// opADDA handles ADDA and SUBA. Word sources are sign-extended and the
// flags are not affected.
func (c *CPU) opADDA(i Instruction) error {
	src, err := c.load(i.Src, i.Size)
	if err != nil {
		return err
	}
	a, err := c.regPtr(i.Dst)
	if err != nil {
		return err
	}

	src = i.Size.signExtend(src)
	if i.Op == OpSUBA {
		*a -= src
	} else {
		*a += src
	}
	return nil
}

// opADDX handles ADDX and SUBX.
func (c *CPU) opADDX(i Instruction) error {
	sub := i.Op == OpSUBX
	src, err := c.load(i.Src, i.Size)
	if err != nil {
		return err
	}
	o, err := c.resolve(i.Dst, i.Size)
	if err != nil {
		return err
	}
	dst, err := c.get(o, i.Size)
	if err != nil {
		return err
	}

	var x uint32
	if c.flag(SRX) {
		x = 1
	}
	res := dst + src + x
	if sub {
		res = dst - src - x
	}
	res &= i.Size.Mask()

	z := c.flag(SRZ)
	c.setFlagsArith(src, dst, res, i.Size, sub)
	c.setExtend()
	c.keepZero(z, res, i.Size)
	return c.put(o, i.Size, res)
}

// opCMP handles CMP, CMPA, CMPI and CMPM. X is not affected.
func (c *CPU) opCMP(i Instruction) error {
	size := i.Size
	src, err := c.load(i.Src, size)
	if err != nil {
		return err
	}
	if i.Op == OpCMPA {
		src = size.signExtend(src)
		size = SizeLong
	}

	dst, err := c.load(i.Dst, size)
	if err != nil {
		return err
	}
	c.setFlagsArith(src, dst, (dst-src)&size.Mask(), size, true)
	return nil
}

// opNEG handles NEG and NEGX.
func (c *CPU) opNEG(i Instruction) error {
	o, err := c.resolve(i.Dst, i.Size)
	if err != nil {
		return err
	}
	v, err := c.get(o, i.Size)
	if err != nil {
		return err
	}

	var x uint32
	if i.Op == OpNEGX && c.flag(SRX) {
		x = 1
	}
	res := (0 - v - x) & i.Size.Mask()

	z := c.flag(SRZ)
	c.setFlagsArith(v, 0, res, i.Size, true)
	c.setExtend()
	if i.Op == OpNEGX {
		c.keepZero(z, res, i.Size)
	}
	return c.put(o, i.Size, res)
}

// opMUL handles the 16x16->32 MULU and MULS forms.
func (c *CPU) opMUL(i Instruction) error {
	src, err := c.load(i.Src, SizeWord)
	if err != nil {
		return err
	}
	d, err := c.regPtr(i.Dst)
	if err != nil {
		return err
	}

	var res uint32
	if i.Op == OpMULU {
		res = (*d & 0xFFFF) * src
	} else {
		res = uint32(int32(int16(*d)) * int32(int16(src)))
	}
	*d = res
	c.setLogical(res, SizeLong)
	return nil
}

// opDIV handles the 32/16 DIVU and DIVS forms. The quotient goes in the low
// word and the remainder in the high word. On overflow the register is left
// alone and V is set.
func (c *CPU) opDIV(i Instruction) error {
	src, err := c.load(i.Src, SizeWord)
	if err != nil {
		return err
	}
	d, err := c.regPtr(i.Dst)
	if err != nil {
		return err
	}

	if src == 0 {
		c.SR &^= SRC
		return c.exception(vecZeroDiv, c.PC)
	}

	if i.Op == OpDIVU {
		q, r := *d/src, *d%src
		if q > 0xFFFF {
			c.SR |= SRV
			c.SR &^= SRC
			return nil
		}
		*d = r<<16 | q
		c.setLogical(q, SizeWord)
		return nil
	}

	dividend, divisor := int64(int32(*d)), int64(int16(src))
	q, r := dividend/divisor, dividend%divisor
	if q < math.MinInt16 || q > math.MaxInt16 {
		c.SR |= SRV | SRN
		c.SR &^= SRC
		return nil
	}
	*d = uint32(uint16(r))<<16 | uint32(uint16(q))
	c.setLogical(uint32(q), SizeWord)
	return nil
}
