package cpu

// opLogical handles AND, OR and EOR with their immediate forms.
func (c *CPU) opLogical(i Instruction) error {
	src, err := c.load(i.Src, i.Size)
	if err != nil {
		return err
	}

	var res uint32
	err = c.modify(i.Dst, i.Size, func(v uint32) uint32 {
		switch i.Op {
		case OpAND, OpANDI:
			res = v & src
		case OpOR, OpORI:
			res = v | src
		default:
			res = v ^ src
		}
		return res
	})
	if err != nil {
		return err
	}
	c.setLogical(res, i.Size)
	return nil
}

// opLogicalStatus handles the immediate logical operations on CCR and SR.
func (c *CPU) opLogicalStatus(i Instruction) error {
	switch i.Op {
	case OpANDItoSR, OpORItoSR, OpEORItoSR:
		if err := c.privileged(i); err != nil {
			return err
		}
	}

	v, err := c.load(i.Src, i.Size)
	if err != nil {
		return err
	}
	imm := uint16(v)

	switch i.Op {
	case OpANDItoCCR:
		c.setCCR(c.SR & imm)
	case OpORItoCCR:
		c.setCCR(c.SR | imm)
	case OpEORItoCCR:
		c.setCCR(c.SR ^ imm)
	case OpANDItoSR:
		c.setSR(c.SR & imm)
	case OpORItoSR:
		c.setSR(c.SR | imm)
	case OpEORItoSR:
		c.setSR(c.SR ^ imm)
	}
	return nil
}

func (c *CPU) opNOT(i Instruction) error {
	var res uint32
	err := c.modify(i.Dst, i.Size, func(v uint32) uint32 {
		res = ^v & i.Size.Mask()
		return res
	})
	if err != nil {
		return err
	}
	c.setLogical(res, i.Size)
	return nil
}
