package cpu

import "fmt"

// opBranch handles BRA, BSR and Bcc. BSR pushes the address of the next
// instruction.
func (c *CPU) opBranch(i Instruction) error {
	l, ok := i.Dst.(Label)
	if !ok {
		return fmt.Errorf("branch without label: %w", ErrIllegalOpcode)
	}

	switch i.Op {
	case OpBSR:
		if err := c.push32(c.PC); err != nil {
			return err
		}
	case OpBcc:
		if !i.Cond.Test(c.SR) {
			return nil
		}
	}
	c.PC = l.Addr
	return nil
}

// opDBcc falls through when the condition holds. Otherwise it decrements
// the low word of the counter and branches unless it has reached -1.
func (c *CPU) opDBcc(i Instruction) error {
	if i.Cond.Test(c.SR) {
		return nil
	}
	d, err := c.regPtr(i.Src)
	if err != nil {
		return err
	}
	l, ok := i.Dst.(Label)
	if !ok {
		return fmt.Errorf("dbcc without label: %w", ErrIllegalOpcode)
	}

	n := uint16(*d) - 1
	*d = *d&0xFFFF0000 | uint32(n)
	if n != 0xFFFF {
		c.PC = l.Addr
	}
	return nil
}

// opJump handles JMP and JSR.
func (c *CPU) opJump(i Instruction) error {
	addr, err := c.address(i.Dst)
	if err != nil {
		return err
	}
	if i.Op == OpJSR {
		if err := c.push32(c.PC); err != nil {
			return err
		}
	}
	c.PC = addr
	return nil
}

// opReturn handles RTS, RTD, RTR and RTE.
func (c *CPU) opReturn(i Instruction) error {
	switch i.Op {
	case OpRTS:
		pc, err := c.pop32()
		if err != nil {
			return err
		}
		c.PC = pc

	case OpRTD:
		disp, err := c.load(i.Src, SizeWord)
		if err != nil {
			return err
		}
		pc, err := c.pop32()
		if err != nil {
			return err
		}
		c.A[7] += SizeWord.signExtend(disp)
		c.PC = pc

	case OpRTR:
		ccr, err := c.pop16()
		if err != nil {
			return err
		}
		pc, err := c.pop32()
		if err != nil {
			return err
		}
		c.setCCR(ccr)
		c.PC = pc

	case OpRTE:
		if err := c.privileged(i); err != nil {
			return err
		}
		sr, err := c.pop16()
		if err != nil {
			return err
		}
		pc, err := c.pop32()
		if err != nil {
			return err
		}
		c.setSR(sr)
		c.PC = pc
	}
	return nil
}

// opLINK pushes An, points An at the new frame and adds the displacement
// to the stack pointer.
func (c *CPU) opLINK(i Instruction) error {
	a, err := c.regPtr(i.Src)
	if err != nil {
		return err
	}
	disp, err := c.load(i.Dst, SizeWord)
	if err != nil {
		return err
	}

	c.A[7] -= 4
	if err := c.write(c.A[7], SizeLong, *a); err != nil {
		return err
	}
	*a = c.A[7]
	c.A[7] += SizeWord.signExtend(disp)
	return nil
}

func (c *CPU) opUNLK(i Instruction) error {
	a, err := c.regPtr(i.Dst)
	if err != nil {
		return err
	}
	c.A[7] = *a
	v, err := c.pop32()
	if err != nil {
		return err
	}
	*a = v
	return nil
}
