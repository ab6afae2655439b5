package cpu

import "fmt"

func (c *CPU) opMOVE(i Instruction) error {
	v, err := c.load(i.Src, i.Size)
	if err != nil {
		return err
	}
	if err := c.store(i.Dst, i.Size, v); err != nil {
		return err
	}
	c.setLogical(v, i.Size)
	return nil
}

// opMOVEA sign-extends word sources and leaves the flags alone.
func (c *CPU) opMOVEA(i Instruction) error {
	v, err := c.load(i.Src, i.Size)
	if err != nil {
		return err
	}
	a, err := c.regPtr(i.Dst)
	if err != nil {
		return err
	}
	*a = i.Size.signExtend(v)
	return nil
}

func (c *CPU) opMOVEQ(i Instruction) error {
	v, err := c.load(i.Src, SizeByte)
	if err != nil {
		return err
	}
	d, err := c.regPtr(i.Dst)
	if err != nil {
		return err
	}
	*d = SizeByte.signExtend(v)
	c.setLogical(*d, SizeLong)
	return nil
}

// opMOVEM moves a register list to or from memory. Predecrement stores
// run from A7 down to D0; everything else runs upward from D0. Word loads
// are sign-extended into the whole register.
func (c *CPU) opMOVEM(i Instruction) error {
	n := i.Size.Bytes()

	if list, ok := i.Src.(RegisterList); ok {
		if pd, ok := i.Dst.(PreDecrement); ok {
			addr := c.A[pd.Reg&7]
			for r := 15; r >= 0; r-- {
				if list&(1<<r) == 0 {
					continue
				}
				addr -= n
				if err := c.write(addr, i.Size, *c.reg(r)); err != nil {
					return err
				}
			}
			c.A[pd.Reg&7] = addr
			return nil
		}

		addr, err := c.address(i.Dst)
		if err != nil {
			return err
		}
		for r := range 16 {
			if list&(1<<r) == 0 {
				continue
			}
			if err := c.write(addr, i.Size, *c.reg(r)); err != nil {
				return err
			}
			addr += n
		}
		return nil
	}

	list, ok := i.Dst.(RegisterList)
	if !ok {
		return fmt.Errorf("movem without register list: %w", ErrIllegalOpcode)
	}
	addr, err := c.address(i.Src)
	if err != nil {
		return err
	}
	for r := range 16 {
		if list&(1<<r) == 0 {
			continue
		}
		v, err := c.read(addr, i.Size)
		if err != nil {
			return err
		}
		*c.reg(r) = i.Size.signExtend(v)
		addr += n
	}
	if pi, ok := i.Src.(PostIncrement); ok {
		c.A[pi.Reg&7] = addr
	}
	return nil
}

// opMOVEP transfers a data register to or from alternate bytes of memory,
// high byte first.
func (c *CPU) opMOVEP(i Instruction) error {
	n := i.Size.Bytes()

	if d, ok := i.Src.(DataRegister); ok {
		addr, err := c.address(i.Dst)
		if err != nil {
			return err
		}
		v := c.D[d&7]
		for b := range n {
			shift := 8 * (n - 1 - b)
			if err := c.write(addr+2*b, SizeByte, v>>shift); err != nil {
				return err
			}
		}
		return nil
	}

	addr, err := c.address(i.Src)
	if err != nil {
		return err
	}
	var v uint32
	for b := range n {
		x, err := c.read(addr+2*b, SizeByte)
		if err != nil {
			return err
		}
		v = v<<8 | x
	}
	return c.store(i.Dst, i.Size, v)
}

// opMoveSystem handles moves to and from SR, CCR, USP and the MOVEC control
// registers. Everything except the CCR forms needs supervisor state.
func (c *CPU) opMoveSystem(i Instruction) error {
	if i.Op != OpMOVEtoCCR && i.Op != OpMOVEfromCCR {
		if err := c.privileged(i); err != nil {
			return err
		}
	}

	switch i.Op {
	case OpMOVEtoCCR:
		v, err := c.load(i.Src, SizeWord)
		if err != nil {
			return err
		}
		c.setCCR(uint16(v))
	case OpMOVEtoSR:
		v, err := c.load(i.Src, SizeWord)
		if err != nil {
			return err
		}
		c.setSR(uint16(v))
	case OpMOVEfromSR:
		return c.store(i.Dst, SizeWord, uint32(c.SR))
	case OpMOVEfromCCR:
		return c.store(i.Dst, SizeWord, uint32(c.SR&ccrMask))
	case OpMOVEUSP:
		if a, ok := i.Src.(AddressRegister); ok {
			c.setUSP(c.A[a&7])
			return nil
		}
		a, err := c.regPtr(i.Dst)
		if err != nil {
			return err
		}
		*a = c.usp()
	case OpMOVEC:
		if cr, ok := i.Src.(ControlRegister); ok {
			v, err := c.control(cr)
			if err != nil {
				return err
			}
			r, err := c.regPtr(i.Dst)
			if err != nil {
				return err
			}
			*r = v
			return nil
		}
		r, err := c.regPtr(i.Src)
		if err != nil {
			return err
		}
		cr, _ := i.Dst.(ControlRegister)
		return c.setControl(cr, *r)
	}
	return nil
}

func (c *CPU) control(cr ControlRegister) (uint32, error) {
	switch cr {
	case CtrlSFC:
		return c.SFC, nil
	case CtrlDFC:
		return c.DFC, nil
	case CtrlCACR:
		return c.CACR, nil
	case CtrlUSP:
		return c.usp(), nil
	case CtrlVBR:
		return c.VBR, nil
	case CtrlCAAR:
		return c.CAAR, nil
	}
	return 0, fmt.Errorf("control register $%03X: %w", uint16(cr), ErrIllegalOpcode)
}

func (c *CPU) setControl(cr ControlRegister, v uint32) error {
	switch cr {
	case CtrlSFC:
		c.SFC = v & 7
	case CtrlDFC:
		c.DFC = v & 7
	case CtrlCACR:
		c.CACR = v
	case CtrlUSP:
		c.setUSP(v)
	case CtrlVBR:
		c.VBR = v
	case CtrlCAAR:
		c.CAAR = v
	default:
		return fmt.Errorf("control register $%03X: %w", uint16(cr), ErrIllegalOpcode)
	}
	return nil
}

func (c *CPU) opLEA(i Instruction) error {
	addr, err := c.address(i.Src)
	if err != nil {
		return err
	}
	a, err := c.regPtr(i.Dst)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

func (c *CPU) opPEA(i Instruction) error {
	addr, err := c.address(i.Dst)
	if err != nil {
		return err
	}
	return c.push32(addr)
}

func (c *CPU) opCLR(i Instruction) error {
	if err := c.store(i.Dst, i.Size, 0); err != nil {
		return err
	}
	c.SR = c.SR&^(SRN|SRV|SRC) | SRZ
	return nil
}

func (c *CPU) opTST(i Instruction) error {
	v, err := c.load(i.Dst, i.Size)
	if err != nil {
		return err
	}
	c.setLogical(v, i.Size)
	return nil
}

// opTAS tests a byte and sets its high bit.
func (c *CPU) opTAS(i Instruction) error {
	return c.modify(i.Dst, SizeByte, func(v uint32) uint32 {
		c.setLogical(v, SizeByte)
		return v | 0x80
	})
}

// opScc writes all ones or all zeros to a byte depending on the condition.
func (c *CPU) opScc(i Instruction) error {
	var v uint32
	if i.Cond.Test(c.SR) {
		v = 0xFF
	}
	return c.store(i.Dst, SizeByte, v)
}

func (c *CPU) opSWAP(i Instruction) error {
	d, err := c.regPtr(i.Dst)
	if err != nil {
		return err
	}
	*d = *d<<16 | *d>>16
	c.setLogical(*d, SizeLong)
	return nil
}

// opEXT sign-extends a byte to a word, or a word to a long.
func (c *CPU) opEXT(i Instruction) error {
	d, err := c.regPtr(i.Dst)
	if err != nil {
		return err
	}
	if i.Size == SizeWord {
		*d = *d&0xFFFF0000 | SizeByte.signExtend(*d)&0xFFFF
	} else {
		*d = SizeWord.signExtend(*d)
	}
	c.setLogical(*d, i.Size)
	return nil
}

func (c *CPU) opEXG(i Instruction) error {
	x, err := c.regPtr(i.Src)
	if err != nil {
		return err
	}
	y, err := c.regPtr(i.Dst)
	if err != nil {
		return err
	}
	*x, *y = *y, *x
	return nil
}
