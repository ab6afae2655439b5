package cpu

import "fmt"

// location says where a resolved operand lives.
type location uint8

const (
	locData location = iota
	locAddr
	locMem
	locImm
)

// operand is a Target resolved against the current registers.
type operand struct {
	loc  location
	reg  uint8
	addr uint32
	imm  uint32
}

// step is the postincrement and predecrement amount. Byte accesses keep
// the stack pointer word aligned.
func step(r AddressRegister, size Size) uint32 {
	if size == SizeByte && r == 7 {
		return 2
	}
	return size.Bytes()
}

// resolve computes where a Target's operand is. Postincrement and
// predecrement update their register here, once per call.
func (c *CPU) resolve(t Target, size Size) (operand, error) {
	switch t := t.(type) {
	case DataRegister:
		return operand{loc: locData, reg: uint8(t)}, nil
	case AddressRegister:
		return operand{loc: locAddr, reg: uint8(t)}, nil
	case Immediate:
		return operand{loc: locImm, imm: t.Value}, nil
	case PostIncrement:
		addr := c.A[t.Reg]
		c.A[t.Reg] += step(t.Reg, size)
		return operand{loc: locMem, addr: addr}, nil
	case PreDecrement:
		c.A[t.Reg] -= step(t.Reg, size)
		return operand{loc: locMem, addr: c.A[t.Reg]}, nil
	}

	addr, err := c.address(t)
	if err != nil {
		return operand{}, err
	}
	return operand{loc: locMem, addr: addr}, nil
}

// address computes the effective address of a memory Target without side
// effects. Postincrement and predecrement give the current register value.
func (c *CPU) address(t Target) (uint32, error) {
	switch t := t.(type) {
	case Indirect:
		return c.A[t.Reg], nil
	case PostIncrement:
		return c.A[t.Reg], nil
	case PreDecrement:
		return c.A[t.Reg], nil
	case Displacement:
		return c.A[t.Reg] + uint32(int32(t.Disp)), nil
	case PCDisplacement:
		return t.Addr(), nil
	case AbsoluteShort:
		return t.Addr(), nil
	case AbsoluteLong:
		return uint32(t), nil
	case Indexed:
		return c.indexed(t)
	}
	return 0, fmt.Errorf("operand %v has no address: %w", t, ErrIllegalOpcode)
}

// indexed computes brief and full format indexed addresses, including the
// memory indirect forms.
func (c *CPU) indexed(t Indexed) (uint32, error) {
	var base uint32
	switch {
	case t.BaseSuppressed:
	case t.PC:
		base = t.Ext
	default:
		base = c.A[t.Base]
	}
	base += uint32(t.Disp)

	var idx uint32
	if !t.IndexSuppressed {
		x := t.Index
		v := c.D[x.Reg&7]
		if x.Addr {
			v = c.A[x.Reg&7]
		}
		if !x.Long {
			v = SizeWord.signExtend(v)
		}
		idx = v * uint32(x.Scale)
	}

	switch t.Indirect {
	case PreIndexed:
		p, err := c.read(base+idx, SizeLong)
		if err != nil {
			return 0, err
		}
		return p + uint32(t.Outer), nil
	case PostIndexed:
		p, err := c.read(base, SizeLong)
		if err != nil {
			return 0, err
		}
		return p + idx + uint32(t.Outer), nil
	}
	return base + idx, nil
}

// get reads a resolved operand.
func (c *CPU) get(o operand, size Size) (uint32, error) {
	switch o.loc {
	case locData:
		return c.D[o.reg] & size.Mask(), nil
	case locAddr:
		return c.A[o.reg] & size.Mask(), nil
	case locImm:
		return o.imm & size.Mask(), nil
	}
	return c.read(o.addr, size)
}

// put writes a resolved operand. Data registers keep their upper bits;
// address registers always receive a sign-extended long.
func (c *CPU) put(o operand, size Size, v uint32) error {
	switch o.loc {
	case locData:
		c.D[o.reg] = c.D[o.reg]&^size.Mask() | v&size.Mask()
		return nil
	case locAddr:
		c.A[o.reg] = size.signExtend(v & size.Mask())
		return nil
	case locImm:
		return fmt.Errorf("write to immediate operand: %w", ErrIllegalOpcode)
	}
	return c.write(o.addr, size, v)
}

// load resolves a Target and reads it.
func (c *CPU) load(t Target, size Size) (uint32, error) {
	o, err := c.resolve(t, size)
	if err != nil {
		return 0, err
	}
	return c.get(o, size)
}

// store resolves a Target and writes it.
func (c *CPU) store(t Target, size Size, v uint32) error {
	o, err := c.resolve(t, size)
	if err != nil {
		return err
	}
	return c.put(o, size, v)
}

// modify applies fn to a Target in place, resolving it once.
func (c *CPU) modify(t Target, size Size, fn func(uint32) uint32) error {
	o, err := c.resolve(t, size)
	if err != nil {
		return err
	}
	v, err := c.get(o, size)
	if err != nil {
		return err
	}
	return c.put(o, size, fn(v)&size.Mask())
}

// reg returns register r of a MOVEM list, D0-D7 then A0-A7.
func (c *CPU) reg(r int) *uint32 {
	if r < 8 {
		return &c.D[r]
	}
	return &c.A[r-8]
}

// regPtr returns the register named by a register Target.
func (c *CPU) regPtr(t Target) (*uint32, error) {
	switch t := t.(type) {
	case DataRegister:
		return &c.D[t&7], nil
	case AddressRegister:
		return &c.A[t&7], nil
	}
	return nil, fmt.Errorf("operand %v is not a register: %w", t, ErrIllegalOpcode)
}
