package cpu

import (
	"fmt"
	"strings"
)

// Target is an instruction operand. The set of implementations is closed.
type Target interface {
	fmt.Stringer
	target()
}

// DataRegister is Dn.
type DataRegister uint8

// AddressRegister is An.
type AddressRegister uint8

// Indirect is (An).
type Indirect struct {
	Reg AddressRegister
}

// PostIncrement is (An)+.
type PostIncrement struct {
	Reg AddressRegister
}

// PreDecrement is -(An).
type PreDecrement struct {
	Reg AddressRegister
}

// Displacement is (d16,An).
type Displacement struct {
	Reg  AddressRegister
	Disp int16
}

// PCDisplacement is (d16,PC). Ext is the address of the extension word.
type PCDisplacement struct {
	Ext  uint32
	Disp int16
}

// AbsoluteShort is (xxx).W, sign-extended to 32 bits when used.
type AbsoluteShort uint16

// AbsoluteLong is (xxx).L.
type AbsoluteLong uint32

// Immediate is #<data>, stored at its operand size.
type Immediate struct {
	Value uint32
	Size  Size
}

// IndexRegister is the Xn.SIZE*SCALE part of an indexed mode.
type IndexRegister struct {
	Addr  bool
	Reg   uint8
	Long  bool
	Scale uint8
}

// IndirectMode selects the memory indirection of a full-format indexed mode.
type IndirectMode uint8

const (
	// NoIndirect computes the address without a memory fetch.
	NoIndirect IndirectMode = iota
	// PreIndexed fetches through base+index+bd, then adds od.
	PreIndexed
	// PostIndexed fetches through base+bd, then adds index and od.
	PostIndexed
)

// Indexed covers (d8,An,Xn), (d8,PC,Xn) and the full extension word forms.
type Indexed struct {
	Base AddressRegister
	// PC selects the program counter as base; Ext is the extension word address.
	PC              bool
	Ext             uint32
	BaseSuppressed  bool
	Index           IndexRegister
	IndexSuppressed bool
	Disp            int32
	Indirect        IndirectMode
	Outer           int32
	// Full is set when decoded from a full extension word.
	Full bool
}

// Label is a branch destination.
type Label struct {
	Addr uint32
	Disp int32
}

// RegisterList is a MOVEM register mask with D0 in bit 0 and A7 in bit 15.
type RegisterList uint16

// SpecialRegister names SR, CCR or USP as an operand.
type SpecialRegister uint8

// Special registers.
const (
	RegSR SpecialRegister = iota
	RegCCR
	RegUSP
)

// ControlRegister is a MOVEC control register code.
type ControlRegister uint16

// Control register codes.
const (
	CtrlSFC  ControlRegister = 0x000
	CtrlDFC  ControlRegister = 0x001
	CtrlCACR ControlRegister = 0x002
	CtrlUSP  ControlRegister = 0x800
	CtrlVBR  ControlRegister = 0x801
	CtrlCAAR ControlRegister = 0x802
)

func (DataRegister) target()    {}
func (AddressRegister) target() {}
func (Indirect) target()        {}
func (PostIncrement) target()   {}
func (PreDecrement) target()    {}
func (Displacement) target()    {}
func (PCDisplacement) target()  {}
func (AbsoluteShort) target()   {}
func (AbsoluteLong) target()    {}
func (Immediate) target()       {}
func (Indexed) target()         {}
func (Label) target()           {}
func (RegisterList) target()    {}
func (SpecialRegister) target() {}
func (ControlRegister) target() {}

func (r DataRegister) String() string    { return fmt.Sprintf("%%d%d", r) }
func (r AddressRegister) String() string { return fmt.Sprintf("%%a%d", r) }
func (t Indirect) String() string        { return "(" + t.Reg.String() + ")" }
func (t PostIncrement) String() string   { return "(" + t.Reg.String() + ")+" }
func (t PreDecrement) String() string    { return "-(" + t.Reg.String() + ")" }

func (t Displacement) String() string {
	return fmt.Sprintf("(%s,%s)", formatNum(int32(t.Disp), SizeWord), t.Reg)
}

// Addr returns the address the operand refers to.
func (t PCDisplacement) Addr() uint32 {
	return t.Ext + uint32(int32(t.Disp))
}

func (t PCDisplacement) String() string {
	return fmt.Sprintf("(%s,%%pc)", labelName(t.Addr()))
}

// Addr returns the sign-extended address.
func (t AbsoluteShort) Addr() uint32 {
	return uint32(int32(int16(t)))
}

func (t AbsoluteShort) String() string { return fmt.Sprintf("($%X).w", uint16(t)) }
func (t AbsoluteLong) String() string  { return fmt.Sprintf("($%X).l", uint32(t)) }

func (t Immediate) String() string {
	return fmt.Sprintf("#<%s>", formatNum(int32(t.Size.signExtend(t.Value)), t.Size))
}

func (x IndexRegister) String() string {
	var b strings.Builder
	if x.Addr {
		fmt.Fprintf(&b, "%%a%d", x.Reg)
	} else {
		fmt.Fprintf(&b, "%%d%d", x.Reg)
	}
	if x.Long {
		b.WriteString(".l")
	} else {
		b.WriteString(".w")
	}
	if x.Scale > 1 {
		fmt.Fprintf(&b, "*%d", x.Scale)
	}
	return b.String()
}

func (t Indexed) String() string {
	// base part: displacement and base register
	var base []string
	switch {
	case t.PC && !t.BaseSuppressed:
		base = append(base, labelName(t.Ext+uint32(t.Disp)), "%pc")
	case t.BaseSuppressed:
		base = append(base, formatNum(t.Disp, SizeLong))
	default:
		if t.Disp != 0 || !t.Full {
			base = append(base, formatNum(t.Disp, SizeLong))
		}
		base = append(base, t.Base.String())
	}

	index := ""
	if !t.IndexSuppressed {
		index = t.Index.String()
	}

	switch t.Indirect {
	case PreIndexed:
		inner := base
		if index != "" {
			inner = append(inner, index)
		}
		return fmt.Sprintf("([%s]%s)", strings.Join(inner, ","), outer(t.Outer))
	case PostIndexed:
		s := "([" + strings.Join(base, ",") + "]"
		if index != "" {
			s += "," + index
		}
		return s + outer(t.Outer) + ")"
	}

	if index != "" {
		base = append(base, index)
	}
	return "(" + strings.Join(base, ",") + ")"
}

func outer(od int32) string {
	if od == 0 {
		return ""
	}
	return "," + formatNum(od, SizeLong)
}

func (l Label) String() string { return labelName(l.Addr) }

func (l RegisterList) String() string {
	var parts []string
	parts = append(parts, regRanges("%d", uint8(l))...)
	parts = append(parts, regRanges("%a", uint8(l>>8))...)
	if len(parts) == 0 {
		return "#<0>"
	}
	return strings.Join(parts, "/")
}

// regRanges turns an eight-register mask into ranges like %d0-%d3.
func regRanges(prefix string, mask uint8) []string {
	var parts []string
	for i := 0; i < 8; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		j := i
		for j+1 < 8 && mask&(1<<(j+1)) != 0 {
			j++
		}
		if i == j {
			parts = append(parts, fmt.Sprintf("%s%d", prefix, i))
		} else {
			parts = append(parts, fmt.Sprintf("%s%d-%s%d", prefix, i, prefix, j))
		}
		i = j
	}
	return parts
}

func (r SpecialRegister) String() string {
	switch r {
	case RegSR:
		return "%sr"
	case RegCCR:
		return "%ccr"
	}
	return "%usp"
}

func (r ControlRegister) String() string {
	switch r {
	case CtrlSFC:
		return "%sfc"
	case CtrlDFC:
		return "%dfc"
	case CtrlCACR:
		return "%cacr"
	case CtrlUSP:
		return "%usp"
	case CtrlVBR:
		return "%vbr"
	case CtrlCAAR:
		return "%caar"
	}
	return fmt.Sprintf("%%cr$%03X", uint16(r))
}

// labelName names a code address the way listings do.
func labelName(addr uint32) string {
	return fmt.Sprintf("loc_%04X", addr)
}

// formatNum prints small values in decimal and anything else as hex of the
// value truncated to size.
func formatNum(v int32, s Size) string {
	if v >= -9 && v <= 9 {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("$%X", uint32(v)&s.Mask())
}
