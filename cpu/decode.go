package cpu

// WordSource supplies instruction words in order. Addr reports where the
// next word will come from.
type WordSource interface {
	Next() (uint16, error)
	Addr() uint32
}

// decoder holds the state of a single Decode call.
type decoder struct {
	src  WordSource
	word uint16
}

type groupFunc func(*decoder) (Instruction, error)

// groups dispatches on the top four bits of the opcode word.
var groups = [16]groupFunc{
	(*decoder).bitManipulation, // 0000 bit manipulation, MOVEP, immediate
	(*decoder).move,            // 0001 MOVE.B
	(*decoder).move,            // 0010 MOVE.L
	(*decoder).move,            // 0011 MOVE.W
	(*decoder).misc,            // 0100 miscellaneous
	(*decoder).quick,           // 0101 ADDQ, SUBQ, Scc, DBcc
	(*decoder).branch,          // 0110 Bcc, BRA, BSR
	(*decoder).moveq,           // 0111 MOVEQ
	(*decoder).orDiv,           // 1000 OR, DIV, SBCD
	(*decoder).addSub,          // 1001 SUB, SUBA, SUBX
	(*decoder).reserved,        // 1010 line A
	(*decoder).cmpEor,          // 1011 CMP, CMPA, CMPM, EOR
	(*decoder).andMul,          // 1100 AND, MUL, ABCD, EXG
	(*decoder).addSub,          // 1101 ADD, ADDA, ADDX
	(*decoder).shift,           // 1110 shift, rotate
	(*decoder).reserved,        // 1111 line F
}

// Decode turns an opcode word, plus any extension words it pulls from src,
// into an Instruction. It never looks at processor state. Words that do not
// decode give an OpInvalid instruction and a *DecodeError.
func Decode(word uint16, src WordSource) (Instruction, error) {
	d := &decoder{src: src, word: word}
	inst, err := groups[word>>12](d)
	if err != nil {
		return Instruction{Op: OpInvalid, Word: word}, err
	}

	inst.Word = word
	return inst, nil
}

func (d *decoder) illegal() (Instruction, error) {
	return Instruction{}, &DecodeError{Word: d.word}
}

func (d *decoder) reserved() (Instruction, error) {
	return d.illegal()
}

func (d *decoder) next() (uint16, error) {
	return d.src.Next()
}

func (d *decoder) long() (uint32, error) {
	hi, err := d.next()
	if err != nil {
		return 0, err
	}
	lo, err := d.next()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// immediate reads #<data> of the given size.
func (d *decoder) immediate(size Size) (Immediate, error) {
	if size == SizeLong {
		v, err := d.long()
		return Immediate{Value: v, Size: size}, err
	}

	w, err := d.next()
	return Immediate{Value: uint32(w) & size.Mask(), Size: size}, err
}

// ea decodes the effective address in the low six bits of the opcode word.
func (d *decoder) ea(size Size, allowed int) (Target, error) {
	return d.eaAt((d.word>>3)&7, d.word&7, size, allowed)
}

// eaAt decodes an effective address from explicit mode and register fields,
// rejecting modes outside allowed.
func (d *decoder) eaAt(mode, reg uint16, size Size, allowed int) (Target, error) {
	if modeClass(mode, reg)&allowed == 0 {
		return nil, &DecodeError{Word: d.word}
	}

	an := AddressRegister(reg)
	switch mode {
	case ModeData:
		return DataRegister(reg), nil
	case ModeAddr:
		return an, nil
	case ModeAddrInd:
		return Indirect{Reg: an}, nil
	case ModeAddrPostInc:
		return PostIncrement{Reg: an}, nil
	case ModeAddrPreDec:
		return PreDecrement{Reg: an}, nil
	case ModeAddrDisp:
		w, err := d.next()
		if err != nil {
			return nil, err
		}
		return Displacement{Reg: an, Disp: int16(w)}, nil
	case ModeAddrIndex:
		return d.index(an, false)
	}

	switch reg {
	case RegAbsShort:
		w, err := d.next()
		return AbsoluteShort(w), err
	case RegAbsLong:
		l, err := d.long()
		return AbsoluteLong(l), err
	case RegPCDisp:
		ext := d.src.Addr()
		w, err := d.next()
		if err != nil {
			return nil, err
		}
		return PCDisplacement{Ext: ext, Disp: int16(w)}, nil
	case RegPCIndex:
		return d.index(0, true)
	}

	imm, err := d.immediate(size)
	if err != nil {
		return nil, err
	}
	return imm, nil
}

// index decodes a brief or full extension word and whatever displacement
// words follow it.
func (d *decoder) index(an AddressRegister, pc bool) (Target, error) {
	ext := d.src.Addr()
	w, err := d.next()
	if err != nil {
		return nil, err
	}

	t := Indexed{
		Base: an,
		PC:   pc,
		Ext:  ext,
		Index: IndexRegister{
			Addr:  w&0x8000 != 0,
			Reg:   uint8(w>>12) & 7,
			Long:  w&0x0800 != 0,
			Scale: 1 << ((w >> 9) & 3),
		},
	}
	if w&0x0100 == 0 {
		t.Disp = int32(int8(w))
		return t, nil
	}

	t.Full = true
	t.BaseSuppressed = w&0x80 != 0
	t.IndexSuppressed = w&0x40 != 0
	if w&0x08 != 0 {
		return nil, &DecodeError{Word: d.word}
	}

	if t.Disp, err = d.displacement((w >> 4) & 3); err != nil {
		return nil, err
	}

	iis := w & 7
	switch {
	case iis == 0:
		return t, nil
	case iis == 4, t.IndexSuppressed && iis > 4:
		return nil, &DecodeError{Word: d.word}
	case iis < 4:
		t.Indirect = PreIndexed
	default:
		t.Indirect = PostIndexed
	}

	if t.Outer, err = d.displacement(iis & 3); err != nil {
		return nil, err
	}
	return t, nil
}

// displacement reads a null, word or long displacement selected by a two-bit
// size field. Size 0 is reserved.
func (d *decoder) displacement(size uint16) (int32, error) {
	switch size {
	case 1:
		return 0, nil
	case 2:
		w, err := d.next()
		return int32(int16(w)), err
	case 3:
		l, err := d.long()
		return int32(l), err
	}
	return 0, &DecodeError{Word: d.word}
}

// label reads a branch displacement relative to the current source address.
// A zero byte displacement selects a word extension, $FF a long one.
func (d *decoder) label(disp8 int8) (Label, error) {
	base := d.src.Addr()
	disp := int32(disp8)
	switch disp8 {
	case 0:
		w, err := d.next()
		if err != nil {
			return Label{}, err
		}
		disp = int32(int16(w))
	case -1:
		l, err := d.long()
		if err != nil {
			return Label{}, err
		}
		disp = int32(l)
	}
	return Label{Addr: base + uint32(disp), Disp: disp}, nil
}
