package cpu

// quick decodes group 5: ADDQ, SUBQ, Scc and DBcc.
func (d *decoder) quick() (Instruction, error) {
	w := d.word
	size := sizeField(w >> 6)

	if size == SizeInvalid {
		cond := Condition((w >> 8) & 15)
		if (w>>3)&7 == ModeAddr {
			reg := DataRegister(w & 7)
			l, err := d.label(0)
			if err != nil {
				return Instruction{}, err
			}
			return Instruction{Op: OpDBcc, Size: SizeWord, Cond: cond, Src: reg, Dst: l}, nil
		}
		dst, err := d.ea(SizeByte, eaDataAlt)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpScc, Size: SizeByte, Cond: cond, Dst: dst}, nil
	}

	data := uint32((w >> 9) & 7)
	if data == 0 {
		data = 8
	}

	allowed := eaAlterable
	if size == SizeByte {
		allowed &^= eaAn
	}
	dst, err := d.ea(size, allowed)
	if err != nil {
		return Instruction{}, err
	}

	op := OpADDQ
	if w&0x0100 != 0 {
		op = OpSUBQ
	}
	return Instruction{Op: op, Size: size, Src: Immediate{Value: data, Size: SizeByte}, Dst: dst}, nil
}

// branch decodes group 6. Condition T is BRA and F is BSR.
func (d *decoder) branch() (Instruction, error) {
	w := d.word
	l, err := d.label(int8(w))
	if err != nil {
		return Instruction{}, err
	}

	switch cond := Condition((w >> 8) & 15); cond {
	case CondT:
		return Instruction{Op: OpBRA, Dst: l}, nil
	case CondF:
		return Instruction{Op: OpBSR, Dst: l}, nil
	default:
		return Instruction{Op: OpBcc, Cond: cond, Dst: l}, nil
	}
}
