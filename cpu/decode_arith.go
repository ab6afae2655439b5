package cpu

// orDiv decodes group 8: OR, DIVU, DIVS and SBCD.
func (d *decoder) orDiv() (Instruction, error) {
	switch opmode := (d.word >> 6) & 7; opmode {
	case 3:
		return d.wordMath(OpDIVU)
	case 7:
		return d.wordMath(OpDIVS)
	}
	if d.word&0x01F0 == 0x0100 {
		return d.extended(OpSBCD, SizeByte)
	}
	return d.logical(OpOR)
}

// andMul decodes group C: AND, MULU, MULS, ABCD and EXG.
func (d *decoder) andMul() (Instruction, error) {
	w := d.word
	switch (w >> 6) & 7 {
	case 3:
		return d.wordMath(OpMULU)
	case 7:
		return d.wordMath(OpMULS)
	}
	if w&0x01F0 == 0x0100 {
		return d.extended(OpABCD, SizeByte)
	}

	rx, ry := (w>>9)&7, w&7
	switch w & 0x01F8 {
	case 0x0140:
		return Instruction{Op: OpEXG, Size: SizeLong, Src: DataRegister(rx), Dst: DataRegister(ry)}, nil
	case 0x0148:
		return Instruction{Op: OpEXG, Size: SizeLong, Src: AddressRegister(rx), Dst: AddressRegister(ry)}, nil
	case 0x0188:
		return Instruction{Op: OpEXG, Size: SizeLong, Src: DataRegister(rx), Dst: AddressRegister(ry)}, nil
	}
	return d.logical(OpAND)
}

// addSub decodes groups 9 and D, which share a layout.
func (d *decoder) addSub() (Instruction, error) {
	w := d.word
	add := w>>12 == 0xD
	pick := func(a, s Op) Op {
		if add {
			return a
		}
		return s
	}

	reg := (w >> 9) & 7
	opmode := (w >> 6) & 7
	if opmode == 3 || opmode == 7 {
		size := SizeWord
		if opmode == 7 {
			size = SizeLong
		}
		src, err := d.ea(size, eaAll)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: pick(OpADDA, OpSUBA), Size: size, Src: src, Dst: AddressRegister(reg)}, nil
	}

	size := sizeField(opmode)
	if opmode&4 != 0 && (w>>3)&7 <= ModeAddr {
		return d.extended(pick(OpADDX, OpSUBX), size)
	}

	op := pick(OpADD, OpSUB)
	if opmode&4 == 0 {
		allowed := eaAll
		if size == SizeByte {
			allowed &^= eaAn
		}
		src, err := d.ea(size, allowed)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Size: size, Src: src, Dst: DataRegister(reg)}, nil
	}

	dst, err := d.ea(size, eaMemAlt)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Size: size, Src: DataRegister(reg), Dst: dst}, nil
}

// cmpEor decodes group B: CMP, CMPA, CMPM and EOR.
func (d *decoder) cmpEor() (Instruction, error) {
	w := d.word
	reg := (w >> 9) & 7
	opmode := (w >> 6) & 7

	switch {
	case opmode == 3 || opmode == 7:
		size := SizeWord
		if opmode == 7 {
			size = SizeLong
		}
		src, err := d.ea(size, eaAll)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpCMPA, Size: size, Src: src, Dst: AddressRegister(reg)}, nil
	case opmode < 3:
		size := sizeField(opmode)
		allowed := eaAll
		if size == SizeByte {
			allowed &^= eaAn
		}
		src, err := d.ea(size, allowed)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpCMP, Size: size, Src: src, Dst: DataRegister(reg)}, nil
	}

	size := sizeField(opmode)
	if w&0xF138 == OPCMPM {
		return Instruction{
			Op:   OpCMPM,
			Size: size,
			Src:  PostIncrement{Reg: AddressRegister(w & 7)},
			Dst:  PostIncrement{Reg: AddressRegister(reg)},
		}, nil
	}
	dst, err := d.ea(size, eaDataAlt)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: OpEOR, Size: size, Src: DataRegister(reg), Dst: dst}, nil
}

// logical decodes the <ea>,Dn and Dn,<ea> forms of AND and OR.
func (d *decoder) logical(op Op) (Instruction, error) {
	w := d.word
	reg := DataRegister((w >> 9) & 7)
	size := sizeField(w >> 6)

	if w&0x0100 == 0 {
		src, err := d.ea(size, eaData)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Size: size, Src: src, Dst: reg}, nil
	}

	dst, err := d.ea(size, eaMemAlt)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Size: size, Src: reg, Dst: dst}, nil
}

// wordMath decodes the 16-bit MULU, MULS, DIVU and DIVS forms.
func (d *decoder) wordMath(op Op) (Instruction, error) {
	src, err := d.ea(SizeWord, eaData)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Size: SizeWord, Src: src, Dst: DataRegister((d.word >> 9) & 7)}, nil
}

// extended decodes the register and predecrement forms shared by ADDX,
// SUBX, ABCD and SBCD. Bit 3 selects -(Ay),-(Ax).
func (d *decoder) extended(op Op, size Size) (Instruction, error) {
	w := d.word
	rx, ry := (w>>9)&7, w&7
	if w&0x0008 != 0 {
		return Instruction{
			Op:   op,
			Size: size,
			Src:  PreDecrement{Reg: AddressRegister(ry)},
			Dst:  PreDecrement{Reg: AddressRegister(rx)},
		}, nil
	}
	return Instruction{Op: op, Size: size, Src: DataRegister(ry), Dst: DataRegister(rx)}, nil
}
