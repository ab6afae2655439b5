package cpu

// controlRegisters lists the MOVEC register codes this core implements.
var controlRegisters = map[ControlRegister]bool{
	CtrlSFC: true, CtrlDFC: true, CtrlCACR: true,
	CtrlUSP: true, CtrlVBR: true, CtrlCAAR: true,
}

// misc decodes group 4.
func (d *decoder) misc() (Instruction, error) {
	w := d.word

	switch w {
	case OPILLEGAL:
		return Instruction{Op: OpILLEGAL}, nil
	case OPRESET:
		return Instruction{Op: OpRESET}, nil
	case OPNOP:
		return Instruction{Op: OpNOP}, nil
	case OPRTE:
		return Instruction{Op: OpRTE}, nil
	case OPRTS:
		return Instruction{Op: OpRTS}, nil
	case OPTRAPV:
		return Instruction{Op: OpTRAPV}, nil
	case OPRTR:
		return Instruction{Op: OpRTR}, nil
	case OPSTOP, OPRTD:
		op := OpSTOP
		if w == OPRTD {
			op = OpRTD
		}
		imm, err := d.immediate(SizeWord)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Src: imm}, nil
	case OPMOVECtoR, OPMOVECtoC:
		return d.movec()
	}

	if w&0xFFF0 == OPTRAP {
		return Instruction{Op: OpTRAP, Src: Immediate{Value: uint32(w & 15), Size: SizeByte}}, nil
	}

	reg := w & 7
	switch w & 0xFFF8 {
	case OPLINK:
		imm, err := d.immediate(SizeWord)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpLINK, Size: SizeWord, Src: AddressRegister(reg), Dst: imm}, nil
	case OPUNLK:
		return Instruction{Op: OpUNLK, Dst: AddressRegister(reg)}, nil
	case OPMOVEToUSP:
		return Instruction{Op: OpMOVEUSP, Size: SizeLong, Src: AddressRegister(reg), Dst: RegUSP}, nil
	case OPMOVEFromUSP:
		return Instruction{Op: OpMOVEUSP, Size: SizeLong, Src: RegUSP, Dst: AddressRegister(reg)}, nil
	case OPSWAP:
		return Instruction{Op: OpSWAP, Size: SizeLong, Dst: DataRegister(reg)}, nil
	case OPEXTW:
		return Instruction{Op: OpEXT, Size: SizeWord, Dst: DataRegister(reg)}, nil
	case OPEXTL:
		return Instruction{Op: OpEXT, Size: SizeLong, Dst: DataRegister(reg)}, nil
	}

	switch w & 0xFFC0 {
	case OPMOVEFromSR:
		return d.single(OpMOVEfromSR, SizeWord, eaDataAlt, RegSR)
	case OPMOVEFromCCR:
		return d.single(OpMOVEfromCCR, SizeWord, eaDataAlt, RegCCR)
	case OPMOVEToCCR:
		return d.toStatus(OpMOVEtoCCR, RegCCR)
	case OPMOVEToSR:
		return d.toStatus(OpMOVEtoSR, RegSR)
	case OPNBCD:
		return d.single(OpNBCD, SizeByte, eaDataAlt, nil)
	case OPPEA:
		return d.single(OpPEA, SizeLong, eaControl, nil)
	case OPTAS:
		return d.single(OpTAS, SizeByte, eaDataAlt, nil)
	case OPJSR:
		return d.single(OpJSR, SizeInvalid, eaControl, nil)
	case OPJMP:
		return d.single(OpJMP, SizeInvalid, eaControl, nil)
	}

	if w&0xFB80 == 0x4880 {
		return d.movem()
	}

	switch w & 0xF1C0 {
	case OPLEA:
		src, err := d.ea(SizeLong, eaControl)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpLEA, Size: SizeLong, Src: src, Dst: AddressRegister((w >> 9) & 7)}, nil
	case OPCHK:
		src, err := d.ea(SizeWord, eaData)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpCHK, Size: SizeWord, Src: src, Dst: DataRegister((w >> 9) & 7)}, nil
	}

	size := sizeField(w >> 6)
	if size == SizeInvalid {
		return d.illegal()
	}
	switch w & 0xFF00 {
	case 0x4000:
		return d.single(OpNEGX, size, eaDataAlt, nil)
	case 0x4200:
		return d.single(OpCLR, size, eaDataAlt, nil)
	case 0x4400:
		return d.single(OpNEG, size, eaDataAlt, nil)
	case 0x4600:
		return d.single(OpNOT, size, eaDataAlt, nil)
	case 0x4A00:
		return d.single(OpTST, size, eaDataAlt, nil)
	}
	return d.illegal()
}

// single decodes a one-operand instruction. A non-nil src is placed before
// the decoded operand, as in MOVE SR,<ea>.
func (d *decoder) single(op Op, size Size, allowed int, src Target) (Instruction, error) {
	dst, err := d.ea(size, allowed)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Size: size, Src: src, Dst: dst}, nil
}

// toStatus decodes MOVE <ea>,CCR and MOVE <ea>,SR.
func (d *decoder) toStatus(op Op, reg SpecialRegister) (Instruction, error) {
	src, err := d.ea(SizeWord, eaData)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Size: SizeWord, Src: src, Dst: reg}, nil
}

// movec decodes MOVEC. Bit 0 of the opcode selects the direction.
func (d *decoder) movec() (Instruction, error) {
	ext, err := d.next()
	if err != nil {
		return Instruction{}, err
	}

	ctrl := ControlRegister(ext & 0x0FFF)
	if !controlRegisters[ctrl] {
		return d.illegal()
	}

	var gen Target = DataRegister((ext >> 12) & 7)
	if ext&0x8000 != 0 {
		gen = AddressRegister((ext >> 12) & 7)
	}

	if d.word == OPMOVECtoC {
		return Instruction{Op: OpMOVEC, Size: SizeLong, Src: gen, Dst: ctrl}, nil
	}
	return Instruction{Op: OpMOVEC, Size: SizeLong, Src: ctrl, Dst: gen}, nil
}

// movem decodes MOVEM. The register mask precedes the address extension.
// Predecrement masks are stored reversed and are normalised here.
func (d *decoder) movem() (Instruction, error) {
	w := d.word
	mask, err := d.next()
	if err != nil {
		return Instruction{}, err
	}

	size := SizeWord
	if w&0x0040 != 0 {
		size = SizeLong
	}

	if w&0x0400 != 0 {
		src, err := d.ea(size, eaControl|eaPostInc)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpMOVEM, Size: size, Src: src, Dst: RegisterList(mask)}, nil
	}

	dst, err := d.ea(size, eaControlAlt|eaPreDec)
	if err != nil {
		return Instruction{}, err
	}
	if _, ok := dst.(PreDecrement); ok {
		mask = reverse16(mask)
	}
	return Instruction{Op: OpMOVEM, Size: size, Src: RegisterList(mask), Dst: dst}, nil
}

func reverse16(v uint16) uint16 {
	var r uint16
	for range 16 {
		r = r<<1 | v&1
		v >>= 1
	}
	return r
}
