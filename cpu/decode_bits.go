package cpu

var bitOps = [4]Op{OpBTST, OpBCHG, OpBCLR, OpBSET}

var immOps = [8]Op{OpORI, OpANDI, OpSUBI, OpADDI, OpInvalid, OpEORI, OpCMPI, OpInvalid}

// bitManipulation decodes group 0: immediate arithmetic, bit operations and MOVEP.
func (d *decoder) bitManipulation() (Instruction, error) {
	w := d.word
	switch w {
	case OPORItoCCR:
		return d.immToStatus(OpORItoCCR, SizeByte, RegCCR)
	case OPANDItoCCR:
		return d.immToStatus(OpANDItoCCR, SizeByte, RegCCR)
	case OPEORItoCCR:
		return d.immToStatus(OpEORItoCCR, SizeByte, RegCCR)
	case OPORItoSR:
		return d.immToStatus(OpORItoSR, SizeWord, RegSR)
	case OPANDItoSR:
		return d.immToStatus(OpANDItoSR, SizeWord, RegSR)
	case OPEORItoSR:
		return d.immToStatus(OpEORItoSR, SizeWord, RegSR)
	}

	if w&0xF138 == OPMOVEP {
		return d.movep()
	}

	// Bit operations work on longs in data registers and bytes in memory.
	size := SizeByte
	if (w>>3)&7 == ModeData {
		size = SizeLong
	}
	op := bitOps[(w>>6)&3]

	if w&0x0100 != 0 {
		allowed := eaDataAlt
		if op == OpBTST {
			allowed = eaData
		}
		dst, err := d.ea(size, allowed)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Size: size, Src: DataRegister((w >> 9) & 7), Dst: dst}, nil
	}

	if (w>>9)&7 == 4 {
		num, err := d.next()
		if err != nil {
			return Instruction{}, err
		}
		if num&0xFF00 != 0 {
			return d.illegal()
		}
		allowed := eaDataAlt
		if op == OpBTST {
			allowed = eaData &^ eaImm
		}
		dst, err := d.ea(size, allowed)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Size: size, Src: Immediate{Value: uint32(num), Size: SizeByte}, Dst: dst}, nil
	}

	op = immOps[(w>>9)&7]
	size = sizeField(w >> 6)
	if op == OpInvalid || size == SizeInvalid {
		return d.illegal()
	}

	src, err := d.immediate(size)
	if err != nil {
		return Instruction{}, err
	}
	allowed := eaDataAlt
	if op == OpCMPI {
		allowed = eaData &^ eaImm
	}
	dst, err := d.ea(size, allowed)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Size: size, Src: src, Dst: dst}, nil
}

func (d *decoder) immToStatus(op Op, size Size, reg SpecialRegister) (Instruction, error) {
	src, err := d.immediate(size)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Size: size, Src: src, Dst: reg}, nil
}

// movep decodes MOVEP between a data register and alternate bytes in memory.
func (d *decoder) movep() (Instruction, error) {
	w := d.word
	disp, err := d.next()
	if err != nil {
		return Instruction{}, err
	}

	size := SizeWord
	if w&0x0040 != 0 {
		size = SizeLong
	}
	dn := DataRegister((w >> 9) & 7)
	mem := Displacement{Reg: AddressRegister(w & 7), Disp: int16(disp)}

	if w&0x0080 != 0 {
		return Instruction{Op: OpMOVEP, Size: size, Src: dn, Dst: mem}, nil
	}
	return Instruction{Op: OpMOVEP, Size: size, Src: mem, Dst: dn}, nil
}
