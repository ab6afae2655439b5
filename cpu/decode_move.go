package cpu

// moveSizes maps the MOVE size field in bits 13-12.
var moveSizes = [4]Size{SizeInvalid, SizeByte, SizeLong, SizeWord}

// move decodes MOVE and MOVEA. Source extension words come first.
func (d *decoder) move() (Instruction, error) {
	w := d.word
	size := moveSizes[(w>>12)&3]

	allowed := eaAll
	if size == SizeByte {
		allowed &^= eaAn
	}
	src, err := d.ea(size, allowed)
	if err != nil {
		return Instruction{}, err
	}

	mode, reg := (w>>6)&7, (w>>9)&7
	if mode == ModeAddr {
		if size == SizeByte {
			return d.illegal()
		}
		return Instruction{Op: OpMOVEA, Size: size, Src: src, Dst: AddressRegister(reg)}, nil
	}

	dst, err := d.eaAt(mode, reg, size, eaDataAlt)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: OpMOVE, Size: size, Src: src, Dst: dst}, nil
}

// moveq decodes MOVEQ #data,Dn. Bit 8 must be clear.
func (d *decoder) moveq() (Instruction, error) {
	w := d.word
	if w&0x0100 != 0 {
		return d.illegal()
	}
	return Instruction{
		Op:   OpMOVEQ,
		Size: SizeLong,
		Src:  Immediate{Value: uint32(w & 0xFF), Size: SizeByte},
		Dst:  DataRegister((w >> 9) & 7),
	}, nil
}
