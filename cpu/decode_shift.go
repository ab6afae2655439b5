package cpu

// shiftOps is indexed by shift type, then direction (right, left).
var shiftOps = [4][2]Op{
	{OpASR, OpASL},
	{OpLSR, OpLSL},
	{OpROXR, OpROXL},
	{OpROR, OpROL},
}

// shift decodes group E. Size 3 is the memory form, which shifts a word by one.
func (d *decoder) shift() (Instruction, error) {
	w := d.word
	left := (w >> 8) & 1

	size := sizeField(w >> 6)
	if size == SizeInvalid {
		if w&0x0800 != 0 {
			return d.illegal()
		}
		dst, err := d.ea(SizeWord, eaMemAlt)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: shiftOps[(w>>9)&3][left], Size: SizeWord, Dst: dst}, nil
	}

	count := (w >> 9) & 7
	var src Target = DataRegister(count)
	if w&0x0020 == 0 {
		if count == 0 {
			count = 8
		}
		src = Immediate{Value: uint32(count), Size: SizeByte}
	}

	return Instruction{
		Op:   shiftOps[(w>>3)&3][left],
		Size: size,
		Src:  src,
		Dst:  DataRegister(w & 7),
	}, nil
}
