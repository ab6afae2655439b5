package cpu

// execute applies one decoded instruction to the machine state.
func (c *CPU) execute(i Instruction) error {
	switch i.Op {
	case OpADD, OpADDI, OpADDQ, OpSUB, OpSUBI, OpSUBQ:
		return c.opADD(i)
	case OpADDA, OpSUBA:
		return c.opADDA(i)
	case OpADDX, OpSUBX:
		return c.opADDX(i)
	case OpCMP, OpCMPI, OpCMPM, OpCMPA:
		return c.opCMP(i)
	case OpNEG, OpNEGX:
		return c.opNEG(i)
	case OpMULU, OpMULS:
		return c.opMUL(i)
	case OpDIVU, OpDIVS:
		return c.opDIV(i)
	case OpABCD, OpSBCD, OpNBCD:
		return c.opBCD(i)

	case OpAND, OpANDI, OpOR, OpORI, OpEOR, OpEORI:
		return c.opLogical(i)
	case OpANDItoCCR, OpORItoCCR, OpEORItoCCR, OpANDItoSR, OpORItoSR, OpEORItoSR:
		return c.opLogicalStatus(i)
	case OpNOT:
		return c.opNOT(i)
	case OpBTST, OpBCHG, OpBCLR, OpBSET:
		return c.opBit(i)
	case OpASL, OpASR, OpLSL, OpLSR, OpROL, OpROR, OpROXL, OpROXR:
		return c.opShift(i)

	case OpMOVE:
		return c.opMOVE(i)
	case OpMOVEA:
		return c.opMOVEA(i)
	case OpMOVEQ:
		return c.opMOVEQ(i)
	case OpMOVEM:
		return c.opMOVEM(i)
	case OpMOVEP:
		return c.opMOVEP(i)
	case OpMOVEtoCCR, OpMOVEtoSR, OpMOVEfromCCR, OpMOVEfromSR, OpMOVEUSP, OpMOVEC:
		return c.opMoveSystem(i)
	case OpLEA:
		return c.opLEA(i)
	case OpPEA:
		return c.opPEA(i)
	case OpCLR:
		return c.opCLR(i)
	case OpTST:
		return c.opTST(i)
	case OpTAS:
		return c.opTAS(i)
	case OpScc:
		return c.opScc(i)
	case OpSWAP:
		return c.opSWAP(i)
	case OpEXT:
		return c.opEXT(i)
	case OpEXG:
		return c.opEXG(i)

	case OpBRA, OpBSR, OpBcc:
		return c.opBranch(i)
	case OpDBcc:
		return c.opDBcc(i)
	case OpJMP, OpJSR:
		return c.opJump(i)
	case OpRTS, OpRTR, OpRTE, OpRTD:
		return c.opReturn(i)
	case OpLINK:
		return c.opLINK(i)
	case OpUNLK:
		return c.opUNLK(i)

	case OpTRAP, OpTRAPV, OpCHK:
		return c.opTrap(i)
	case OpILLEGAL:
		return c.opILLEGAL(i)
	case OpSTOP, OpRESET:
		return c.opControl(i)
	case OpNOP:
		return nil
	}
	return &DecodeError{Word: i.Word}
}
