package cpu

import (
	"fmt"
	"strings"
)

// Size defines the data size for an instruction's operation.
type Size int

const (
	// SizeInvalid is the zero value, used by instructions without a size suffix.
	SizeInvalid Size = iota
	// SizeByte represents 8-bit data size.
	SizeByte
	// SizeWord represents 16-bit data size.
	SizeWord
	// SizeLong represents 32-bit data size.
	SizeLong
)

// Bytes returns the operand width in bytes.
func (s Size) Bytes() uint32 {
	switch s {
	case SizeByte:
		return 1
	case SizeWord:
		return 2
	}
	return 4
}

// Mask returns the value mask for the size.
func (s Size) Mask() uint32 {
	switch s {
	case SizeByte:
		return 0xFF
	case SizeWord:
		return 0xFFFF
	}
	return 0xFFFFFFFF
}

// MSB returns the sign bit for the size.
func (s Size) MSB() uint32 {
	switch s {
	case SizeByte:
		return 0x80
	case SizeWord:
		return 0x8000
	}
	return 0x80000000
}

// Suffix returns the canonical size suffix (.B, .W, .L).
func (s Size) Suffix() string {
	switch s {
	case SizeByte:
		return ".B"
	case SizeWord:
		return ".W"
	case SizeLong:
		return ".L"
	}
	return ""
}

// signExtend widens a value of the given size to 32 bits.
func (s Size) signExtend(v uint32) uint32 {
	switch s {
	case SizeByte:
		return uint32(int32(int8(v)))
	case SizeWord:
		return uint32(int32(int16(v)))
	}
	return v
}

// sizeField maps the common two-bit size field to a Size.
func sizeField(bits uint16) Size {
	switch bits & 3 {
	case 0:
		return SizeByte
	case 1:
		return SizeWord
	case 2:
		return SizeLong
	}
	return SizeInvalid
}

// Opcodes with a fixed bit pattern.
const (
	OPORItoCCR  = 0x003C // ORI to CCR
	OPORItoSR   = 0x007C // ORI to SR (privileged)
	OPANDItoCCR = 0x023C // ANDI to CCR
	OPANDItoSR  = 0x027C // ANDI to SR (privileged)
	OPEORItoCCR = 0x0A3C // EORI to CCR
	OPEORItoSR  = 0x0A7C // EORI to SR (privileged)
	OPILLEGAL   = 0x4AFC // ILLEGAL
	OPRESET     = 0x4E70 // RESET (privileged)
	OPNOP       = 0x4E71 // NOP
	OPSTOP      = 0x4E72 // STOP (privileged)
	OPRTE       = 0x4E73 // RTE (privileged)
	OPRTD       = 0x4E74 // RTD
	OPRTS       = 0x4E75 // RTS
	OPTRAPV     = 0x4E76 // TRAPV
	OPRTR       = 0x4E77 // RTR
	OPMOVECtoR  = 0x4E7A // MOVEC Rc,Rn (privileged)
	OPMOVECtoC  = 0x4E7B // MOVEC Rn,Rc (privileged)
)

// Opcode bases; register, mode or condition fields are OR'd in.
const (
	OPMOVEFromSR  = 0x40C0 // MOVE from SR (privileged)
	OPMOVEFromCCR = 0x42C0 // MOVE from CCR
	OPMOVEToCCR   = 0x44C0 // MOVE to CCR
	OPMOVEToSR    = 0x46C0 // MOVE to SR (privileged)
	OPNBCD        = 0x4800 // NBCD
	OPSWAP        = 0x4840 // SWAP
	OPPEA         = 0x4840 // PEA
	OPEXTW        = 0x4880 // EXT.W
	OPEXTL        = 0x48C0 // EXT.L
	OPTAS         = 0x4AC0 // TAS
	OPTRAP        = 0x4E40 // TRAP
	OPLINK        = 0x4E50 // LINK
	OPUNLK        = 0x4E58 // UNLK
	OPMOVEToUSP   = 0x4E60 // MOVE to USP (privileged)
	OPMOVEFromUSP = 0x4E68 // MOVE from USP (privileged)
	OPJSR         = 0x4E80 // JSR
	OPJMP         = 0x4EC0 // JMP
	OPLEA         = 0x41C0 // LEA
	OPCHK         = 0x4180 // CHK
	OPScc         = 0x50C0 // Scc
	OPDBcc        = 0x50C8 // DBcc
	OPMOVEP       = 0x0108 // MOVEP
	OPCMPM        = 0xB108 // CMPM
)

// Op identifies a machine instruction.
type Op uint8

// The instruction set. OpInvalid marks a word that does not decode.
const (
	OpInvalid Op = iota
	OpABCD
	OpADD
	OpADDA
	OpADDI
	OpADDQ
	OpADDX
	OpAND
	OpANDI
	OpANDItoCCR
	OpANDItoSR
	OpASL
	OpASR
	OpBcc
	OpBCHG
	OpBCLR
	OpBRA
	OpBSET
	OpBSR
	OpBTST
	OpCHK
	OpCLR
	OpCMP
	OpCMPA
	OpCMPI
	OpCMPM
	OpDBcc
	OpDIVS
	OpDIVU
	OpEOR
	OpEORI
	OpEORItoCCR
	OpEORItoSR
	OpEXG
	OpEXT
	OpILLEGAL
	OpJMP
	OpJSR
	OpLEA
	OpLINK
	OpLSL
	OpLSR
	OpMOVE
	OpMOVEA
	OpMOVEC
	OpMOVEfromCCR
	OpMOVEfromSR
	OpMOVEM
	OpMOVEP
	OpMOVEQ
	OpMOVEtoCCR
	OpMOVEtoSR
	OpMOVEUSP
	OpMULS
	OpMULU
	OpNBCD
	OpNEG
	OpNEGX
	OpNOP
	OpNOT
	OpOR
	OpORI
	OpORItoCCR
	OpORItoSR
	OpPEA
	OpRESET
	OpROL
	OpROR
	OpROXL
	OpROXR
	OpRTD
	OpRTE
	OpRTR
	OpRTS
	OpSBCD
	OpScc
	OpSTOP
	OpSUB
	OpSUBA
	OpSUBI
	OpSUBQ
	OpSUBX
	OpSWAP
	OpTAS
	OpTRAP
	OpTRAPV
	OpTST
	OpUNLK
	opCount
)

// opInfo holds the mnemonic text and whether it carries a size suffix.
type opInfo struct {
	name  string
	sized bool
}

var opTable = [opCount]opInfo{
	OpInvalid:     {"DC.W", false},
	OpABCD:        {"ABCD", false},
	OpADD:         {"ADD", true},
	OpADDA:        {"ADDA", true},
	OpADDI:        {"ADDI", true},
	OpADDQ:        {"ADDQ", true},
	OpADDX:        {"ADDX", true},
	OpAND:         {"AND", true},
	OpANDI:        {"ANDI", true},
	OpANDItoCCR:   {"ANDI", false},
	OpANDItoSR:    {"ANDI", false},
	OpASL:         {"ASL", true},
	OpASR:         {"ASR", true},
	OpBcc:         {"B", false},
	OpBCHG:        {"BCHG", false},
	OpBCLR:        {"BCLR", false},
	OpBRA:         {"BRA", false},
	OpBSET:        {"BSET", false},
	OpBSR:         {"BSR", false},
	OpBTST:        {"BTST", false},
	OpCHK:         {"CHK", true},
	OpCLR:         {"CLR", true},
	OpCMP:         {"CMP", true},
	OpCMPA:        {"CMPA", true},
	OpCMPI:        {"CMPI", true},
	OpCMPM:        {"CMPM", true},
	OpDBcc:        {"DB", false},
	OpDIVS:        {"DIVS", true},
	OpDIVU:        {"DIVU", true},
	OpEOR:         {"EOR", true},
	OpEORI:        {"EORI", true},
	OpEORItoCCR:   {"EORI", false},
	OpEORItoSR:    {"EORI", false},
	OpEXG:         {"EXG", false},
	OpEXT:         {"EXT", true},
	OpILLEGAL:     {"ILLEGAL", false},
	OpJMP:         {"JMP", false},
	OpJSR:         {"JSR", false},
	OpLEA:         {"LEA", false},
	OpLINK:        {"LINK", false},
	OpLSL:         {"LSL", true},
	OpLSR:         {"LSR", true},
	OpMOVE:        {"MOVE", true},
	OpMOVEA:       {"MOVEA", true},
	OpMOVEC:       {"MOVEC", false},
	OpMOVEfromCCR: {"MOVE", false},
	OpMOVEfromSR:  {"MOVE", false},
	OpMOVEM:       {"MOVEM", true},
	OpMOVEP:       {"MOVEP", true},
	OpMOVEQ:       {"MOVEQ", false},
	OpMOVEtoCCR:   {"MOVE", false},
	OpMOVEtoSR:    {"MOVE", false},
	OpMOVEUSP:     {"MOVE", false},
	OpMULS:        {"MULS", true},
	OpMULU:        {"MULU", true},
	OpNBCD:        {"NBCD", false},
	OpNEG:         {"NEG", true},
	OpNEGX:        {"NEGX", true},
	OpNOP:         {"NOP", false},
	OpNOT:         {"NOT", true},
	OpOR:          {"OR", true},
	OpORI:         {"ORI", true},
	OpORItoCCR:    {"ORI", false},
	OpORItoSR:     {"ORI", false},
	OpPEA:         {"PEA", false},
	OpRESET:       {"RESET", false},
	OpROL:         {"ROL", true},
	OpROR:         {"ROR", true},
	OpROXL:        {"ROXL", true},
	OpROXR:        {"ROXR", true},
	OpRTD:         {"RTD", false},
	OpRTE:         {"RTE", false},
	OpRTR:         {"RTR", false},
	OpRTS:         {"RTS", false},
	OpSBCD:        {"SBCD", false},
	OpScc:         {"S", false},
	OpSTOP:        {"STOP", false},
	OpSUB:         {"SUB", true},
	OpSUBA:        {"SUBA", true},
	OpSUBI:        {"SUBI", true},
	OpSUBQ:        {"SUBQ", true},
	OpSUBX:        {"SUBX", true},
	OpSWAP:        {"SWAP", false},
	OpTAS:         {"TAS", false},
	OpTRAP:        {"TRAP", false},
	OpTRAPV:       {"TRAPV", false},
	OpTST:         {"TST", true},
	OpUNLK:        {"UNLK", false},
}

func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("Op(%d)", o)
	}
	return opTable[o].name
}

// Instruction is one decoded machine instruction. Op selects the variant;
// the remaining fields carry whatever operands that variant takes.
// Single-operand instructions use Dst, except the immediate-only forms
// STOP, TRAP and RTD which use Src.
type Instruction struct {
	Op   Op
	Size Size
	// Cond is the condition tested by Bcc, DBcc and Scc.
	Cond Condition
	Src  Target
	Dst  Target
	// Word is the opcode word the instruction was decoded from.
	Word uint16
}

// Mnemonic returns the instruction name with its condition and size suffix.
func (i Instruction) Mnemonic() string {
	name := i.Op.String()
	switch i.Op {
	case OpBcc, OpDBcc, OpScc:
		name += i.Cond.String()
	}
	if i.Op < opCount && opTable[i.Op].sized {
		name += i.Size.Suffix()
	}
	return name
}

// Operands lists the operands in assembler order.
func (i Instruction) Operands() []Target {
	var ops []Target
	if i.Src != nil {
		ops = append(ops, i.Src)
	}
	if i.Dst != nil {
		ops = append(ops, i.Dst)
	}
	return ops
}

// String renders the instruction as MNEMONIC.SIZE<tab>operands.
func (i Instruction) String() string {
	if i.Op == OpInvalid {
		return fmt.Sprintf("DC.W\t$%04X", i.Word)
	}

	ops := i.Operands()
	if len(ops) == 0 {
		return i.Mnemonic()
	}

	parts := make([]string, len(ops))
	for n, t := range ops {
		parts[n] = t.String()
	}
	return i.Mnemonic() + "\t" + strings.Join(parts, ", ")
}
