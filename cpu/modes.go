package cpu

// Addressing mode constants (3-bit mode field + 3-bit register field)
const (
	// 000: Data Register Direct: Dn
	ModeData uint16 = 0
	// 001: Address Register Direct: An
	ModeAddr uint16 = 1
	// 010: Address Register Indirect: (An)
	ModeAddrInd uint16 = 2
	// 011: Address Register Indirect with Postincrement: (An)+
	ModeAddrPostInc uint16 = 3
	// 100: Address Register Indirect with Predecrement: -(An)
	ModeAddrPreDec uint16 = 4
	// 101: Address Register Indirect with Displacement: (d16,An)
	ModeAddrDisp uint16 = 5
	// 110: Address Register Indirect with Index: (d8,An,Xn)
	ModeAddrIndex uint16 = 6
	// 111: Miscellaneous / other addressing modes
	ModeOther uint16 = 7
)

// Submodes for ModeOther (register field = 3 bits)
const (
	RegAbsShort  uint16 = 0 // (xxx).W
	RegAbsLong   uint16 = 1 // (xxx).L
	RegPCDisp    uint16 = 2 // (d16,PC)
	RegPCIndex   uint16 = 3 // (d8,PC,Xn)
	RegImmediate uint16 = 4 // #<data>
)

// Addressing categories, as bit sets of the individual modes an
// instruction accepts.
const (
	eaDn = 1 << iota
	eaAn
	eaInd
	eaPostInc
	eaPreDec
	eaDisp
	eaIndex
	eaAbsW
	eaAbsL
	eaPCDisp
	eaPCIndex
	eaImm

	eaAll        = eaDn | eaAn | eaInd | eaPostInc | eaPreDec | eaDisp | eaIndex | eaAbsW | eaAbsL | eaPCDisp | eaPCIndex | eaImm
	eaData       = eaAll &^ eaAn
	eaMemory     = eaAll &^ (eaDn | eaAn)
	eaControl    = eaInd | eaDisp | eaIndex | eaAbsW | eaAbsL | eaPCDisp | eaPCIndex
	eaAlterable  = eaAll &^ (eaPCDisp | eaPCIndex | eaImm)
	eaDataAlt    = eaData & eaAlterable
	eaMemAlt     = eaMemory & eaAlterable
	eaControlAlt = eaControl & eaAlterable
)

// modeClass maps a mode/register pair to its category bit.
func modeClass(mode, reg uint16) int {
	if mode < ModeOther {
		return 1 << mode
	}
	switch reg {
	case RegAbsShort:
		return eaAbsW
	case RegAbsLong:
		return eaAbsL
	case RegPCDisp:
		return eaPCDisp
	case RegPCIndex:
		return eaPCIndex
	case RegImmediate:
		return eaImm
	}
	return 0
}
