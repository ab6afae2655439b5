package cpu

// Condition is a four-bit condition code test.
type Condition uint8

// Condition codes in encoding order.
const (
	CondT Condition = iota
	CondF
	CondHI
	CondLS
	CondCC
	CondCS
	CondNE
	CondEQ
	CondVC
	CondVS
	CondPL
	CondMI
	CondGE
	CondLT
	CondGT
	CondLE
)

var condNames = [16]string{
	"T", "F", "HI", "LS", "CC", "CS", "NE", "EQ",
	"VC", "VS", "PL", "MI", "GE", "LT", "GT", "LE",
}

func (c Condition) String() string {
	return condNames[c&15]
}

// Test evaluates the condition against a status register value.
func (c Condition) Test(sr uint16) bool {
	n := sr&SRN != 0
	z := sr&SRZ != 0
	v := sr&SRV != 0
	cy := sr&SRC != 0

	switch c & 15 {
	case CondT:
		return true
	case CondF:
		return false
	case CondHI:
		return !cy && !z
	case CondLS:
		return cy || z
	case CondCC:
		return !cy
	case CondCS:
		return cy
	case CondNE:
		return !z
	case CondEQ:
		return z
	case CondVC:
		return !v
	case CondVS:
		return v
	case CondPL:
		return !n
	case CondMI:
		return n
	case CondGE:
		return n == v
	case CondLT:
		return n != v
	case CondGT:
		return !z && n == v
	default: // CondLE
		return z || n != v
	}
}
