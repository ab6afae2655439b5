package cpu

import (
	"fmt"
	"strings"
)

// Status register flags.
const (
	// SRC is carry
	SRC = 1 << 0
	// SRV is overflow
	SRV = 1 << 1
	// SRZ is zero
	SRZ = 1 << 2
	// SRN is negative
	SRN = 1 << 3
	// SRX is extend
	SRX = 1 << 4
	// SRI0 is interrupt level 0
	SRI0 = 1 << 8
	// SRI1 is interrupt level 1
	SRI1 = 1 << 9
	// SRI2 is interrupt level 2
	SRI2 = 1 << 10
	// SRS is supervisor state
	SRS = 1 << 13
	// SRT is trace mode
	SRT = 1 << 15
)

const (
	// srMask covers the implemented status register bits.
	srMask = SRT | SRS | SRI2 | SRI1 | SRI0 | ccrMask
	// ccrMask covers the condition codes.
	ccrMask = SRX | SRN | SRZ | SRV | SRC
)

// Registers is the architectural register file.
type Registers struct {
	// D is for data registers.
	D [8]uint32
	// A is for address registers. A7 is the active stack pointer.
	A [8]uint32
	// PC is the program counter.
	PC uint32
	// SR is the status register.
	SR uint16
	// USP holds the user stack pointer while in supervisor state.
	USP uint32
	// SSP holds the supervisor stack pointer while in user state.
	SSP uint32

	// Control registers reachable through MOVEC.
	VBR  uint32
	SFC  uint32
	DFC  uint32
	CACR uint32
	CAAR uint32
}

// Supervisor reports whether the supervisor bit is set.
func (r *Registers) Supervisor() bool {
	return r.SR&SRS != 0
}

// Mask returns the interrupt priority mask.
func (r *Registers) Mask() int {
	return int(r.SR>>8) & 7
}

// flag reports whether a status bit is set.
func (r *Registers) flag(bit uint16) bool {
	return r.SR&bit != 0
}

// setFlag sets or clears a status bit.
func (r *Registers) setFlag(bit uint16, on bool) {
	if on {
		r.SR |= bit
	} else {
		r.SR &^= bit
	}
}

// setSR loads the status register and swaps stack pointers when the
// supervisor bit changes.
func (r *Registers) setSR(v uint16) {
	v &= srMask
	was, now := r.SR&SRS != 0, v&SRS != 0
	switch {
	case was && !now:
		r.SSP = r.A[7]
		r.A[7] = r.USP
	case !was && now:
		r.USP = r.A[7]
		r.A[7] = r.SSP
	}
	r.SR = v
}

// setCCR replaces the condition codes only.
func (r *Registers) setCCR(v uint16) {
	r.SR = r.SR&^ccrMask | v&ccrMask
}

// usp returns the user stack pointer regardless of the current state.
func (r *Registers) usp() uint32 {
	if r.Supervisor() {
		return r.USP
	}
	return r.A[7]
}

func (r *Registers) setUSP(v uint32) {
	if r.Supervisor() {
		r.USP = v
	} else {
		r.A[7] = v
	}
}

// CCR renders the condition codes as XNZVC, upper case when set.
func (r *Registers) CCR() string {
	const names = "XNZVC"
	var b strings.Builder
	for i, bit := range []uint16{SRX, SRN, SRZ, SRV, SRC} {
		c := names[i]
		if r.SR&bit == 0 {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func (r *Registers) String() string {
	var b strings.Builder
	for i := range 8 {
		fmt.Fprintf(&b, "D%d=%08X ", i, r.D[i])
		if i == 3 || i == 7 {
			b.WriteByte('\n')
		}
	}
	for i := range 8 {
		fmt.Fprintf(&b, "A%d=%08X ", i, r.A[i])
		if i == 3 || i == 7 {
			b.WriteByte('\n')
		}
	}
	fmt.Fprintf(&b, "PC=%08X SR=%04X USP=%08X SSP=%08X CCR=%s", r.PC, r.SR, r.usp(), r.ssp(), r.CCR())
	return b.String()
}

func (r *Registers) ssp() uint32 {
	if r.Supervisor() {
		return r.A[7]
	}
	return r.SSP
}
