package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalOpcode is returned for reserved instruction words and ILLEGAL.
	ErrIllegalOpcode = errors.New("illegal opcode")
	// ErrPrivilegeViolation is returned when a supervisor instruction runs in user state.
	ErrPrivilegeViolation = errors.New("privilege violation")
	// ErrStopped is returned once STOP has halted the processor.
	ErrStopped = errors.New("processor stopped")
	// ErrDoubleFault is returned when exception processing itself faults.
	ErrDoubleFault = errors.New("double fault")
	// ErrHalted is returned when stepping a halted processor.
	ErrHalted = errors.New("processor halted")
)

// Exception vector numbers.
const (
	vecResetSSP  = 0
	vecResetPC   = 1
	vecIllegal   = 4
	vecZeroDiv   = 5
	vecCHK       = 6
	vecTRAPV     = 7
	vecPrivilege = 8
	vecLineA     = 10
	vecLineF     = 11
	vecTrap0     = 32
)

// DecodeError reports an instruction word that does not decode.
type DecodeError struct {
	Word uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("illegal opcode %04X", e.Word)
}

func (e *DecodeError) Unwrap() error {
	return ErrIllegalOpcode
}

// Vector returns the exception vector the word raises.
func (e *DecodeError) Vector() int {
	switch e.Word >> 12 {
	case 0xA:
		return vecLineA
	case 0xF:
		return vecLineF
	}
	return vecIllegal
}

// Fault describes the instruction that halted the processor.
type Fault struct {
	// PC is the address of the faulting instruction.
	PC   uint32
	Word uint16
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at $%08X (%04X): %v", f.PC, f.Word, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
