// Package cpu implements the 68000 instruction set: operands, instruction
// decoding and a fetch/decode/execute engine.
package cpu

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/m68kcore/memory"
)

// State is the phase of the instruction cycle.
type State int

const (
	// Fetching reads the next opcode word at PC.
	Fetching State = iota
	// Decoding turns the opcode word and its extension words into an Instruction.
	Decoding
	// Executing applies the decoded instruction.
	Executing
	// Halting is terminal. Only Reset leaves it.
	Halting
)

func (s State) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Decoding:
		return "decoding"
	case Executing:
		return "executing"
	case Halting:
		return "halting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// FaultPolicy selects what illegal instructions and privilege violations do.
type FaultPolicy int

const (
	// FaultHalt stops the processor with a *Fault.
	FaultHalt FaultPolicy = iota
	// FaultVector runs the exception handler from the vector table.
	FaultVector
)

// CPU memory and registers.
type CPU struct {
	Registers

	// Mem is the address space the processor runs against.
	Mem memory.Memory
	// State is the current phase of the instruction cycle.
	State State
	// Faults selects how illegal and privileged instructions are handled.
	Faults FaultPolicy
	// Log receives instruction traces at debug level and halts at error level.
	Log *logrus.Logger
	// Steps counts completed instructions.
	Steps uint64

	err    error
	saved  Registers
	undo   []undoEntry
	cursor *memory.Cursor
	start  uint32
	ir     uint16
	inst   Instruction
}

// undoEntry records the previous contents of a memory write.
type undoEntry struct {
	addr uint32
	size Size
	old  uint32
}

// New creates a CPU in supervisor state with interrupts masked, ready to
// fetch from address 0. Call Reset to load SSP and PC from the vector table.
func New(mem memory.Memory) *CPU {
	return &CPU{
		Registers: Registers{SR: SRS | SRI2 | SRI1 | SRI0},
		Mem:       mem,
		Log:       logrus.StandardLogger(),
	}
}

// Reset puts the registers in their power-on state and loads the initial
// supervisor stack pointer and program counter from vectors 0 and 1.
func (c *CPU) Reset() error {
	c.Registers = Registers{SR: SRS | SRI2 | SRI1 | SRI0}
	c.err = nil
	c.Steps = 0

	ssp, err := c.Mem.ReadU32(vecResetSSP * 4)
	if err != nil {
		return c.halt(fmt.Errorf("reset: %w", err))
	}
	pc, err := c.Mem.ReadU32(vecResetPC * 4)
	if err != nil {
		return c.halt(fmt.Errorf("reset: %w", err))
	}

	c.A[7] = ssp
	c.PC = pc
	c.State = Fetching
	return nil
}

// LoadCode to specified address and point PC at it.
func (c *CPU) LoadCode(addr uint32, code []byte) error {
	if err := memory.Load(c.Mem, addr, code); err != nil {
		return err
	}
	c.PC = addr
	return nil
}

// Err returns the reason the processor halted, if it has.
func (c *CPU) Err() error {
	return c.err
}

// Halted reports whether the processor is in the Halting state.
func (c *CPU) Halted() bool {
	return c.State == Halting
}

// Step runs one complete instruction.
func (c *CPU) Step() error {
	if c.State == Halting {
		return c.halted()
	}

	for {
		if err := c.advance(); err != nil {
			return err
		}
		if c.State == Fetching {
			return nil
		}
	}
}

// Run executes up to n instructions, or until the processor halts when n
// is zero or less. It returns the number of instructions completed.
func (c *CPU) Run(n int) (int, error) {
	before := c.Steps
	for n <= 0 || int(c.Steps-before) < n {
		if err := c.Step(); err != nil {
			return int(c.Steps - before), err
		}
	}
	return int(c.Steps - before), nil
}

// advance performs a single state transition.
func (c *CPU) advance() error {
	switch c.State {
	case Fetching:
		c.begin()
		w, err := c.cursor.Next()
		if err != nil {
			return c.fault(err)
		}
		c.ir = w
		c.PC = c.cursor.Addr()
		c.State = Decoding

	case Decoding:
		inst, err := Decode(c.ir, c.cursor)
		c.PC = c.cursor.Addr()
		if err != nil {
			return c.fault(err)
		}
		c.inst = inst
		c.State = Executing

	case Executing:
		if c.logger().IsLevelEnabled(logrus.DebugLevel) {
			c.logger().WithFields(logrus.Fields{
				"pc":   fmt.Sprintf("$%08X", c.start),
				"inst": c.inst.String(),
			}).Debug("execute")
		}
		if err := c.execute(c.inst); err != nil {
			return c.fault(err)
		}
		c.Steps++
		c.State = Fetching

	default:
		return c.halted()
	}
	return nil
}

// begin snapshots the registers at an instruction boundary.
func (c *CPU) begin() {
	c.saved = c.Registers
	c.undo = c.undo[:0]
	c.start = c.PC
	c.ir = 0
	c.cursor = memory.NewCursor(c.Mem, c.PC)
}

// rollback restores the state captured by begin.
func (c *CPU) rollback() {
	for i := len(c.undo) - 1; i >= 0; i-- {
		u := c.undo[i]
		_ = c.writeRaw(u.addr, u.size, u.old)
	}
	c.undo = c.undo[:0]
	c.Registers = c.saved
}

// fault handles an error raised while processing the current instruction.
func (c *CPU) fault(err error) error {
	if errors.Is(err, ErrStopped) {
		c.Steps++
		c.State = Halting
		c.err = err
		c.logger().WithField("sr", fmt.Sprintf("$%04X", c.SR)).Info("stopped")
		return err
	}

	vector := -1
	var de *DecodeError
	switch {
	case errors.As(err, &de):
		vector = de.Vector()
	case errors.Is(err, ErrIllegalOpcode):
		vector = vecIllegal
	case errors.Is(err, ErrPrivilegeViolation):
		vector = vecPrivilege
	}

	c.rollback()
	if vector >= 0 && c.Faults == FaultVector {
		xerr := c.exception(vector, c.start)
		if xerr == nil {
			c.Steps++
			c.State = Fetching
			return nil
		}
		c.rollback()
		err = xerr
	}

	f := &Fault{PC: c.start, Word: c.ir, Err: err}
	c.logger().WithFields(logrus.Fields{
		"pc":   fmt.Sprintf("$%08X", f.PC),
		"word": fmt.Sprintf("$%04X", f.Word),
	}).WithError(err).Error("halt")
	return c.halt(f)
}

func (c *CPU) halt(err error) error {
	c.State = Halting
	c.err = err
	return err
}

func (c *CPU) halted() error {
	if c.err == nil {
		return ErrHalted
	}
	return fmt.Errorf("%w: %w", ErrHalted, c.err)
}

func (c *CPU) logger() *logrus.Logger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}
