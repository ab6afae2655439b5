package cpu

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// exception enters supervisor state, stacks pc and the old SR, and loads PC
// from the vector table at VBR. Any failure here is a double fault.
func (c *CPU) exception(vector int, pc uint32) error {
	sr := c.SR
	c.setSR((sr | SRS) &^ SRT)

	if err := c.push32(pc); err != nil {
		return fmt.Errorf("%w: vector %d: %w", ErrDoubleFault, vector, err)
	}
	if err := c.push16(sr); err != nil {
		return fmt.Errorf("%w: vector %d: %w", ErrDoubleFault, vector, err)
	}
	handler, err := c.read(c.VBR+uint32(vector)*4, SizeLong)
	if err != nil {
		return fmt.Errorf("%w: vector %d: %w", ErrDoubleFault, vector, err)
	}

	c.logger().WithFields(logrus.Fields{
		"vector":  vector,
		"pc":      fmt.Sprintf("$%08X", pc),
		"sr":      fmt.Sprintf("$%04X", sr),
		"handler": fmt.Sprintf("$%08X", handler),
	}).Debug("exception")
	c.PC = handler
	return nil
}

// opTrap handles TRAP, TRAPV and CHK. The stacked PC is the next
// instruction.
func (c *CPU) opTrap(i Instruction) error {
	switch i.Op {
	case OpTRAP:
		n, err := c.load(i.Src, SizeByte)
		if err != nil {
			return err
		}
		return c.exception(vecTrap0+int(n&15), c.PC)

	case OpTRAPV:
		if c.flag(SRV) {
			return c.exception(vecTRAPV, c.PC)
		}

	case OpCHK:
		bound, err := c.load(i.Src, SizeWord)
		if err != nil {
			return err
		}
		d, err := c.regPtr(i.Dst)
		if err != nil {
			return err
		}
		v := int16(*d)
		switch {
		case v < 0:
			c.SR |= SRN
		case v > int16(bound):
			c.SR &^= SRN
		default:
			return nil
		}
		return c.exception(vecCHK, c.PC)
	}
	return nil
}

func (c *CPU) opILLEGAL(i Instruction) error {
	return fmt.Errorf("%s: %w", i.Mnemonic(), ErrIllegalOpcode)
}

// opControl handles STOP and RESET. STOP loads SR and halts the processor.
// RESET has no devices to reset.
func (c *CPU) opControl(i Instruction) error {
	if err := c.privileged(i); err != nil {
		return err
	}

	if i.Op == OpRESET {
		c.logger().WithField("pc", fmt.Sprintf("$%08X", c.start)).Info("reset asserted")
		return nil
	}

	sr, err := c.load(i.Src, SizeWord)
	if err != nil {
		return err
	}
	c.setSR(uint16(sr))
	return ErrStopped
}
