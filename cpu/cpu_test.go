package cpu_test

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/m68kcore/cpu"
	"github.com/Urethramancer/m68kcore/memory"
)

const (
	origin = 0x1000
	stack  = 0x8000
)

// newCPU loads code at origin in a 64 KiB address space with the
// supervisor stack at stack.
func newCPU(t *testing.T, code ...uint16) (*cpu.CPU, memory.ByteMemory) {
	t.Helper()
	mem := make(memory.ByteMemory, 0x10000)
	c := cpu.New(mem)
	c.Log, _ = test.NewNullLogger()
	require.NoError(t, c.LoadCode(origin, memory.WordsToBytes(code...)))
	c.A[7] = stack
	return c, mem
}

func long(t *testing.T, m memory.Memory, addr uint32) uint32 {
	t.Helper()
	v, err := m.ReadU32(addr)
	require.NoError(t, err)
	return v
}

func word(t *testing.T, m memory.Memory, addr uint32) uint16 {
	t.Helper()
	v, err := m.ReadU16(addr)
	require.NoError(t, err)
	return v
}

func TestNewAndReset(t *testing.T) {
	mem := make(memory.ByteMemory, 0x10000)
	require.NoError(t, mem.WriteU32(0, stack))
	require.NoError(t, mem.WriteU32(4, origin))

	c := cpu.New(mem)
	assert.Equal(t, uint16(0x2700), c.SR)
	assert.True(t, c.Supervisor())

	c.D[3] = 99
	require.NoError(t, c.Reset())
	assert.Equal(t, uint32(stack), c.A[7])
	assert.Equal(t, uint32(origin), c.PC)
	assert.Equal(t, uint16(0x2700), c.SR)
	assert.Zero(t, c.D[3])
	assert.Equal(t, cpu.Fetching, c.State)
}

func TestResetOutOfBounds(t *testing.T) {
	c := cpu.New(make(memory.ByteMemory, 4))
	c.Log, _ = test.NewNullLogger()
	require.ErrorIs(t, c.Reset(), memory.ErrOutOfBounds)
	assert.True(t, c.Halted())
}

func TestMoveQFlags(t *testing.T) {
	c, _ := newCPU(t, 0x70FF, 0x7200)
	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0xFFFFFFFF), c.D[0])
	assert.Equal(t, "xNzvc", c.CCR())

	require.NoError(t, c.Step())
	assert.Zero(t, c.D[1])
	assert.Equal(t, "xnZvc", c.CCR())
	assert.Equal(t, uint32(origin+4), c.PC)
	assert.Equal(t, uint64(2), c.Steps)
}

func TestAddOverflowKeepsUpperBits(t *testing.T) {
	c, _ := newCPU(t, 0xD001) // ADD.B D1,D0
	c.D[0] = 0x1234567F
	c.D[1] = 1
	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x12345680), c.D[0])
	assert.Equal(t, "xNzVc", c.CCR())
}

func TestSubBorrowSetsExtend(t *testing.T) {
	c, _ := newCPU(t, 0x9081) // SUB.L D1,D0
	c.D[1] = 1
	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0xFFFFFFFF), c.D[0])
	assert.Equal(t, "XNzvC", c.CCR())
}

func TestCompareLeavesExtend(t *testing.T) {
	c, _ := newCPU(t, 0xB081) // CMP.L D1,D0
	c.SR |= cpu.SRX
	c.D[0], c.D[1] = 7, 7
	require.NoError(t, c.Step())
	assert.Equal(t, "XnZvc", c.CCR())
	assert.Equal(t, uint32(7), c.D[0])
}

func TestAddaLeavesFlags(t *testing.T) {
	c, _ := newCPU(t, 0xD0C0) // ADDA.W D0,A0
	c.SR |= cpu.SRZ | cpu.SRC
	c.D[0] = 0xFFFF
	c.A[0] = 0x1000
	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x0FFF), c.A[0])
	assert.Equal(t, "xnZvC", c.CCR())
}

func TestNoConditionCodeEffect(t *testing.T) {
	for _, tt := range []struct {
		name string
		code []uint16
	}{
		{"MOVEA.W D0,A0", []uint16{0x3040}},
		{"LEA (A0),A1", []uint16{0x43D0}},
		{"PEA (A0)", []uint16{0x4850}},
		{"EXG D0,D1", []uint16{0xC141}},
		{"ADDQ.L #1,A0", []uint16{0x5288}},
		{"SUBQ.L #1,A0", []uint16{0x5388}},
		{"MOVEM.L D0-D1,-(A7)", []uint16{0x48E7, 0xC000}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newCPU(t, tt.code...)
			c.SR |= cpu.SRX | cpu.SRN | cpu.SRZ | cpu.SRV | cpu.SRC
			c.D[0], c.D[1] = 0xFFFF, 1
			c.A[0] = 0x2000
			require.NoError(t, c.Step())
			assert.Equal(t, "XNZVC", c.CCR())
		})
	}
}

func TestPredecrementOnce(t *testing.T) {
	c, mem := newCPU(t,
		0x3100, // MOVE.W D0,-(A0)
		0xD160, // ADD.W D0,-(A0)
	)
	c.D[0] = 0x0102
	c.A[0] = 0x2000
	require.NoError(t, mem.WriteU16(0x1FFC, 0x0001))

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x1FFE), c.A[0])
	assert.Equal(t, uint16(0x0102), word(t, mem, 0x1FFE))

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x1FFC), c.A[0])
	assert.Equal(t, uint16(0x0103), word(t, mem, 0x1FFC))
}

func TestOperandsResolveLeftToRight(t *testing.T) {
	c, mem := newCPU(t, 0xD148) // ADDX.W -(A0),-(A0)
	c.A[0] = 0x2010
	require.NoError(t, mem.WriteU16(0x200E, 1))
	require.NoError(t, mem.WriteU16(0x200C, 2))

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x200C), c.A[0])
	assert.Equal(t, uint16(3), word(t, mem, 0x200C))
	assert.Equal(t, uint16(1), word(t, mem, 0x200E))
}

func TestByteStackStepsByTwo(t *testing.T) {
	c, _ := newCPU(t, 0x1F00) // MOVE.B D0,-(A7)
	require.NoError(t, c.Step())
	assert.Equal(t, uint32(stack-2), c.A[7])
}

func TestDivide(t *testing.T) {
	c, _ := newCPU(t,
		0x80C1, // DIVU.W D1,D0
		0x85C3, // DIVS.W D3,D2
	)
	c.D[0], c.D[1] = 100, 7
	c.D[2], c.D[3] = 0xFFFFFFF9, 2

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x0002000E), c.D[0])

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0xFFFFFFFD), c.D[2])
	assert.Equal(t, "xNzvc", c.CCR())
}

func TestDivideOverflow(t *testing.T) {
	c, _ := newCPU(t, 0x80C1) // DIVU.W D1,D0
	c.D[0], c.D[1] = 0x00100000, 1
	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x00100000), c.D[0])
	assert.True(t, c.SR&cpu.SRV != 0)
}

func TestDivideByZeroVectors(t *testing.T) {
	c, mem := newCPU(t, 0x80C1)
	require.NoError(t, mem.WriteU32(5*4, 0x3000))
	c.D[0] = 1

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x3000), c.PC)
	assert.Equal(t, uint32(stack-6), c.A[7])
	assert.Equal(t, uint32(origin+2), long(t, mem, stack-4))
}

func TestTrapAndReturn(t *testing.T) {
	c, mem := newCPU(t, 0x4E43) // TRAP #3
	require.NoError(t, mem.WriteU32((32+3)*4, 0x4000))
	require.NoError(t, mem.WriteU16(0x4000, 0x4E73)) // RTE
	c.SR |= cpu.SRC

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x4000), c.PC)
	assert.Equal(t, uint32(stack-6), c.A[7])
	assert.Equal(t, uint16(0x2701), word(t, mem, stack-6))
	assert.Equal(t, uint32(origin+2), long(t, mem, stack-4))

	c.SR &^= cpu.SRC
	require.NoError(t, c.Step())
	assert.Equal(t, uint32(origin+2), c.PC)
	assert.Equal(t, uint16(0x2701), c.SR)
	assert.Equal(t, uint32(stack), c.A[7])
}

func TestVectorBaseRegister(t *testing.T) {
	c, mem := newCPU(t, 0x4E40) // TRAP #0
	c.VBR = 0x2000
	require.NoError(t, mem.WriteU32(0x2000+32*4, 0x5000))
	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x5000), c.PC)
}

func TestCheckBounds(t *testing.T) {
	c, mem := newCPU(t, 0x4181, 0x4181) // CHK.W D1,D0 twice
	require.NoError(t, mem.WriteU32(6*4, 0x3000))
	c.D[0], c.D[1] = 2, 3

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(origin+2), c.PC)

	c.D[0] = 5
	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x3000), c.PC)
	assert.False(t, c.SR&cpu.SRN != 0)
}

func TestPrivilegeViolationHalts(t *testing.T) {
	c, _ := newCPU(t, 0x46FC, 0x2700) // MOVE #$2700,SR
	c.SR = 0
	c.D[0] = 42

	err := c.Step()
	require.ErrorIs(t, err, cpu.ErrPrivilegeViolation)

	var f *cpu.Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, uint32(origin), f.PC)
	assert.Equal(t, uint16(0x46FC), f.Word)

	assert.True(t, c.Halted())
	assert.Equal(t, uint32(origin), c.PC)
	assert.Equal(t, uint16(0), c.SR)
	assert.ErrorIs(t, c.Step(), cpu.ErrHalted)
	assert.ErrorIs(t, c.Step(), cpu.ErrPrivilegeViolation)
}

func TestPrivilegeViolationVectors(t *testing.T) {
	c, mem := newCPU(t, 0x4E70) // RESET
	c.Faults = cpu.FaultVector
	c.SR = 0
	c.SSP = 0x9000
	require.NoError(t, mem.WriteU32(8*4, 0x3000))

	require.NoError(t, c.Step())
	assert.True(t, c.Supervisor())
	assert.Equal(t, uint32(0x3000), c.PC)
	assert.Equal(t, uint32(0x9000-6), c.A[7])
	assert.Equal(t, uint32(stack), c.USP)
	assert.Equal(t, uint16(0), word(t, mem, 0x9000-6))
	assert.Equal(t, uint32(origin), long(t, mem, 0x9000-4))
}

func TestIllegalPolicies(t *testing.T) {
	c, _ := newCPU(t, 0xA123)
	err := c.Step()
	require.ErrorIs(t, err, cpu.ErrIllegalOpcode)
	assert.True(t, c.Halted())

	c, mem := newCPU(t, 0xA123)
	c.Faults = cpu.FaultVector
	require.NoError(t, mem.WriteU32(10*4, 0x3000))
	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x3000), c.PC)
	assert.Equal(t, uint32(origin), long(t, mem, stack-4))
}

func TestDoubleFault(t *testing.T) {
	c, _ := newCPU(t, 0x4AFC) // ILLEGAL
	c.Faults = cpu.FaultVector
	c.A[7] = 2

	err := c.Step()
	require.ErrorIs(t, err, cpu.ErrDoubleFault)
	require.ErrorIs(t, err, memory.ErrOutOfBounds)
	assert.True(t, c.Halted())
	assert.Equal(t, uint32(2), c.A[7])
	assert.Equal(t, uint16(0x2700), c.SR)
}

func TestOutOfBoundsRollsBack(t *testing.T) {
	c, mem := newCPU(t, 0x48D0, 0x0003) // MOVEM.L D0-D1,(A0)
	c.A[0] = 0xFFFC
	c.D[0], c.D[1] = 0x11111111, 0x22222222
	require.NoError(t, mem.WriteU32(0xFFFC, 0xCAFEBABE))

	err := c.Step()
	require.ErrorIs(t, err, memory.ErrOutOfBounds)
	assert.True(t, c.Halted())
	assert.Equal(t, uint32(0xCAFEBABE), long(t, mem, 0xFFFC))
	assert.Equal(t, uint32(origin), c.PC)
}

func TestOutOfBoundsIgnoresFaultPolicy(t *testing.T) {
	c, _ := newCPU(t, 0x2010) // MOVE.L (A0),D0
	c.Faults = cpu.FaultVector
	c.A[0] = 0x20000
	require.ErrorIs(t, c.Step(), memory.ErrOutOfBounds)
	assert.True(t, c.Halted())
}

func TestMisalignedFetch(t *testing.T) {
	c, _ := newCPU(t, 0x4E71)
	c.PC = origin + 1
	require.ErrorIs(t, c.Step(), memory.ErrMisaligned)
	assert.True(t, c.Halted())
	assert.Equal(t, uint32(origin+1), c.PC)
}

func TestStop(t *testing.T) {
	c, _ := newCPU(t, 0x4E72, 0x2004) // STOP #$2004
	err := c.Step()
	require.ErrorIs(t, err, cpu.ErrStopped)
	assert.Equal(t, uint16(0x2004), c.SR)
	assert.Equal(t, uint64(1), c.Steps)
	assert.True(t, c.Halted())
	assert.ErrorIs(t, c.Step(), cpu.ErrHalted)
}

func TestRunBudget(t *testing.T) {
	c, _ := newCPU(t, 0x60FE) // BRA to self
	n, err := c.Run(10)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, uint32(origin), c.PC)
}

func TestCountedLoop(t *testing.T) {
	c, _ := newCPU(t,
		0x7004,         // MOVEQ #4,D0
		0x5281,         // ADDQ.L #1,D1
		0x51C8, 0xFFFC, // DBF D0,loop
		0x4E72, 0x2700, // STOP #$2700
	)
	n, err := c.Run(0)
	require.ErrorIs(t, err, cpu.ErrStopped)
	assert.Equal(t, 12, n)
	assert.Equal(t, uint32(5), c.D[1])
	assert.Equal(t, uint32(0xFFFF), c.D[0])
}

func TestSubroutine(t *testing.T) {
	c, _ := newCPU(t,
		0x6104,         // BSR sub
		0x4E72, 0x2700, // STOP #$2700
		0x7007, // sub: MOVEQ #7,D0
		0x4E75, // RTS
	)
	_, err := c.Run(0)
	require.ErrorIs(t, err, cpu.ErrStopped)
	assert.Equal(t, uint32(7), c.D[0])
	assert.Equal(t, uint32(stack), c.A[7])
}

func TestLinkUnlink(t *testing.T) {
	c, mem := newCPU(t,
		0x4E56, 0xFFF8, // LINK A6,#-8
		0x4E5E, // UNLK A6
	)
	c.A[6] = 0xABCD

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(stack-4), c.A[6])
	assert.Equal(t, uint32(stack-12), c.A[7])
	assert.Equal(t, uint32(0xABCD), long(t, mem, stack-4))

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0xABCD), c.A[6])
	assert.Equal(t, uint32(stack), c.A[7])
}

func TestSupervisorStackSwap(t *testing.T) {
	c, _ := newCPU(t,
		0x4E60,         // MOVE A0,USP
		0x46FC, 0x0000, // MOVE #0,SR
	)
	c.A[0] = 0x6000

	require.NoError(t, c.Step())
	assert.Equal(t, uint32(0x6000), c.USP)

	require.NoError(t, c.Step())
	assert.False(t, c.Supervisor())
	assert.Equal(t, uint32(0x6000), c.A[7])
	assert.Equal(t, uint32(stack), c.SSP)
}

func TestMoveControlRegister(t *testing.T) {
	c, _ := newCPU(t,
		0x4E7B, 0x0801, // MOVEC D0,VBR
		0x4E7A, 0x1801, // MOVEC VBR,D1
	)
	c.D[0] = 0x4000
	_, err := c.Run(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x4000), c.VBR)
	assert.Equal(t, uint32(0x4000), c.D[1])
}

func TestTraceLogging(t *testing.T) {
	c, _ := newCPU(t, 0x4E71, 0xA000)
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	c.Log = log

	require.NoError(t, c.Step())
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "execute", entry.Message)
	assert.Equal(t, "NOP", entry.Data["inst"])
	assert.Equal(t, "$00001000", entry.Data["pc"])

	require.Error(t, c.Step())
	entry = hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "halt", entry.Message)
	assert.True(t, errors.Is(entry.Data[logrus.ErrorKey].(error), cpu.ErrIllegalOpcode))
}
