package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/m68kcore/memory"
)

// backings returns small instances of every Memory implementation.
func backings(size uint32) map[string]memory.Memory {
	return map[string]memory.Memory{
		"bytes": make(memory.ByteMemory, size),
		"words": make(memory.WordMemory, size/2),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, m := range backings(64) {
		t.Run(name, func(t *testing.T) {
			for _, addr := range []uint32{0, 1, 2, 3, 59, 60} {
				require.NoError(t, m.WriteU8(addr, 0xA5))
				b, err := m.ReadU8(addr)
				require.NoError(t, err)
				assert.Equal(t, uint8(0xA5), b)

				require.NoError(t, m.WriteU16(addr, 0xBEEF))
				w, err := m.ReadU16(addr)
				require.NoError(t, err)
				assert.Equal(t, uint16(0xBEEF), w)

				require.NoError(t, m.WriteU32(addr, 0xDEADC0DE))
				l, err := m.ReadU32(addr)
				require.NoError(t, err)
				assert.Equal(t, uint32(0xDEADC0DE), l, "addr %d", addr)
			}
		})
	}
}

func TestBigEndian(t *testing.T) {
	for name, m := range backings(16) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.WriteU16(0, 0x1234))
			b0, _ := m.ReadU8(0)
			b1, _ := m.ReadU8(1)
			assert.Equal(t, uint8(0x12), b0)
			assert.Equal(t, uint8(0x34), b1)

			require.NoError(t, m.WriteU32(4, 0x01020304))
			for i := range uint32(4) {
				b, _ := m.ReadU8(4 + i)
				assert.Equal(t, uint8(i+1), b)
			}
			w, _ := m.ReadU16(5)
			assert.Equal(t, uint16(0x0203), w)
		})
	}
}

func TestOutOfBounds(t *testing.T) {
	for name, m := range backings(8) {
		t.Run(name, func(t *testing.T) {
			for i := range uint32(8) {
				require.NoError(t, m.WriteU8(i, 0x11))
			}

			cases := []struct {
				addr  uint32
				width int
			}{
				{8, 1}, {7, 2}, {6, 4}, {5, 4}, {0xFFFFFFFF, 1}, {0xFFFFFFFE, 4},
			}
			for _, tc := range cases {
				var err error
				switch tc.width {
				case 1:
					_, err = m.ReadU8(tc.addr)
					assert.ErrorIs(t, err, memory.ErrOutOfBounds)
					err = m.WriteU8(tc.addr, 0xFF)
				case 2:
					_, err = m.ReadU16(tc.addr)
					assert.ErrorIs(t, err, memory.ErrOutOfBounds)
					err = m.WriteU16(tc.addr, 0xFFFF)
				case 4:
					_, err = m.ReadU32(tc.addr)
					assert.ErrorIs(t, err, memory.ErrOutOfBounds)
					err = m.WriteU32(tc.addr, 0xFFFFFFFF)
				}
				assert.ErrorIs(t, err, memory.ErrOutOfBounds)

				var ae *memory.AccessError
				require.ErrorAs(t, err, &ae)
				assert.Equal(t, tc.addr, ae.Addr)
			}

			for i := range uint32(8) {
				b, err := m.ReadU8(i)
				require.NoError(t, err)
				assert.Equal(t, uint8(0x11), b, "byte %d modified", i)
			}
		})
	}
}

func TestBackingsAgree(t *testing.T) {
	image := []byte{0x4E, 0x71, 0x70, 0x05, 0xFF, 0x00, 0x12, 0x34, 0x56}
	b := make(memory.ByteMemory, 16)
	w := make(memory.WordMemory, 8)
	require.NoError(t, memory.Load(b, 1, image))
	require.NoError(t, memory.Load(w, 1, image))

	for addr := range uint32(13) {
		bv, berr := b.ReadU32(addr)
		wv, werr := w.ReadU32(addr)
		assert.Equal(t, berr == nil, werr == nil)
		assert.Equal(t, bv, wv, "long at %d", addr)

		bh, _ := b.ReadU16(addr)
		wh, _ := w.ReadU16(addr)
		assert.Equal(t, bh, wh, "word at %d", addr)
	}
}

func TestLoadDoesNotPartiallyWrite(t *testing.T) {
	m := make(memory.ByteMemory, 4)
	err := memory.Load(m, 2, []byte{1, 2, 3})
	assert.ErrorIs(t, err, memory.ErrOutOfBounds)
	assert.Equal(t, memory.ByteMemory{0, 0, 0, 0}, m)
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, uint32(0x50_0000), memory.New().Size())
	assert.Equal(t, uint32(0x50_0000), memory.NewWords().Size())
}

func TestEndianHelpers(t *testing.T) {
	b := memory.WordsToBytes(0x1234, 0xABCD)
	assert.Equal(t, []byte{0x12, 0x34, 0xAB, 0xCD}, b)
	assert.Equal(t, []uint16{0x1234, 0xAB00}, memory.BytesToWords([]byte{0x12, 0x34, 0xAB}))
}
