package cpu_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/Urethramancer/m68kcore/cpu"
	"github.com/Urethramancer/m68kcore/memory"
)

// TestPrograms runs every testdata/*.txtar archive. The comment holds
// "steps N" (default 1), the code section holds hex words loaded at
// origin, and the before and after sections hold name=value lines for
// registers (d0-d7, a0-a7, pc, sr, ccr, vbr, usp) and memory (b@, w@, l@).
func TestPrograms(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)
			runProgram(t, ar)
		})
	}
}

func runProgram(t *testing.T, ar *txtar.Archive) {
	steps := 1
	for _, line := range strings.Split(string(ar.Comment), "\n") {
		if n, ok := strings.CutPrefix(strings.TrimSpace(line), "steps "); ok {
			v, err := strconv.Atoi(n)
			require.NoError(t, err)
			steps = v
		}
	}

	sections := map[string]string{}
	for _, f := range ar.Files {
		sections[f.Name] = string(f.Data)
	}

	code, err := parseWords(sections["code"])
	require.NoError(t, err)
	c, mem := newCPU(t, code...)

	for _, kv := range assignments(t, sections["before"]) {
		require.NoError(t, set(c, mem, kv[0], kv[1]), kv[0])
	}

	_, err = c.Run(steps)
	if err != nil && !errors.Is(err, cpu.ErrStopped) {
		require.NoError(t, err)
	}

	for _, kv := range assignments(t, sections["after"]) {
		got, err := get(c, mem, kv[0])
		require.NoError(t, err, kv[0])
		assert.Equal(t, strings.ToUpper(kv[1]), strings.ToUpper(got), kv[0])
		if kv[0] == "ccr" {
			assert.Equal(t, kv[1], got, "ccr")
		}
	}
}

// parseWords reads whitespace separated hex words. Anything after ';' on a
// line is a comment.
func parseWords(s string) ([]uint16, error) {
	var words []uint16
	for _, line := range strings.Split(s, "\n") {
		line, _, _ = strings.Cut(line, ";")
		for _, f := range strings.Fields(line) {
			v, err := strconv.ParseUint(f, 16, 16)
			if err != nil {
				return nil, err
			}
			words = append(words, uint16(v))
		}
	}
	return words, nil
}

func assignments(t *testing.T, s string) [][2]string {
	var out [][2]string
	for _, line := range strings.Split(s, "\n") {
		line, _, _ = strings.Cut(line, ";")
		for _, f := range strings.Fields(line) {
			k, v, ok := strings.Cut(f, "=")
			require.True(t, ok, "bad assignment %q", f)
			out = append(out, [2]string{strings.ToLower(k), v})
		}
	}
	return out
}

// register returns the register a name refers to.
func register(c *cpu.CPU, name string) (*uint32, bool) {
	if len(name) == 2 && name[1] >= '0' && name[1] <= '7' {
		switch name[0] {
		case 'd':
			return &c.D[name[1]-'0'], true
		case 'a':
			return &c.A[name[1]-'0'], true
		}
	}
	switch name {
	case "pc":
		return &c.PC, true
	case "vbr":
		return &c.VBR, true
	case "usp":
		return &c.USP, true
	}
	return nil, false
}

// memoryRef splits b@ADDR, w@ADDR and l@ADDR names.
func memoryRef(name string) (cpu.Size, uint32, bool) {
	width, addr, ok := strings.Cut(name, "@")
	if !ok {
		return cpu.SizeInvalid, 0, false
	}
	a, err := strconv.ParseUint(addr, 16, 32)
	if err != nil {
		return cpu.SizeInvalid, 0, false
	}
	switch width {
	case "b":
		return cpu.SizeByte, uint32(a), true
	case "w":
		return cpu.SizeWord, uint32(a), true
	case "l":
		return cpu.SizeLong, uint32(a), true
	}
	return cpu.SizeInvalid, 0, false
}

func set(c *cpu.CPU, mem memory.Memory, name, value string) error {
	if name == "ccr" {
		c.SR &^= 0x1F
		for i, r := range "XNZVC" {
			if strings.ContainsRune(value, r) {
				c.SR |= 1 << (4 - i)
			}
		}
		return nil
	}

	v, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return err
	}
	if name == "sr" {
		c.SR = uint16(v)
		return nil
	}
	if r, ok := register(c, name); ok {
		*r = uint32(v)
		return nil
	}

	size, addr, ok := memoryRef(name)
	if !ok {
		return fmt.Errorf("unknown name %q", name)
	}
	switch size {
	case cpu.SizeByte:
		return mem.WriteU8(addr, uint8(v))
	case cpu.SizeWord:
		return mem.WriteU16(addr, uint16(v))
	}
	return mem.WriteU32(addr, uint32(v))
}

func get(c *cpu.CPU, mem memory.Memory, name string) (string, error) {
	switch name {
	case "ccr":
		return c.CCR(), nil
	case "sr":
		return fmt.Sprintf("%04X", c.SR), nil
	}
	if r, ok := register(c, name); ok {
		return fmt.Sprintf("%08X", *r), nil
	}

	size, addr, ok := memoryRef(name)
	if !ok {
		return "", fmt.Errorf("unknown name %q", name)
	}
	switch size {
	case cpu.SizeByte:
		v, err := mem.ReadU8(addr)
		return fmt.Sprintf("%02X", v), err
	case cpu.SizeWord:
		v, err := mem.ReadU16(addr)
		return fmt.Sprintf("%04X", v), err
	}
	v, err := mem.ReadU32(addr)
	return fmt.Sprintf("%08X", v), err
}
