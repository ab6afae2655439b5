// Package disassembler turns 68000 machine code into a labelled listing.
package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/m68kcore/cpu"
)

// LabelType defines the context of a label.
type LabelType int

const (
	// JumpTarget is for a simple branch (BRA, BNE, DBcc, JMP).
	JumpTarget LabelType = iota
	// SubroutineEntry is for a JSR or BSR target.
	SubroutineEntry
)

// Line is a single decoded instruction at a specific address.
type Line struct {
	Addr uint32
	Size uint32
	Inst cpu.Instruction
	// Err is set when the word at Addr does not decode.
	Err error
	// IsCode marks lines reached by control flow from the origin.
	IsCode bool
}

// Disassemble decodes code loaded at origin and returns it as a listing.
// Only words reachable from origin are shown as instructions; everything
// else is rendered as data.
func Disassemble(code []byte, origin uint32) (string, error) {
	if origin&1 != 0 {
		return "", fmt.Errorf("origin $%X is not word aligned", origin)
	}
	if uint64(origin)+uint64(len(code)) > 1<<32 {
		return "", fmt.Errorf("%d bytes at $%X overflow the address space", len(code), origin)
	}
	if len(code) == 0 {
		return "", nil
	}

	lines := sweep(code, origin)
	labels := trace(lines, origin)
	return render(code, origin, lines, labels), nil
}

// sweep decodes an instruction at every word offset.
func sweep(code []byte, origin uint32) map[uint32]*Line {
	lines := make(map[uint32]*Line)
	for off := 0; off+1 < len(code); off += 2 {
		addr := origin + uint32(off)
		src := &source{code: code, origin: origin, next: addr}
		w, _ := src.Next()
		inst, err := cpu.Decode(w, src)
		size := src.Addr() - addr
		if err != nil {
			size = 2
		}
		lines[addr] = &Line{Addr: addr, Size: size, Inst: inst, Err: err}
	}
	return lines
}

// trace follows control flow from origin, marking reachable lines and
// collecting branch and call destinations.
func trace(lines map[uint32]*Line, origin uint32) map[uint32]LabelType {
	labels := make(map[uint32]LabelType)
	q := newQueue()
	q.push(origin)

	for {
		addr, ok := q.pop()
		if !ok {
			break
		}

		l, exists := lines[addr]
		if !exists || l.IsCode {
			continue
		}
		l.IsCode = true
		if l.Err != nil {
			continue
		}

		if !isTerminal(l.Inst.Op) {
			q.push(addr + l.Size)
		}

		target, ok := destination(l.Inst)
		if !ok {
			continue
		}
		if _, known := lines[target]; !known {
			continue
		}
		q.push(target)
		if l.Inst.Op == cpu.OpBSR || l.Inst.Op == cpu.OpJSR {
			labels[target] = SubroutineEntry
		} else if _, exists := labels[target]; !exists {
			labels[target] = JumpTarget
		}
	}
	return labels
}

// destination returns where a flow instruction can transfer control, when
// that is known without running the code.
func destination(i cpu.Instruction) (uint32, bool) {
	switch i.Op {
	case cpu.OpBRA, cpu.OpBSR, cpu.OpBcc, cpu.OpDBcc:
		l, ok := i.Dst.(cpu.Label)
		return l.Addr, ok
	case cpu.OpJMP, cpu.OpJSR:
		switch t := i.Dst.(type) {
		case cpu.AbsoluteShort:
			return t.Addr(), true
		case cpu.AbsoluteLong:
			return uint32(t), true
		case cpu.PCDisplacement:
			return t.Addr(), true
		}
	}
	return 0, false
}

// isTerminal checks if an instruction unconditionally stops linear execution.
func isTerminal(op cpu.Op) bool {
	switch op {
	case cpu.OpRTS, cpu.OpRTE, cpu.OpRTR, cpu.OpRTD, cpu.OpJMP, cpu.OpBRA, cpu.OpSTOP, cpu.OpILLEGAL:
		return true
	}
	return false
}

func render(code []byte, origin uint32, lines map[uint32]*Line, labels map[uint32]LabelType) string {
	var out strings.Builder
	strs := 1

	// Walk offsets rather than addresses so an image ending at the top of
	// the address space does not wrap.
	for off := 0; off < len(code); {
		pc := origin + uint32(off)
		if t, ok := labels[pc]; ok {
			fmt.Fprintf(&out, "%s:\n", labelName(pc, t))
		}

		l, ok := lines[pc]
		if !ok || !l.IsCode {
			stop := off + 1
			for ; stop < len(code); stop++ {
				if boundary(origin+uint32(stop), lines, labels) {
					break
				}
			}
			out.WriteString(formatData(code[off:stop], pc, &strs))
			off = stop
			continue
		}

		// Control flow that lands inside this instruction's extension
		// words splits it. The bytes up to that point are shown as words.
		if split, ok := overlap(l, lines, labels); ok {
			out.WriteString(formatWords(code[off : off+int(split)]))
			off += int(split)
			continue
		}

		out.WriteString(formatLine(l.Inst, labels))
		off += int(l.Size)
	}
	return out.String()
}

// boundary reports whether addr starts reachable code or carries a label.
func boundary(addr uint32, lines map[uint32]*Line, labels map[uint32]LabelType) bool {
	if _, ok := labels[addr]; ok {
		return true
	}
	l, ok := lines[addr]
	return ok && l.IsCode
}

// overlap returns the offset of the first boundary inside l.
func overlap(l *Line, lines map[uint32]*Line, labels map[uint32]LabelType) (uint32, bool) {
	for off := uint32(2); off < l.Size; off += 2 {
		if boundary(l.Addr+off, lines, labels) {
			return off, true
		}
	}
	return 0, false
}

// formatWords renders bytes as a single DC.W directive.
func formatWords(data []byte) string {
	words := make([]string, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		words = append(words, fmt.Sprintf("$%02X%02X", data[i], data[i+1]))
	}
	return fmt.Sprintf("    %-8s %s\n", "DC.W", strings.Join(words, ","))
}

// formatLine prints an instruction. Known flow destinations are shown by
// label, with call destinations named as subroutines.
func formatLine(i cpu.Instruction, labels map[uint32]LabelType) string {
	if i.Op == cpu.OpInvalid {
		return fmt.Sprintf("    %-8s $%04X\n", "DC.W", i.Word)
	}

	ops := i.Operands()
	if len(ops) == 0 {
		return "    " + i.Mnemonic() + "\n"
	}

	parts := make([]string, len(ops))
	for n, t := range ops {
		parts[n] = t.String()
	}
	if target, ok := destination(i); ok {
		if t, ok := labels[target]; ok {
			parts[len(parts)-1] = labelName(target, t)
		}
	}
	return fmt.Sprintf("    %-8s %s\n", i.Mnemonic(), strings.Join(parts, ", "))
}

// labelName generates a label string based on the address and its context.
func labelName(addr uint32, t LabelType) string {
	prefix := "loc_"
	if t == SubroutineEntry {
		prefix = "sub_"
	}
	return fmt.Sprintf("%s%04X", prefix, addr)
}

// source feeds the decoder words from a code image placed at origin.
type source struct {
	code   []byte
	origin uint32
	next   uint32
}

func (s *source) Next() (uint16, error) {
	off := uint64(s.next) - uint64(s.origin)
	if s.next < s.origin || off+2 > uint64(len(s.code)) {
		return 0, fmt.Errorf("extension word at $%X: past end of code", s.next)
	}
	w := uint16(s.code[off])<<8 | uint16(s.code[off+1])
	s.next += 2
	return w, nil
}

func (s *source) Addr() uint32 {
	return s.next
}

// addrQueue is a simple worklist queue for addresses to decode.
type addrQueue struct {
	items []uint32
	seen  map[uint32]bool
}

func newQueue() *addrQueue {
	return &addrQueue{seen: make(map[uint32]bool)}
}

func (q *addrQueue) push(addr uint32) {
	addr &^= 1
	if !q.seen[addr] {
		q.items = append(q.items, addr)
		q.seen[addr] = true
	}
}

func (q *addrQueue) pop() (uint32, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}
