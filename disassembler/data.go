package disassembler

import (
	"fmt"
	"strings"
)

// minString is the shortest NUL-terminated run shown as text.
const minString = 4

func isPrintableASCII(b byte) bool {
	return b >= 0x20 && b <= 0x7E
}

// formatData renders bytes that control flow never reached. Printable runs
// that end in NUL, and aligned four-character tags, are shown as text.
// Everything else is hex.
func formatData(data []byte, addr uint32, strs *int) string {
	var sb strings.Builder
	n := len(data)

	for i := 0; i < n; {
		start := i
		for start < n && !isPrintableASCII(data[start]) {
			start++
		}
		if start > i {
			sb.WriteString(formatHexBytes(data[i:start]))
		}

		end := start
		for end < n && isPrintableASCII(data[end]) {
			end++
		}
		if end == start {
			i = start
			continue
		}

		run := data[start:end]
		at := addr + uint32(start)
		text := strings.ReplaceAll(string(run), "'", "''")
		switch {
		case end < n && data[end] == 0 && len(run) >= minString:
			fmt.Fprintf(&sb, "%-10s%-8s '%s',0\n", stringLabel(strs), "DC.B", text)
			i = end + 1
		case len(run) == 4 && at%4 == 0:
			fmt.Fprintf(&sb, "%-10s%-8s '%s'\n", stringLabel(strs), "DC.B", text)
			i = end
		default:
			sb.WriteString(formatHexBytes(run))
			i = end
		}
	}
	return sb.String()
}

func stringLabel(n *int) string {
	s := fmt.Sprintf("str_%d:", *n)
	*n++
	return s
}

// formatHexBytes formats bytes as DC.B directives, 16 bytes per line.
func formatHexBytes(data []byte) string {
	const perLine = 16

	var sb strings.Builder
	for i := 0; i < len(data); i += perLine {
		chunk := data[i:min(i+perLine, len(data))]
		hex := make([]string, len(chunk))
		for j, b := range chunk {
			hex[j] = fmt.Sprintf("$%02X", b)
		}
		fmt.Fprintf(&sb, "    %-8s %s\n", "DC.B", strings.Join(hex, ","))
	}
	return sb.String()
}
