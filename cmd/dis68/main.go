package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Urethramancer/m68kcore/disassembler"
	"github.com/Urethramancer/m68kcore/internal/translate"
)

func main() {
	org := flag.String("org", "0", "address the image is loaded at")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-org addr] <inputfile> [outputfile]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(1)
	}

	origin, err := strconv.ParseUint(*org, 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid origin %q: %v\n", *org, err)
		os.Exit(1)
	}

	code, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	text, err := disassembler.Disassemble(code, uint32(origin))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Disassembly error: %v\n", err)
		os.Exit(1)
	}

	outputFile := flag.Arg(1)
	if outputFile == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(translate.Sprintf("%d bytes disassembled to %s\n", len(code), outputFile))
}
