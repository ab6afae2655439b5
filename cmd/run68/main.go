package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/Urethramancer/m68kcore/cpu"
	"github.com/Urethramancer/m68kcore/internal/translate"
	"github.com/Urethramancer/m68kcore/memory"
)

// wideDump is the terminal width needed to print eight registers per line.
const wideDump = 96

// This program loads a raw image, resets the processor into it and runs
// until it stops, faults or uses up its step budget.
func main() {
	org := flag.String("org", "0x1000", "address to load the image at")
	ssp := flag.String("ssp", "0x10000", "initial supervisor stack pointer")
	steps := flag.Int("steps", 1_000_000, "instruction budget, 0 for no limit")
	verbose := flag.Bool("v", false, "log every instruction")
	vectors := flag.Bool("vectors", true, "write reset vectors for -ssp and -org")
	faults := flag.String("faults", "halt", "illegal and privileged instructions: halt or vector")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <image>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: tty, DisableColors: !tty})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	base, err := strconv.ParseUint(*org, 0, 32)
	if err != nil {
		log.WithError(err).Fatal("invalid -org")
	}
	stack, err := strconv.ParseUint(*ssp, 0, 32)
	if err != nil {
		log.WithError(err).Fatal("invalid -ssp")
	}

	var policy cpu.FaultPolicy
	switch *faults {
	case "halt":
		policy = cpu.FaultHalt
	case "vector":
		policy = cpu.FaultVector
	default:
		log.Fatalf("unknown -faults %q", *faults)
	}

	code, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.WithError(err).Fatal("read image")
	}

	mem := memory.New()
	if err := memory.Load(mem, uint32(base), code); err != nil {
		log.WithError(err).Fatal("load image")
	}
	if *vectors {
		if err := mem.WriteU32(0, uint32(stack)); err != nil {
			log.WithError(err).Fatal("write reset vectors")
		}
		if err := mem.WriteU32(4, uint32(base)); err != nil {
			log.WithError(err).Fatal("write reset vectors")
		}
	}
	fmt.Print(translate.Sprintf("Loaded %d bytes at $%08X\n", len(code), base))

	c := cpu.New(mem)
	c.Log = log
	c.Faults = policy
	if err := c.Reset(); err != nil {
		log.WithError(err).Fatal("reset")
	}

	n, err := c.Run(*steps)
	fmt.Print(translate.Sprintf("%d instructions executed\n", n))

	status := 0
	switch {
	case err == nil:
		fmt.Println("Step budget exhausted.")
	case errors.Is(err, cpu.ErrStopped):
		fmt.Println("Processor stopped.")
	default:
		fmt.Printf("Processor halted: %v\n", err)
		status = 1
	}

	fmt.Println()
	dump(c, tty)
	os.Exit(status)
}

// dump prints the registers, one bank per line when the terminal is wide
// enough.
func dump(c *cpu.CPU, tty bool) {
	if tty {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w >= wideDump {
			for i, d := range c.D {
				fmt.Printf("D%d=%08X ", i, d)
			}
			fmt.Println()
			for i, a := range c.A {
				fmt.Printf("A%d=%08X ", i, a)
			}
			fmt.Println()
			fmt.Printf("PC=%08X SR=%04X CCR=%s\n", c.PC, c.SR, c.CCR())
			return
		}
	}
	fmt.Println(c.Registers.String())
}
