// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	stdio "io"
	"log"
	"os"

	"github.com/ezrec/ssbc/cpu"
	"github.com/ezrec/ssbc/emulator"
	"github.com/ezrec/ssbc/io"
)

// options are the command line settings.
type options struct {
	compile string
	mac     string
	output  string
	batch   bool
	budget  int
	input   string
	verbose bool
	commit  string
}

func main() {
	var opt options

	flag.StringVar(&opt.compile, "c", "", ".s file to assemble")
	flag.StringVar(&opt.mac, "m", "mac", "mac image to load, when not assembling")
	flag.StringVar(&opt.output, "o", "", "Write the assembled mac image, do not execute")
	flag.BoolVar(&opt.batch, "r", false, "Batch mode: reset, load, and run to halt")
	flag.IntVar(&opt.budget, "n", 1_000_000, "Cycle budget for each run")
	flag.StringVar(&opt.input, "i", "", "Batch mode port script ('-' for stdin)")
	flag.BoolVar(&opt.verbose, "v", false, "Verbose mode")
	flag.StringVar(&opt.commit, "commit", "deferred", "Read/write ordering within an instruction (deferred, immediate)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	policy, ok := cpu.LookupCommitPolicy(opt.commit)
	if !ok {
		log.Fatalf("%v: Unknown commit policy: %v", os.Args[0], opt.commit)
	}

	if len(opt.output) != 0 {
		if len(opt.compile) == 0 {
			log.Fatalf("%v: -o requires -c", os.Args[0])
		}
		prog, err := assemble(opt.compile, opt.verbose)
		if err != nil {
			log.Fatalf("%v: %v", opt.compile, err)
		}
		err = writeMac(prog, opt.output)
		if err != nil {
			log.Fatalf("%v: %v", opt.output, err)
		}
		return
	}

	emu := emulator.NewMachine()
	emu.Verbose = opt.verbose
	emu.Cpu.Policy = policy

	if opt.verbose {
		log.Printf("ssbc: %v subtraction, %v commit", emu.Cpu.Alu.Mode(), policy)
	}

	if opt.batch {
		err := batch(emu, &opt, os.Stdin, os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	repl := &Repl{
		Machine: emu,
		Console: &io.Console{Input: os.Stdin, Output: os.Stdout},
		Load:    func(emu *emulator.Machine) error { return load(emu, &opt) },
		Budget:  opt.budget,
	}

	err := repl.Run()
	if err != nil {
		log.Fatal(err)
	}
}

// assemble assembles a source file, with the machine's memory map
// predefined.
func assemble(path string, verbose bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emulator.NewMachine().Defines() {
		asm.Predefine(key, value)
	}

	prog, err = asm.Parse(inf)
	return
}

// writeMac writes the assembled program as a mac image.
func writeMac(prog *cpu.Program, path string) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		close_err := ouf.Close()
		if err == nil {
			err = close_err
		}
	}()

	err = prog.Mac(ouf)
	return
}

// load loads the program into a reset machine, from the assembly source if
// one was given, otherwise from the mac image.
func load(emu *emulator.Machine, opt *options) (err error) {
	if len(opt.compile) != 0 {
		var prog *cpu.Program
		prog, err = assemble(opt.compile, opt.verbose)
		if err != nil {
			err = fmt.Errorf("%v: %w", opt.compile, err)
			return
		}
		err = emu.LoadAssembled(prog)
		return
	}

	inf, err := os.Open(opt.mac)
	if err != nil {
		return
	}
	defer inf.Close()

	image, err := cpu.ReadMac(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", opt.mac, err)
		return
	}

	err = emu.LoadProgram(image, 0)
	return
}

// batch resets, loads, presets the input ports, and runs to halt,
// reporting port writes as they happen.
func batch(emu *emulator.Machine, opt *options, stdin stdio.Reader, stdout stdio.Writer) (err error) {
	tape := &io.Tape{Output: stdout}

	switch opt.input {
	case "":
	case "-":
		tape.Input = stdin
	default:
		var inf *os.File
		inf, err = os.Open(opt.input)
		if err != nil {
			return
		}
		defer inf.Close()
		tape.Input = inf
	}

	emu.Reset()
	err = load(emu, opt)
	if err != nil {
		return
	}

	err = tape.Preset(emu.Cpu.Ports())
	if err != nil {
		return
	}

	emu.Cpu.PortWrite = tape.Record

	snap, reason, err := emu.Run(opt.budget)
	if err != nil {
		return
	}

	err = tape.Err
	if err != nil {
		return
	}

	fmt.Fprintf(stdout, "%v after %d instructions at pc %04x\n", reason, snap.Ticks, snap.Pc)
	if reason != emulator.REASON_HALTED {
		err = fmt.Errorf("ssbc: %v (-n %d) at line %d", reason, opt.budget, emu.LineNo())
	}

	return
}
