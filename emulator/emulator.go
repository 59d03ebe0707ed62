// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ssbc/cpu"
)

// State is the run state of the machine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_UNINITIALIZED = State(0) // uninitialized
	STATE_READY         = State(1) // ready
	STATE_RUNNING       = State(2) // running
	STATE_HALTED        = State(3) // halted
)

// Reason is why Run returned.
type Reason int

//go:generate go tool stringer -linecomment -type=Reason
const (
	REASON_HALTED = Reason(0) // halted
	REASON_BUDGET = Reason(1) // budget exhausted
)

var _emulator_defines = map[string]string{
	"WORD_BITS": fmt.Sprintf("%v", cpu.WORD_BITS),
}

// Snapshot is the observable state of the machine after a step.
type Snapshot struct {
	State   State
	Pc      cpu.Addr
	Sp      cpu.Addr
	Acc     cpu.Word
	Flags   cpu.Flags
	Ports   [cpu.PORT_COUNT]cpu.Word
	Running bool
	Ticks   int
}

// Port returns the value of a port in the snapshot.
func (snap Snapshot) Port(port cpu.Port) cpu.Word {
	return snap.Ports[port]
}

// Machine is the SSBC: the CPU, its memory and ports, and the run state.
//
// Step and Run drive the machine. The embedded CPU's own Tick and Execute
// are promoted, and a halt they execute is picked up by the next State,
// Snapshot, Step or Run.
type Machine struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the loaded program, if assembled.

	state State
}

// NewMachine creates a machine with the build's subtraction mode.
// The machine is uninitialized: it may be stepped without a reset, and
// will execute whatever its zeroed memory holds.
func NewMachine() (m *Machine) {
	return NewMachineWithMode(cpu.BuildSubtractMode)
}

// NewMachineWithMode creates a machine with a specific subtraction mode.
func NewMachineWithMode(mode cpu.SubtractMode) (m *Machine) {
	m = &Machine{
		Cpu:     cpu.NewCpu(mode),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the assembler predefines.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return func(yield func(key, value string) bool) {
		for _, seq := range []iter.Seq2[string, string]{
			maps.All(_emulator_defines),
			m.Cpu.Defines(),
		} {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// sync moves the machine to HALTED if the CPU halted on its own.
func (m *Machine) sync() {
	if m.Cpu.Halted {
		m.state = STATE_HALTED
	}
}

// State returns the run state.
func (m *Machine) State() State {
	m.sync()
	return m.state
}

// Reset zeroes memory, ports and registers, sets the stack pointer to its
// reset value, and makes the machine ready. The loaded program is cleared.
func (m *Machine) Reset() {
	m.Cpu.Verbose = m.Verbose
	m.Cpu.Reset()
	m.Program = &cpu.Program{}
	m.state = STATE_READY
}

// LoadProgram writes an image into memory at start, wrapping at the top of
// memory.
func (m *Machine) LoadProgram(image []cpu.Word, start int) (err error) {
	if len(image) > cpu.MEMORY_SIZE {
		err = ErrProgramSize(len(image))
		return
	}

	m.Cpu.Memory.Load(start, image)

	if m.Verbose {
		log.Printf("emulator: loaded %d words at %04x", len(image), cpu.AddrOf(start))
	}

	return
}

// LoadAssembled loads an assembled program, and keeps its listing for
// LineNo.
func (m *Machine) LoadAssembled(prog *cpu.Program) (err error) {
	origin, image := prog.Image()
	err = m.LoadProgram(image, origin)
	if err != nil {
		return
	}

	m.Program = prog
	return
}

// Snapshot returns the observable state.
func (m *Machine) Snapshot() (snap Snapshot) {
	m.sync()
	cp := m.Cpu

	snap = Snapshot{
		State:   m.state,
		Pc:      cp.Register.Pc(),
		Sp:      cp.Register.Sp(),
		Acc:     cp.Register.Acc(),
		Flags:   cp.Flags(),
		Ports:   cp.Ports().All(),
		Running: m.state == STATE_RUNNING,
		Ticks:   cp.Ticks,
	}

	return
}

// Step performs one fetch-decode-execute cycle.
// A halted machine is left unchanged until Reset.
func (m *Machine) Step() (snap Snapshot) {
	if m.State() == STATE_HALTED {
		return m.Snapshot()
	}

	m.Cpu.Verbose = m.Verbose
	m.state = STATE_RUNNING

	m.Cpu.Tick()

	return m.Snapshot()
}

// Run steps until the machine halts, or budget instructions have run.
// The budget is checked before each instruction, so a zero budget always
// reports REASON_BUDGET, even on a halted machine.
func (m *Machine) Run(budget int) (snap Snapshot, reason Reason, err error) {
	if budget < 0 {
		err = ErrBudgetInvalid(budget)
		return
	}

	reason = REASON_BUDGET
	for range budget {
		if m.State() == STATE_HALTED {
			reason = REASON_HALTED
			break
		}
		m.Step()
		if m.State() == STATE_HALTED {
			reason = REASON_HALTED
			break
		}
	}

	snap = m.Snapshot()
	return
}

// Stop halts the machine at the next instruction boundary.
func (m *Machine) Stop() {
	m.Cpu.Halted = true
	m.state = STATE_HALTED

	if m.Verbose {
		log.Printf("emulator: stop at %04x", m.Cpu.Register.Pc())
	}
}

// Register returns the value of the register called name.
func (m *Machine) Register(name string) (value int, err error) {
	reg, err := cpu.LookupRegister(name)
	if err != nil {
		return
	}

	value = m.Cpu.Register.Get(reg)
	return
}

// SetRegister sets the register called name, wrapping value to its width.
func (m *Machine) SetRegister(name string, value int) (err error) {
	reg, err := cpu.LookupRegister(name)
	if err != nil {
		return
	}

	m.Cpu.Register.Set(reg, value)
	return
}

// ReadPort returns the value of the port called name.
func (m *Machine) ReadPort(name string) (value cpu.Word, err error) {
	port, err := cpu.LookupPort(name)
	if err != nil {
		return
	}

	value = m.Cpu.Ports().Read(port)
	return
}

// WritePort sets the port called name, as an external device would.
func (m *Machine) WritePort(name string, value cpu.Word) (err error) {
	port, err := cpu.LookupPort(name)
	if err != nil {
		return
	}

	m.Cpu.Ports().Write(port, value)
	return
}

// LineNo returns the source line number of the instruction at the program
// counter, or 0 if unknown.
func (m *Machine) LineNo() int {
	dbg := m.Program.Debug(m.Cpu.Register.Pc())
	if dbg.Listing == nil {
		return 0
	}
	return dbg.LineNo
}
