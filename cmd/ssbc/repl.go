package main

import (
	"errors"
	stdio "io"

	"github.com/ezrec/ssbc/cpu"
	"github.com/ezrec/ssbc/emulator"
	"github.com/ezrec/ssbc/io"
)

// Repl is the interactive operator menu.
type Repl struct {
	Machine *emulator.Machine
	Console *io.Console
	Load    func(emu *emulator.Machine) error // Loads the program after a reset.
	Budget  int                               // Cycle budget of the run command.
}

// Run asks the operator for commands, until quit or end of input.
func (repl *Repl) Run() (err error) {
	con := repl.Console
	emu := repl.Machine

	for {
		err = con.Menu()
		if err != nil {
			return
		}

		var command string
		command, err = con.ReadLine()
		if errors.Is(err, stdio.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		key := byte(' ')
		if len(command) > 0 {
			key = command[0]
		}

		switch key {
		case 'R':
			emu.Reset()
			if repl.Load != nil {
				err = repl.Load(emu)
			}
			if err != nil {
				err = con.Warn(err.Error())
			}
		case 'b':
			emu.Step()
		case 'r':
			var reason emulator.Reason
			_, reason, err = emu.Run(repl.Budget)
			if err == nil && reason != emulator.REASON_HALTED {
				err = con.Warn(reason.String())
			}
		case 'A':
			err = con.ShowPort(cpu.PORT_A, emu.Cpu.Ports().Read(cpu.PORT_A))
		case 'C':
			err = con.ShowPort(cpu.PORT_C, emu.Cpu.Ports().Read(cpu.PORT_C))
		case 'B':
			err = repl.askPort(cpu.PORT_B)
		case 'D':
			err = repl.askPort(cpu.PORT_D)
		case 's':
			// Reserved opcodes are no-ops, so the fault indicator never lights.
			err = con.Status(false, emu.State() == emulator.STATE_HALTED)
		case 't':
			err = con.Top(emu.Cpu.Top())
		case 'p':
			err = con.PSW(emu.Cpu.PSW())
		case 'q':
			return
		default:
			err = con.Warn("Unknown command")
		}
		if errors.Is(err, stdio.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}

// askPort asks the operator for an input port value.
func (repl *Repl) askPort(port cpu.Port) (err error) {
	value, err := repl.Console.AskPort(port)
	var syntax io.ErrValueSyntax
	if errors.As(err, &syntax) {
		return repl.Console.Warn(err.Error())
	}
	if err != nil {
		return
	}

	repl.Machine.Cpu.Ports().Write(port, value)
	return
}
