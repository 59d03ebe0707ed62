package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ssbc/cpu"
	"github.com/ezrec/ssbc/emulator"
	"github.com/ezrec/ssbc/io"
)

// newTestRepl creates a REPL that loads the source on reset, driven by a
// scripted operator.
func newTestRepl(t *testing.T, source string, script ...string) (repl *Repl, out *bytes.Buffer) {
	out = &bytes.Buffer{}
	opt := &options{compile: writeFile(t, "prog.s", source)}

	repl = &Repl{
		Machine: emulator.NewMachine(),
		Console: &io.Console{
			Input:  strings.NewReader(strings.Join(script, "\n") + "\n"),
			Output: out,
		},
		Load:   func(emu *emulator.Machine) error { return load(emu, opt) },
		Budget: 100,
	}

	return
}

func TestReplSession(t *testing.T) {
	assert := assert.New(t)

	repl, out := newTestRepl(t, echoSource,
		"R",
		"B", "00000101",
		"r",
		"A",
		"C",
		"s",
		"t",
		"p",
		"x",
		"q",
		"A",
	)

	err := repl.Run()
	assert.NoError(err)

	text := out.String()
	assert.Contains(text, "Enter Port B value in binary (8 bits) ")
	assert.Contains(text, "Port A value: 00000101 \n")
	assert.Contains(text, "Port C value:  \n")
	assert.Contains(text, "Fault: 0 \n Halt: 1 \n")
	assert.Contains(text, "Top of stack: 00000000\n")
	assert.Contains(text, "PSW: 00000000\n")
	assert.Contains(text, "WARNING: Unknown command\n")
	assert.Equal(1, strings.Count(text, "Port A value"))
	assert.Equal(emulator.STATE_HALTED, repl.Machine.State())
}

func TestReplStep(t *testing.T) {
	assert := assert.New(t)

	repl, _ := newTestRepl(t, echoSource, "R", "D", "00000001", "b", "b")

	err := repl.Run()
	assert.NoError(err)

	snap := repl.Machine.Snapshot()
	assert.Equal(2, snap.Ticks)
	assert.Equal(cpu.Addr(6), snap.Pc)
	assert.Equal(cpu.Word(1), snap.Port(cpu.PORT_D))
	assert.Equal(emulator.STATE_RUNNING, snap.State)
}

func TestReplWarnings(t *testing.T) {
	assert := assert.New(t)

	repl, out := newTestRepl(t, "loop:\tjmp loop\n", "R", "B", "2", "r")

	err := repl.Run()
	assert.NoError(err)

	text := out.String()
	assert.Contains(text, "WARNING: '2'")
	assert.Contains(text, "WARNING: budget exhausted\n")
	assert.Equal(100, repl.Machine.Snapshot().Ticks)
}

func TestReplLoadError(t *testing.T) {
	assert := assert.New(t)

	repl, out := newTestRepl(t, "bogus\n", "R", "q")

	err := repl.Run()
	assert.NoError(err)
	assert.Contains(out.String(), "WARNING: ")
	assert.Equal(emulator.STATE_READY, repl.Machine.State())
}
