package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/ssbc/cpu"
)

// Tape is the batch port device. Input is a script of 'PORT BINARY' lines
// that preset ports before a run; blank lines and ';' comments are
// ignored. Every program write to a port is appended to Events, and
// written to Output if set.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Events []Event
	Err    error // First error writing to Output.
}

// Load reads the input script.
func (tape *Tape) Load() (events []Event, err error) {
	if tape.Input == nil {
		return
	}

	scanner := bufio.NewScanner(tape.Input)
	var lineno int
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(strings.Split(scanner.Text(), ";")[0])
		if len(line) == 0 {
			continue
		}

		var ev Event
		ev, err = ParseEvent(line)
		if err != nil {
			err = &ErrTapeLine{LineNo: lineno, Err: err}
			return
		}
		events = append(events, ev)
	}

	err = scanner.Err()
	return
}

// Preset writes the input script into the ports.
func (tape *Tape) Preset(ports cpu.Ports) (err error) {
	events, err := tape.Load()
	if err != nil {
		return
	}

	for _, ev := range events {
		ports.Write(ev.Port, ev.Value)
	}

	return
}

// Record logs a program write to a port. It has the signature of
// cpu.Cpu.PortWrite, so an Output failure is kept in Err, and later
// writes to Output are skipped.
func (tape *Tape) Record(port cpu.Port, value cpu.Word) {
	ev := Event{Port: port, Value: value}
	tape.Events = append(tape.Events, ev)

	if tape.Output == nil || tape.Err != nil {
		return
	}

	_, err := fmt.Fprintln(tape.Output, ev.String())
	if err != nil {
		tape.Err = err
	}
}

// Rewind forgets the recorded events and any Output error.
func (tape *Tape) Rewind() {
	tape.Events = tape.Events[:0]
	tape.Err = nil
}
