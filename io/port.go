// Package io provides port devices for the SSBC emulator.
//
// The SSBC talks to the outside world through four memory-mapped ports.
// Console is the interactive operator device, which shows output ports and
// reads input port values as binary text. Tape is the batch device, which
// presets input ports from a script and records every program write to a
// port.
package io

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ezrec/ssbc/cpu"
)

// Event is a value written to a port.
type Event struct {
	Port  cpu.Port
	Value cpu.Word
}

// String returns the event as 'PORT BINARY', the format of a tape line.
func (ev Event) String() string {
	return fmt.Sprintf("%v %08b", ev.Port, ev.Value)
}

// ParseValue parses an 8-bit binary port value.
func ParseValue(text string) (value cpu.Word, err error) {
	text = strings.TrimSpace(text)
	value64, err := strconv.ParseUint(text, 2, cpu.WORD_BITS)
	if err != nil {
		err = ErrValueSyntax(text)
		return
	}
	value = cpu.Word(value64)
	return
}

// ParseEvent parses a 'PORT BINARY' tape line.
func ParseEvent(line string) (ev Event, err error) {
	words := strings.Fields(line)
	if len(words) != 2 {
		err = ErrEventSyntax(line)
		return
	}

	ev.Port, err = cpu.LookupPort(words[0])
	if err != nil {
		return
	}

	ev.Value, err = ParseValue(words[1])
	return
}
