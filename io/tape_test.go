package io

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ssbc/cpu"
)

func TestTapeLoad(t *testing.T) {
	assert := assert.New(t)

	script := `; preset the input ports
B 00000011

D 00000001 ; go
`
	tape := &Tape{Input: strings.NewReader(script)}
	events, err := tape.Load()
	assert.NoError(err)
	assert.Equal([]Event{
		{Port: cpu.PORT_B, Value: 3},
		{Port: cpu.PORT_D, Value: 1},
	}, events)

	empty := &Tape{}
	events, err = empty.Load()
	assert.NoError(err)
	assert.Nil(events)
}

func TestTapeLoadError(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("B 00000001\nB one\n")}
	_, err := tape.Load()

	var line *ErrTapeLine
	assert.True(errors.As(err, &line))
	assert.Equal(2, line.LineNo)
	assert.True(errors.Is(err, ErrValueSyntax("one")))
}

func TestTapePresetRecord(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	tape := &Tape{
		Input:  strings.NewReader("B 00000101\nD 00000010\n"),
		Output: &out,
	}

	cp := cpu.NewCpu(cpu.TWOS_COMPLEMENT)
	cp.Reset()
	err := tape.Preset(cp.Ports())
	assert.NoError(err)
	assert.Equal([cpu.PORT_COUNT]cpu.Word{0, 5, 0, 2}, cp.Ports().All())

	// Copy B to A, D to C.
	program := []cpu.Instruction{
		cpu.MakeInstruction(cpu.OP_PUSHEXT, int(cpu.PORT_B.Addr())),
		cpu.MakeInstruction(cpu.OP_POPEXT, int(cpu.PORT_A.Addr())),
		cpu.MakeInstruction(cpu.OP_PUSHEXT, int(cpu.PORT_D.Addr())),
		cpu.MakeInstruction(cpu.OP_POPEXT, int(cpu.PORT_C.Addr())),
	}
	var image []cpu.Word
	for _, ins := range program {
		image = append(image, ins.Encode()...)
	}
	cp.Memory.Load(0, image)
	cp.PortWrite = tape.Record

	for range program {
		cp.Tick()
	}

	assert.Equal([]Event{
		{Port: cpu.PORT_A, Value: 5},
		{Port: cpu.PORT_C, Value: 2},
	}, tape.Events)
	assert.Equal("A 00000101\nC 00000010\n", out.String())

	tape.Rewind()
	assert.Equal(0, len(tape.Events))
}

// brokenWriter fails every write.
type brokenWriter struct {
	writes int
}

var errBroken = errors.New("broken")

func (w *brokenWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errBroken
}

func TestTapeRecordError(t *testing.T) {
	assert := assert.New(t)

	out := &brokenWriter{}
	tape := &Tape{Output: out}

	tape.Record(cpu.PORT_A, 1)
	tape.Record(cpu.PORT_C, 2)

	assert.True(errors.Is(tape.Err, errBroken))
	assert.Equal(1, out.writes)
	assert.Equal(2, len(tape.Events))

	tape.Rewind()
	assert.NoError(tape.Err)
}
