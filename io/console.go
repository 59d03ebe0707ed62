package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/ssbc/cpu"
)

// menu is the operator menu.
var menu = []string{
	"+------------------------+ ",
	"|  R: RESET              | ",
	"|  b: BREAK              | ",
	"|  r: RUN                | ",
	"|  A: READ PORT A        | ",
	"|  B: WRITE PORT B       | ",
	"|  C: READ PORT C        | ",
	"|  D: WRITE PORT D       | ",
	"|  s: STATUS             | ",
	"|  t: TOP                | ",
	"|  p: PSW                | ",
	"|  q: QUIT               | ",
	"|                        | ",
	"|  Enter menu selection: | ",
	"+------------------------+ ",
}

// Console is the operator's terminal.
type Console struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
}

// ReadLine reads one line of operator input, without the line ending.
// Returns io.EOF when the operator input is exhausted.
func (con *Console) ReadLine() (line string, err error) {
	if con.reader == nil {
		con.reader = bufio.NewReader(con.Input)
	}

	line, err = con.reader.ReadString('\n')
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")
	return
}

// Menu shows the operator menu.
func (con *Console) Menu() (err error) {
	for _, line := range menu {
		_, err = fmt.Fprintln(con.Output, line)
		if err != nil {
			return
		}
	}
	return
}

// ShowPort shows the value of a port in binary. A zero value is shown
// blank.
func (con *Console) ShowPort(port cpu.Port, value cpu.Word) (err error) {
	if value == 0 {
		_, err = fmt.Fprintf(con.Output, "Port %v value:  \n", port)
	} else {
		_, err = fmt.Fprintf(con.Output, "Port %v value: %08b \n", port, value)
	}
	return
}

// AskPort prompts the operator for a binary port value.
func (con *Console) AskPort(port cpu.Port) (value cpu.Word, err error) {
	_, err = fmt.Fprintf(con.Output, "Enter Port %v value in binary (8 bits) ", port)
	if err != nil {
		return
	}

	line, err := con.ReadLine()
	if err != nil {
		return
	}

	value, err = ParseValue(line)
	return
}

// Status shows the fault and halt indicators.
func (con *Console) Status(fault, halt bool) (err error) {
	bit := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	_, err = fmt.Fprintf(con.Output, "Fault: %d \n Halt: %d \n", bit(fault), bit(halt))
	return
}

// Top shows the value on the top of the stack.
func (con *Console) Top(value cpu.Word) (err error) {
	_, err = fmt.Fprintf(con.Output, "Top of stack: %08b\n", value)
	return
}

// PSW shows the program status word.
func (con *Console) PSW(value cpu.Word) (err error) {
	_, err = fmt.Fprintf(con.Output, "PSW: %08b\n", value)
	return
}

// Warn shows a warning.
func (con *Console) Warn(message string) (err error) {
	_, err = fmt.Fprintf(con.Output, "WARNING: %v\n", message)
	return
}
