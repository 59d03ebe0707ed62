package emulator

import (
	"github.com/ezrec/ssbc/cpu"
	"github.com/ezrec/ssbc/translate"
)

var f = translate.From

// ErrBudgetInvalid is returned by Run for a negative cycle budget.
type ErrBudgetInvalid int

func (err ErrBudgetInvalid) Error() string {
	return f("cycle budget %d is negative", int(err))
}

func (err ErrBudgetInvalid) Unwrap() error {
	return cpu.ErrConfiguration
}

// ErrProgramSize is returned by LoadProgram for an image larger than memory.
type ErrProgramSize int

func (err ErrProgramSize) Error() string {
	return f("program of %d words exceeds memory of %d words", int(err), cpu.MEMORY_SIZE)
}

func (err ErrProgramSize) Unwrap() error {
	return cpu.ErrConfiguration
}
