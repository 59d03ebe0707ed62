package io

import (
	"github.com/ezrec/ssbc/translate"
)

var f = translate.From

// ErrValueSyntax is returned for a port value that is not 8 binary digits.
type ErrValueSyntax string

func (err ErrValueSyntax) Error() string {
	return f("'%v' is not an 8-bit binary value", string(err))
}

// ErrEventSyntax is returned for a tape line that is not 'PORT BINARY'.
type ErrEventSyntax string

func (err ErrEventSyntax) Error() string {
	return f("'%v' is not a port event", string(err))
}

// ErrTapeLine locates an error in a tape script.
type ErrTapeLine struct {
	LineNo int
	Err    error
}

func (err *ErrTapeLine) Error() string {
	return f("tape line %d %v", err.LineNo, err.Err)
}

func (err *ErrTapeLine) Unwrap() error {
	return err.Err
}
