package cpu

import (
	"errors"

	"github.com/ezrec/ssbc/translate"
)

var f = translate.From

var (
	// Collaborator configuration errors
	ErrConfiguration = errors.New(f("configuration"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrByteSyntax         = errors.New(f(".byte syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrValueRange         = errors.New(f("value out of range"))

	// Image errors
	ErrMacSize = errors.New(f("machine code exceeds memory size"))
)

// ErrRegisterUnknown is returned when a register name is not one of the
// SSBC registers.
type ErrRegisterUnknown string

func (err ErrRegisterUnknown) Error() string {
	return f("register '%v' unknown", string(err))
}

func (err ErrRegisterUnknown) Unwrap() error {
	return ErrConfiguration
}

// ErrPortUnknown is returned when a port name is not one of the SSBC ports.
type ErrPortUnknown string

func (err ErrPortUnknown) Error() string {
	return f("port '%v' unknown", string(err))
}

func (err ErrPortUnknown) Unwrap() error {
	return ErrConfiguration
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}

// ErrMacSyntax locates an unparseable line in a mac image.
type ErrMacSyntax struct {
	LineNo int
	Line   string
}

func (err ErrMacSyntax) Error() string {
	return f("mac line %d '%v' is not an 8-bit binary value", err.LineNo, err.Line)
}
