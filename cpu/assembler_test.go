// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemblerEmpty(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Listing))
	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssemblerInstructions(t *testing.T) {
	assert := assert.New(t)

	source := []string{
		"start: pushimm 5      ; comment",
		"       pushext PORT_B",
		"       add",
		"       popext 0xfffc",
		"",
		"       jnz start",
		"       halt",
	}

	expected := []Listing{
		{LineNo: 1, Addr: 0, Words: []string{"pushimm", "5"}, Codes: []Word{2, 5}},
		{LineNo: 2, Addr: 2, Words: []string{"pushext", "0xfffd"}, Codes: []Word{3, 0xff, 0xfd}},
		{LineNo: 3, Addr: 5, Words: []string{"add"}, Codes: []Word{8}},
		{LineNo: 4, Addr: 6, Words: []string{"popext", "0xfffc"}, Codes: []Word{5, 0xff, 0xfc}},
		{LineNo: 6, Addr: 9, Words: []string{"jnz", "start"}, Codes: []Word{6, 0, 0}},
		{LineNo: 7, Addr: 12, Words: []string{"halt"}, Codes: []Word{1}},
	}

	asm := &Assembler{}
	asm.Predefine("PORT_B", "0xfffd")

	prog, err := asm.Parse(strings.NewReader(strings.Join(source, "\n")))
	assert.NoError(err)
	assert.Equal(expected, prog.Listing)
	assert.Equal(0, asm.Label["start"])
}

func TestAssemblerForwardLabel(t *testing.T) {
	assert := assert.New(t)

	source := `
	jmp end
	nop
end:	halt
`

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal(3, len(prog.Listing))
	assert.Equal("end", prog.Listing[0].LinkLabel)
	assert.Equal([]Word{14, 0x00, 0x04}, prog.Listing[0].Codes)
	assert.Equal(4, asm.Label["end"])
}

func TestAssemblerDirectives(t *testing.T) {
	assert := assert.New(t)

	source := `
	.equ BASE 0x10
	.equ COUNT 3
	.org BASE
data:	.byte 1 2 0x80
	pushext data
	pushimm COUNT
	pushimm $(BASE * 2 + 1)
	pushimm 'A'
	pushimm -1
	pushimm ~0
`

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)

	codes := [][]Word{}
	for _, op := range prog.Listing {
		codes = append(codes, op.Codes)
	}

	assert.Equal([][]Word{
		{1, 2, 0x80},
		{3, 0x00, 0x10},
		{2, 3},
		{2, 33},
		{2, 65},
		{2, 0xff},
		{2, 0xff},
	}, codes)

	origin, image := prog.Image()
	assert.Equal(0x10, origin)
	assert.Equal([]Word{1, 2, 0x80, 3, 0x00, 0x10}, image[:6])
	assert.Equal(16, len(image))
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	source := `.macro PUSH2 a b
pushimm a
pushimm b
.endm
PUSH2 1 2
halt
`

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)

	expected := []Listing{
		{LineNo: 2, Addr: 0, Words: []string{"pushimm", "1"}, Codes: []Word{2, 1}},
		{LineNo: 3, Addr: 2, Words: []string{"pushimm", "2"}, Codes: []Word{2, 2}},
		{LineNo: 6, Addr: 4, Words: []string{"halt"}, Codes: []Word{1}},
	}
	assert.Equal(expected, prog.Listing)

	// Macro arguments do not leak out.
	_, ok := asm.Equate["a"]
	assert.False(ok)
}

func TestAssemblerMacroLabel(t *testing.T) {
	assert := assert.New(t)

	source := `.macro SKIP
	jmp @skip
	halt
@skip:
.endm
	SKIP
	SKIP
`

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal(4, len(prog.Listing))
	assert.Equal([]Word{14, 0x00, 0x04}, prog.Listing[0].Codes)
	assert.Equal([]Word{14, 0x00, 0x08}, prog.Listing[2].Codes)
}

func TestAssemblerErrors(t *testing.T) {
	table := []struct {
		name   string
		source string
		err    error
	}{
		{"invalid", "bogus", ErrInstructionInvalid},
		{"missing", "pushimm", ErrOpcodeValueMissing},
		{"extra", "add 1", ErrOpcodeExtraArgs},
		{"extra-ext", "jmp 1 2", ErrOpcodeExtraArgs},
		{"range-imm", "pushimm 256", ErrValueRange},
		{"range-ext", "jmp 0x10000", ErrValueRange},
		{"equ-syntax", ".equ X", ErrEquateSyntax},
		{"equ-dup", ".equ X 1\n.equ X 2", ErrEquateDuplicate},
		{"label-dup", "a: nop\na: nop", ErrLabelDuplicate},
		{"label-missing", "jmp nowhere", ErrLabelMissing("nowhere")},
		{"macro-nest", ".macro A\n.macro B", ErrMacroNesting},
		{"macro-dup", ".macro A\n.endm\n.macro A\n.endm", ErrMacroDuplicate},
		{"macro-lonely", ".macro A\nnop", ErrMacroLonely},
		{"endm-lonely", ".endm", ErrMacroLonelyEndm},
		{"macro-args", ".macro A x\n.endm\nA", ErrMacroSyntax},
		{"org", ".org", ErrOrgSyntax},
		{"org-range", ".org 0x10000", ErrValueRange},
		{"byte", ".byte", ErrByteSyntax},
		{"number", "pushimm five", ErrParseNumber("five")},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			asm := &Assembler{}
			_, err := asm.Parse(strings.NewReader(entry.source))
			assert.Error(err)
			assert.True(errors.Is(err, entry.err), "%v", err)

			var syntax *ErrSyntax
			assert.True(errors.As(err, &syntax))
		})
	}
}

func TestAssemblerPredefineReparse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("X", "1")
	asm.Predefine("X", "2")

	for range 2 {
		prog, err := asm.Parse(strings.NewReader("here: pushimm X"))
		assert.NoError(err)
		assert.Equal([]Word{2, 2}, prog.Listing[0].Codes)
	}
}
