// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the first line of the macro body.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// mnemonicMap maps instruction mnemonics to opcodes.
var mnemonicMap = func() map[string]Opcode {
	mnemonics := map[string]Opcode{}
	for op := range Opcode(WORD_MODULUS) {
		if op.Known() {
			mnemonics[op.String()] = op
		}
	}
	return mnemonics
}()

var (
	labelRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	charRe  = regexp.MustCompile(`'\\?[^']'`)
	exprRe  = regexp.MustCompile(`\$\([^\$]*\)`)
)

// charEscape maps the supported backslash escapes to their characters.
var charEscape = map[string]byte{
	"\\": '\\',
	"n":  '\n',
	"r":  '\r',
	"0":  0,
}

// Assembler is a single pass macro assembler for the SSBC.
//
// Source is one statement per line, with ';' comments:
//
//	label: mnemonic [operand]
//	.equ NAME VALUE
//	.macro NAME [ARG...] / .endm
//	.org ADDR
//	.byte VALUE...
//
// Operands may be numbers in any Go integer syntax, '~' inverted values,
// 'c' characters, equates, labels, or $(expr) compile-time expressions.
// Address operands may name labels defined later in the source.
type Assembler struct {
	Verbose bool      // If set, verbosely logs the assembler actions.
	Listing []Listing // List of generated instructions.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	ip int // Address of the next generated word.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{}
	}
	asm.predefine[equ] = value
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := word[0] == '~'
	if invert {
		word = word[1:]
	}

	if strings.HasPrefix(word, "'") {
		// Character literals are expanded by substitute().
		err = ErrParseCharacter(word)
		return
	}

	value, ok := asm.Label[word]
	if !ok {
		var value64 int64
		value64, err = strconv.ParseInt(word, 0, 64)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		value = int(value64)
	}

	if invert {
		value = ^value
	}

	return
}

// immOf returns an 8-bit immediate value. Negative values are allowed, and
// are stored in two's-complement.
func (asm *Assembler) immOf(word string) (value Word, err error) {
	ival, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if ival < -128 || ival >= WORD_MODULUS {
		err = errors.Join(ErrValueRange, ErrParseNumber(word))
		return
	}
	value = WordOf(ival)
	return
}

// extOf returns a 16-bit address value, or the label to link it to.
func (asm *Assembler) extOf(word string) (value Addr, label string, err error) {
	ival, err := asm.valueOf(word)
	if err != nil {
		if labelRe.MatchString(word) {
			// Forward reference, linked after the pass.
			label = word
			err = nil
		}
		return
	}
	if ival < 0 || ival >= MEMORY_SIZE {
		err = errors.Join(ErrValueRange, ErrParseNumber(word))
		return
	}
	value = Addr(ival)
	return
}

// bindings returns the integer equates and the labels as Starlark values.
// Equates that are not integers are left out.
func (asm *Assembler) bindings() (dict starlark.StringDict) {
	dict = starlark.StringDict{}
	for key, text := range asm.Equate {
		value, err := asm.valueOf(text)
		if err != nil {
			continue
		}
		dict[key] = starlark.MakeInt(value)
	}
	for key, addr := range asm.Label {
		dict[key] = starlark.MakeInt(addr)
	}
	return
}

// evaluate computes a $(...) expression at assembly time.
func (asm *Assembler) evaluate(expr string) (value int, err error) {
	thread := &starlark.Thread{Name: "asm"}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, "expr", "rc = "+expr+"\n", asm.bindings())
	if err != nil {
		return
	}

	rc, ok := globals["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value64, ok := rc.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value = int(value64)
	return
}

// charValue returns the decimal value of a 'c' or '\c' literal.
func charValue(literal string) (text string, ok bool) {
	body := literal[1 : len(literal)-1]
	if body[0] == '\\' {
		var ch byte
		ch, ok = charEscape[body[1:]]
		if !ok {
			return
		}
		text = strconv.Itoa(int(ch))
		return
	}

	if len(body) != 1 {
		return
	}
	text, ok = strconv.Itoa(int(body[0])), true
	return
}

// substitute replaces character literals and $(...) expressions in a line
// with their decimal values.
func (asm *Assembler) substitute(line string) (out string, err error) {
	out = charRe.ReplaceAllStringFunc(line, func(literal string) string {
		text, ok := charValue(literal)
		if !ok {
			return literal
		}
		return text
	})

	out = exprRe.ReplaceAllStringFunc(out, func(expr string) string {
		value, eval_err := asm.evaluate(expr[2 : len(expr)-1])
		if eval_err != nil && err == nil {
			err = eval_err
		}
		return strconv.Itoa(value)
	})

	return
}

// defineEquate handles '.equ NAME VALUE'.
func (asm *Assembler) defineEquate(words []string) (err error) {
	if len(words) != 3 {
		err = ErrEquateSyntax
		return
	}
	if _, ok := asm.Equate[words[1]]; ok {
		err = ErrEquateDuplicate
		return
	}
	asm.Equate[words[1]] = words[2]
	return
}

// defineLabels strips and defines the 'label:' prefixes of a statement.
func (asm *Assembler) defineLabels(words []string) (rest []string, err error) {
	rest = words
	for len(rest) > 0 && strings.HasSuffix(rest[0], ":") {
		label := strings.TrimSuffix(rest[0], ":")
		if _, ok := asm.Label[label]; ok {
			err = ErrLabelDuplicate
			return
		}
		if asm.Label == nil {
			asm.Label = map[string]int{}
		}
		asm.Label[label] = asm.ip
		rest = rest[1:]
	}
	return
}

// expandMacro assembles the body of a macro invocation. The arguments are
// equates for the duration of the expansion, and '@' in the body becomes a
// prefix unique to the invoking line.
func (asm *Assembler) expandMacro(name string, macro *Macro, args []string, lineno int) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	saved := maps.Clone(asm.Equate)
	defer func() { asm.Equate = saved }()
	for n, arg := range macro.Args {
		asm.Equate[arg] = args[n]
	}

	local := fmt.Sprintf("%v_%v_", name, lineno)

	for n, line := range macro.Lines {
		body_lineno := macro.LineNo + n
		line = strings.ReplaceAll(line, "@", local)

		err = asm.assemble(line, body_lineno)
		if err != nil {
			err = &ErrMacro{Macro: name, Line: body_lineno, Err: err}
			err = &ErrSyntax{LineNo: body_lineno, Line: line, Err: err}
			return
		}
	}

	return
}

// assemble processes one statement, which has had its comment removed.
func (asm *Assembler) assemble(line string, lineno int) (err error) {
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	line, err = asm.substitute(line)
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	if words[0] == ".equ" {
		return asm.defineEquate(words)
	}

	for n, word := range words {
		if equate, ok := asm.Equate[word]; ok {
			words[n] = equate
		}
	}

	words, err = asm.defineLabels(words)
	if err != nil || len(words) == 0 {
		return
	}

	if macro, ok := asm.Macro[words[0]]; ok {
		return asm.expandMacro(words[0], macro, words[1:], lineno)
	}

	return asm.emit(words, lineno)
}

// link fills in the address operands that named forward labels. On error,
// op is the listing line that could not be linked.
func (asm *Assembler) link() (op *Listing, err error) {
	for n := range asm.Listing {
		op = &asm.Listing[n]
		if len(op.LinkLabel) == 0 {
			continue
		}

		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}

		ins := Decode(op.Codes[0])
		ins.Ext = AddrOf(addr)
		op.Codes = ins.Encode()
	}

	op = nil
	return
}

// reset prepares the assembler for a new source.
func (asm *Assembler) reset() {
	clear(asm.Label)
	asm.Listing = asm.Listing[:0]
	asm.ip = 0
	asm.Macro = map[string](*Macro){}
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.reset()

	var macro *Macro
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		text := scanner.Text()
		lineno++

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)
		words := strings.Fields(line)

		directive := ""
		if len(words) > 0 {
			directive = words[0]
		}

		switch {
		case directive == ".macro":
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			if _, ok := asm.Macro[words[1]]; ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{LineNo: lineno + 1, Args: words[2:]}
			asm.Macro[words[1]] = macro
		case directive == ".endm":
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
		case macro != nil:
			macro.Lines = append(macro.Lines, line)
		default:
			err = asm.assemble(line, lineno)
			if err != nil {
				return
			}
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	op, err := asm.link()
	if err != nil {
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")
		return
	}

	prog = &Program{
		Listing: slices.Clone(asm.Listing),
	}

	return
}

// org handles '.org ADDR'.
func (asm *Assembler) org(words []string) (err error) {
	if len(words) != 2 {
		err = ErrOrgSyntax
		return
	}
	addr, err := asm.valueOf(words[1])
	if err != nil {
		return
	}
	if addr < 0 || addr >= MEMORY_SIZE {
		err = errors.Join(ErrOrgSyntax, ErrValueRange)
		return
	}
	asm.ip = addr
	return
}

// data handles '.byte VALUE...'.
func (asm *Assembler) data(words []string) (codes []Word, err error) {
	if len(words) < 2 {
		err = ErrByteSyntax
		return
	}
	for _, word := range words[1:] {
		var value Word
		value, err = asm.immOf(word)
		if err != nil {
			return
		}
		codes = append(codes, value)
	}
	return
}

// instruction encodes 'mnemonic [operand]'.
func (asm *Assembler) instruction(words []string) (codes []Word, label string, err error) {
	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := words[1:]
	kind := op.Operand()
	switch {
	case kind == OPERAND_NONE && len(args) > 0:
		err = ErrOpcodeExtraArgs
	case kind != OPERAND_NONE && len(args) == 0:
		err = ErrOpcodeValueMissing
	case len(args) > 1:
		err = ErrOpcodeExtraArgs
	}
	if err != nil {
		return
	}

	ins := Instruction{Op: op}
	switch kind {
	case OPERAND_IMM:
		ins.Imm, err = asm.immOf(args[0])
	case OPERAND_EXT:
		ins.Ext, label, err = asm.extOf(args[0])
	}
	if err != nil {
		return
	}

	codes = ins.Encode()
	return
}

// emit generates the words of a statement at the current address, and
// records them in the listing.
func (asm *Assembler) emit(words []string, lineno int) (err error) {
	var codes []Word
	var label string

	switch words[0] {
	case ".org":
		return asm.org(words)
	case ".byte":
		codes, err = asm.data(words)
	default:
		codes, label, err = asm.instruction(words)
	}
	if err != nil || len(codes) == 0 {
		return
	}

	asm.Listing = append(asm.Listing, Listing{
		LineNo:    lineno,
		Addr:      asm.ip,
		Words:     words,
		Codes:     codes,
		LinkLabel: label,
	})
	asm.ip += len(codes)

	return
}
