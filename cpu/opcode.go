package cpu

import (
	"fmt"
)

// Opcode is the instruction selector, the first word of every instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP     = Opcode(0)  // nop
	OP_HALT    = Opcode(1)  // halt
	OP_PUSHIMM = Opcode(2)  // pushimm
	OP_PUSHEXT = Opcode(3)  // pushext
	OP_POPINH  = Opcode(4)  // popinh
	OP_POPEXT  = Opcode(5)  // popext
	OP_JNZ     = Opcode(6)  // jnz
	OP_JNN     = Opcode(7)  // jnn
	OP_ADD     = Opcode(8)  // add
	OP_SUB     = Opcode(9)  // sub
	OP_NOR     = Opcode(10) // nor
	OP_ADDIMM  = Opcode(11) // addimm
	OP_PUSHACC = Opcode(12) // pushacc
	OP_POPACC  = Opcode(13) // popacc
	OP_JMP     = Opcode(14) // jmp
	OP_CALL    = Opcode(15) // call
	OP_RET     = Opcode(16) // ret
	OP_SHL     = Opcode(17) // shl
	OP_SHR     = Opcode(18) // shr
)

// Operand is the kind of operand that follows an opcode.
type Operand int

//go:generate go tool stringer -linecomment -type=Operand
const (
	OPERAND_NONE = Operand(0) // none
	OPERAND_IMM  = Operand(1) // imm
	OPERAND_EXT  = Operand(2) // ext
)

// operandMap is the opcode table. Opcodes not present are reserved.
var operandMap = map[Opcode]Operand{
	OP_NOP:     OPERAND_NONE,
	OP_HALT:    OPERAND_NONE,
	OP_PUSHIMM: OPERAND_IMM,
	OP_PUSHEXT: OPERAND_EXT,
	OP_POPINH:  OPERAND_NONE,
	OP_POPEXT:  OPERAND_EXT,
	OP_JNZ:     OPERAND_EXT,
	OP_JNN:     OPERAND_EXT,
	OP_ADD:     OPERAND_NONE,
	OP_SUB:     OPERAND_NONE,
	OP_NOR:     OPERAND_NONE,
	OP_ADDIMM:  OPERAND_IMM,
	OP_PUSHACC: OPERAND_NONE,
	OP_POPACC:  OPERAND_NONE,
	OP_JMP:     OPERAND_EXT,
	OP_CALL:    OPERAND_EXT,
	OP_RET:     OPERAND_NONE,
	OP_SHL:     OPERAND_NONE,
	OP_SHR:     OPERAND_NONE,
}

// Known returns true if the opcode is in the opcode table.
func (op Opcode) Known() bool {
	_, ok := operandMap[op]
	return ok
}

// Operand returns the operand kind of the opcode.
// Reserved opcodes have no operand.
func (op Opcode) Operand() Operand {
	return operandMap[op]
}

// Width returns the number of words the operand occupies.
func (kind Operand) Width() int {
	switch kind {
	case OPERAND_IMM:
		return 1
	case OPERAND_EXT:
		return 2
	default:
		return 0
	}
}

// Instruction is a decoded instruction.
type Instruction struct {
	Op  Opcode
	Imm Word // Immediate operand, for OPERAND_IMM.
	Ext Addr // Address operand, for OPERAND_EXT.
}

// Decode decodes an opcode word. Words outside the opcode table decode to
// a reserved instruction, which executes as a no-op.
func Decode(word Word) Instruction {
	return Instruction{Op: Opcode(word)}
}

// MakeInstruction creates an instruction with an operand value, which is
// reduced to the operand's width.
func MakeInstruction(op Opcode, value int) (ins Instruction) {
	ins.Op = op
	switch op.Operand() {
	case OPERAND_IMM:
		ins.Imm = WordOf(value)
	case OPERAND_EXT:
		ins.Ext = AddrOf(value)
	}
	return
}

// Width returns the number of words in the instruction.
func (ins Instruction) Width() int {
	return 1 + ins.Op.Operand().Width()
}

// WithOperand fills in the operand from the words that follow the opcode.
// Missing words read as zero.
func (ins Instruction) WithOperand(words ...Word) Instruction {
	word := func(n int) Word {
		if n < len(words) {
			return words[n]
		}
		return 0
	}

	switch ins.Op.Operand() {
	case OPERAND_IMM:
		ins.Imm = word(0)
	case OPERAND_EXT:
		ins.Ext = Addr(word(0))<<8 | Addr(word(1))
	}

	return ins
}

// Encode returns the words of the instruction, opcode first.
// Address operands are stored high byte first.
func (ins Instruction) Encode() (words []Word) {
	words = append(words, Word(ins.Op))
	switch ins.Op.Operand() {
	case OPERAND_IMM:
		words = append(words, ins.Imm)
	case OPERAND_EXT:
		words = append(words, Word(ins.Ext>>8), Word(ins.Ext&0xff))
	}
	return
}

// String returns the assembly language representation of the instruction.
func (ins Instruction) String() (out string) {
	if !ins.Op.Known() {
		return fmt.Sprintf(".byte 0x%02x", int(ins.Op))
	}

	switch ins.Op.Operand() {
	case OPERAND_IMM:
		out = fmt.Sprintf("%v 0x%02x", ins.Op, ins.Imm)
	case OPERAND_EXT:
		out = fmt.Sprintf("%v 0x%04x", ins.Op, ins.Ext)
	default:
		out = ins.Op.String()
	}

	return
}
