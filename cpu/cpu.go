package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%#x", MEMORY_SIZE),
	"STACK_RESET": fmt.Sprintf("%#x", STACK_RESET),
	"PSW":         fmt.Sprintf("%#x", PSW_ADDR),
	"PSW_ZERO":    fmt.Sprintf("%#x", PSW_ZERO),
	"PSW_NEG":     fmt.Sprintf("%#x", PSW_NEG),
	"PORT_A":      fmt.Sprintf("%#x", PORT_A.Addr()),
	"PORT_B":      fmt.Sprintf("%#x", PORT_B.Addr()),
	"PORT_C":      fmt.Sprintf("%#x", PORT_C.Addr()),
	"PORT_D":      fmt.Sprintf("%#x", PORT_D.Addr()),
}

// Cpu is the simulation context for the SSBC processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   *Memory      // Memory bank, including PSW and ports.
	Register Registers    // Register file.
	Alu      *Alu         // Arithmetic unit.
	Carry    bool         // Carry or borrow of the last ALU operation.
	Halted   bool         // Set by the halt instruction.
	Policy   CommitPolicy // Read/write ordering within an instruction.

	Ticks int // Instructions executed.

	// PortWrite, if set, is called for every program write to a port,
	// after the instruction commits.
	PortWrite func(port Port, value Word)
}

// NewCpu creates a CPU with zeroed memory, and an ALU in the given
// subtraction mode.
func NewCpu(mode SubtractMode) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: &Memory{},
		Alu:    NewAlu(mode),
	}

	return
}

// Defines returns the memory map as assembler predefines.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Ports returns the I/O ports of the CPU.
func (cpu *Cpu) Ports() Ports {
	return Ports{Memory: cpu.Memory}
}

// PSW returns the program status word.
func (cpu *Cpu) PSW() Word {
	return cpu.Memory.Read(int(PSW_ADDR))
}

// Flags returns the current flags.
func (cpu *Cpu) Flags() Flags {
	return FlagsOf(cpu.PSW(), cpu.Carry)
}

// Top returns the value on the top of the stack.
func (cpu *Cpu) Top() Word {
	return cpu.Memory.Read(int(cpu.Register.Sp()) + 1)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "sp", "acc", "psw", "flags", "top", "halt",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.Register.Pc())
		case "sp":
			strval = fmt.Sprintf("%04X", cpu.Register.Sp())
		case "acc":
			strval = fmt.Sprintf("%08b", cpu.Register.Acc())
		case "psw":
			strval = fmt.Sprintf("%08b", cpu.PSW())
		case "flags":
			strval = cpu.Flags().String()
		case "top":
			strval = fmt.Sprintf("%08b", cpu.Top())
		case "halt":
			strval = "false"
			if cpu.Halted {
				strval = "true"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Zeros memory, including the PSW and the ports.
// - Zeros the registers, then sets the stack pointer to STACK_RESET.
// - Clears carry, halt, and the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	cpu.Register.Reset()
	cpu.Register.Set(REG_SP, int(STACK_RESET))
	cpu.Carry = false
	cpu.Halted = false
	cpu.Ticks = 0
}

// Fetch decodes the instruction at the program counter, with its operand.
// Memory is not modified.
func (cpu *Cpu) Fetch() (ins Instruction) {
	pc := int(cpu.Register.Pc())

	ins = Decode(cpu.Memory.Read(pc))

	operand := make([]Word, ins.Op.Operand().Width())
	for n := range operand {
		operand[n] = cpu.Memory.Read(pc + 1 + n)
	}

	return ins.WithOperand(operand...)
}

// Tick executes a single instruction cycle. A halted CPU does nothing.
func (cpu *Cpu) Tick() (ins Instruction) {
	if cpu.Halted {
		return
	}

	ins = cpu.Fetch()
	cpu.Execute(ins)

	return
}

// Execute executes a single decoded instruction, as if it was fetched at
// the program counter.
func (cpu *Cpu) Execute(ins Instruction) {
	pc := int(cpu.Register.Pc())

	if cpu.Verbose {
		log.Printf("%04x: %v", pc, ins)
	}

	next_pc := pc + ins.Width()

	tx := &txn{cpu: cpu, policy: cpu.Policy}
	alu := cpu.Alu

	switch ins.Op {
	case OP_NOP:
		// pass
	case OP_HALT:
		tx.halt = true
	case OP_PUSHIMM:
		tx.push(ins.Imm)
	case OP_PUSHEXT:
		tx.push(tx.load(int(ins.Ext)))
	case OP_POPINH:
		tx.set(REG_SP, tx.sp()+1)
	case OP_POPEXT:
		sp := tx.sp()
		tx.store(int(ins.Ext), tx.load(sp+1))
		tx.set(REG_SP, sp+1)
	case OP_JNZ:
		if tx.load(int(PSW_ADDR)) != PSW_ZERO {
			tx.jumpTo(ins.Ext)
		}
	case OP_JNN:
		if tx.load(int(PSW_ADDR)) != PSW_NEG {
			tx.jumpTo(ins.Ext)
		}
	case OP_ADD:
		sp := tx.sp()
		result, flags := alu.Add(tx.load(sp+2), tx.load(sp+1))
		tx.store(sp+2, result)
		tx.flags(flags)
		tx.set(REG_SP, sp+1)
	case OP_SUB:
		// Top of stack minus the word below it.
		sp := tx.sp()
		result, flags := alu.Subtract(tx.load(sp+1), tx.load(sp+2))
		tx.store(sp+2, result)
		tx.flags(flags)
		tx.set(REG_SP, sp+1)
	case OP_NOR:
		sp := tx.sp()
		result, _ := alu.Nor(tx.load(sp+2), tx.load(sp+1))
		tx.store(sp+2, result)
		tx.set(REG_SP, sp+1)
	case OP_ADDIMM:
		result, flags := alu.Add(Word(tx.get(REG_ACC)), ins.Imm)
		tx.set(REG_ACC, int(result))
		tx.flags(flags)
	case OP_PUSHACC:
		tx.push(Word(tx.get(REG_ACC)))
	case OP_POPACC:
		sp := tx.sp()
		tx.set(REG_ACC, int(tx.load(sp+1)))
		tx.set(REG_SP, sp+1)
	case OP_JMP:
		tx.jumpTo(ins.Ext)
	case OP_CALL:
		// Return address, high byte pushed first.
		sp := tx.sp()
		ret := AddrOf(next_pc)
		tx.store(sp, Word(ret>>8))
		tx.store(sp-1, Word(ret&0xff))
		tx.set(REG_SP, sp-2)
		tx.jumpTo(ins.Ext)
	case OP_RET:
		sp := tx.sp()
		lo := tx.load(sp + 1)
		hi := tx.load(sp + 2)
		tx.set(REG_SP, sp+2)
		tx.jumpTo(Addr(hi)<<8 | Addr(lo))
	case OP_SHL:
		sp := tx.sp()
		result, flags := alu.Shl(tx.load(sp + 1))
		tx.store(sp+1, result)
		tx.flags(flags)
	case OP_SHR:
		sp := tx.sp()
		result, flags := alu.Shr(tx.load(sp + 1))
		tx.store(sp+1, result)
		tx.flags(flags)
	default:
		// Reserved opcodes are no-ops.
	}

	tx.commit(next_pc)
	cpu.Ticks++

	if cpu.Halted && cpu.Verbose {
		log.Printf("cpu: halt at %04x", pc)
	}
}
