package cpu

// Register names one of the SSBC registers.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_PC  = Register(0) // pc
	REG_SP  = Register(1) // sp
	REG_ACC = Register(2) // acc

	REGISTER_COUNT = 3
)

// registerMap maps register names to registers.
var registerMap = map[string]Register{
	"pc":  REG_PC,
	"sp":  REG_SP,
	"acc": REG_ACC,
}

// LookupRegister returns the register called name.
func LookupRegister(name string) (reg Register, err error) {
	reg, ok := registerMap[name]
	if !ok {
		err = ErrRegisterUnknown(name)
	}
	return
}

// Width returns the width of the register in bits.
func (reg Register) Width() int {
	switch reg {
	case REG_PC, REG_SP:
		return 16
	default:
		return WORD_BITS
	}
}

// Registers is the register file of the SSBC.
type Registers struct {
	value [REGISTER_COUNT]int
}

// Get returns the value of a register.
func (rf *Registers) Get(reg Register) int {
	return rf.value[reg]
}

// Set stores value into a register, reduced modulo 2^Width().
func (rf *Registers) Set(reg Register, value int) {
	modulus := 1 << reg.Width()
	value %= modulus
	if value < 0 {
		value += modulus
	}
	rf.value[reg] = value
}

// Advance adds delta to a register, wrapping. Used to step pc and sp.
func (rf *Registers) Advance(reg Register, delta int) {
	rf.Set(reg, rf.Get(reg)+delta)
}

// Pc returns the program counter.
func (rf *Registers) Pc() Addr {
	return Addr(rf.value[REG_PC])
}

// Sp returns the stack pointer.
func (rf *Registers) Sp() Addr {
	return Addr(rf.value[REG_SP])
}

// Acc returns the accumulator.
func (rf *Registers) Acc() Word {
	return Word(rf.value[REG_ACC])
}

// Reset zeroes all registers.
func (rf *Registers) Reset() {
	clear(rf.value[:])
}
