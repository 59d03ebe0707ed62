package cpu

// SubtractMode selects the semantics of the ALU subtract operation.
type SubtractMode int

//go:generate go tool stringer -linecomment -type=SubtractMode
const (
	TWOS_COMPLEMENT = SubtractMode(0) // twos-complement
	SIGN_MAGNITUDE  = SubtractMode(1) // sign-magnitude
)

const (
	MAGNITUDE_MASK    = Word(0x7f)
	MAGNITUDE_MODULUS = int(MAGNITUDE_MASK) + 1
)

// Alu is the arithmetic unit. Its subtraction mode is fixed when it is
// created.
type Alu struct {
	mode SubtractMode
}

// NewAlu creates an ALU with the given subtraction mode.
func NewAlu(mode SubtractMode) *Alu {
	return &Alu{mode: mode}
}

// Mode returns the subtraction mode of the ALU.
func (alu *Alu) Mode() SubtractMode {
	return alu.mode
}

// Negate returns the two's-complement negation of value.
func Negate(value Word) Word {
	return WordOf(int(^value) + 1)
}

// Add returns a + b. Carry is the carry out of bit 7.
func (alu *Alu) Add(a, b Word) (result Word, flags Flags) {
	sum := int(a) + int(b)
	result = WordOf(sum)
	flags = flagsOf(result, sum >= WORD_MODULUS)
	return
}

// Subtract returns a - b in the ALU's subtraction mode.
func (alu *Alu) Subtract(a, b Word) (result Word, flags Flags) {
	switch alu.mode {
	case SIGN_MAGNITUDE:
		return subSignMagnitude(a, b)
	default:
		return subTwosComplement(a, b)
	}
}

// subTwosComplement computes a + -b. Carry is the unsigned borrow.
func subTwosComplement(a, b Word) (result Word, flags Flags) {
	result = WordOf(int(a) + int(Negate(b)))
	flags = flagsOf(result, a < b)
	return
}

// subSignMagnitude treats bit 7 as the sign and bits 0-6 as the magnitude,
// and computes a + -b by the classical rules. Carry is set on magnitude
// overflow, or when the magnitude of b exceeds that of a.
func subSignMagnitude(a, b Word) (result Word, flags Flags) {
	a_neg, a_mag := a&SIGN_BIT != 0, int(a&MAGNITUDE_MASK)
	// Sign of -b.
	b_neg, b_mag := b&SIGN_BIT == 0, int(b&MAGNITUDE_MASK)

	var neg, carry bool
	var mag int

	switch {
	case a_neg == b_neg:
		mag = a_mag + b_mag
		neg = a_neg
		carry = mag >= MAGNITUDE_MODULUS
		mag %= MAGNITUDE_MODULUS
	case a_mag >= b_mag:
		mag = a_mag - b_mag
		neg = a_neg
	default:
		mag = b_mag - a_mag
		neg = b_neg
		carry = true
	}

	// No negative zero.
	if mag == 0 {
		neg = false
	}

	result = Word(mag)
	if neg {
		result |= SIGN_BIT
	}

	flags = flagsOf(result, carry)
	return
}

// Nor returns ^(a | b).
func (alu *Alu) Nor(a, b Word) (result Word, flags Flags) {
	result = ^(a | b)
	flags = flagsOf(result, false)
	return
}

// Shl shifts a left by one. Carry is the bit shifted out.
func (alu *Alu) Shl(a Word) (result Word, flags Flags) {
	result = WordOf(int(a) << 1)
	flags = flagsOf(result, a&SIGN_BIT != 0)
	return
}

// Shr shifts a right by one, filling with zero. Carry is the bit shifted out.
func (alu *Alu) Shr(a Word) (result Word, flags Flags) {
	result = a >> 1
	flags = flagsOf(result, a&1 != 0)
	return
}
