package cpu

const (
	PSW_ADDR = Addr(0xFFFB) // Program status word address.
	PSW_ZERO = Word(0x80)   // Result was zero.
	PSW_NEG  = Word(0x40)   // Result was negative.
)

// Flags are the condition flags derived from an ALU result.
type Flags struct {
	Zero  bool
	Sign  bool
	Carry bool // Carry out, borrow, or bit shifted out.
}

// flagsOf derives the flags of an ALU result.
func flagsOf(result Word, carry bool) Flags {
	return Flags{
		Zero:  result == 0,
		Sign:  result&SIGN_BIT != 0,
		Carry: carry,
	}
}

// PSW encodes the flags as a program status word.
// Only one of zero or negative is ever reported, zero first.
func (fl Flags) PSW() Word {
	switch {
	case fl.Zero:
		return PSW_ZERO
	case fl.Sign:
		return PSW_NEG
	default:
		return 0
	}
}

// FlagsOf decodes a program status word, with the carry tracked by the CPU.
func FlagsOf(psw Word, carry bool) Flags {
	return Flags{
		Zero:  psw == PSW_ZERO,
		Sign:  psw == PSW_NEG,
		Carry: carry,
	}
}

// String returns the flags in 'ZNC' form, with '-' for clear flags.
func (fl Flags) String() string {
	out := []byte("---")
	if fl.Zero {
		out[0] = 'Z'
	}
	if fl.Sign {
		out[1] = 'N'
	}
	if fl.Carry {
		out[2] = 'C'
	}
	return string(out)
}
