package cpu

// Word is the native 8-bit machine unit.
type Word uint8

// Addr is a 16-bit memory address.
type Addr uint16

const (
	WORD_BITS    = 8              // Bits in a machine word.
	WORD_MODULUS = 1 << WORD_BITS // Word values reduce modulo this.
	SIGN_BIT     = Word(0x80)     // Sign bit of a word.
	MEMORY_SIZE  = 1 << 16        // Memory cells, and address modulus.
	STACK_RESET  = Addr(0xFFFA)   // Stack pointer after reset.
	ADDR_MAX     = Addr(MEMORY_SIZE - 1)
)

// WordOf reduces an integer modulo 2^WORD_BITS.
func WordOf(value int) Word {
	value %= WORD_MODULUS
	if value < 0 {
		value += WORD_MODULUS
	}
	return Word(value)
}

// AddrOf reduces an integer modulo MEMORY_SIZE.
func AddrOf(addr int) Addr {
	addr %= MEMORY_SIZE
	if addr < 0 {
		addr += MEMORY_SIZE
	}
	return Addr(addr)
}

// Memory is the 64KiB memory bank of the SSBC.
// Every access wraps, so no address is ever out of range.
type Memory struct {
	Data [MEMORY_SIZE]Word
}

// Read returns the word at addr, modulo the memory size.
func (mem *Memory) Read(addr int) Word {
	return mem.Data[AddrOf(addr)]
}

// Write stores value at addr, modulo the memory size.
func (mem *Memory) Write(addr int, value Word) {
	mem.Data[AddrOf(addr)] = value
}

// Load copies an image into memory starting at start, wrapping at the top
// of memory.
func (mem *Memory) Load(start int, image []Word) {
	for n, value := range image {
		mem.Write(start+n, value)
	}
}

// Reset zeroes all of memory.
func (mem *Memory) Reset() {
	clear(mem.Data[:])
}
