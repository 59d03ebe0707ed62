package cpu

import (
	"iter"
)

// Listing is a line of assembled code with its source location and
// generated words.
type Listing struct {
	LineNo    int
	Addr      int
	Words     []string
	Codes     []Word
	LinkLabel string
}

// Program is the output of the assembler.
type Program struct {
	Listing []Listing
}

type Debug struct {
	*Listing
	Index int
}

// Debug returns the listing line that generated the word at addr.
func (prog *Program) Debug(addr Addr) (dbg Debug) {
	for n, op := range prog.Listing {
		if int(addr) >= op.Addr && int(addr) < op.Addr+len(op.Codes) {
			dbg = Debug{
				Listing: &prog.Listing[n],
				Index:   int(addr) - op.Addr,
			}
			break
		}
	}

	return
}

// Codes iterates over every generated word and its address.
func (prog *Program) Codes() iter.Seq2[Addr, Word] {
	return func(yield func(addr Addr, code Word) bool) {
		for _, op := range prog.Listing {
			for n, code := range op.Codes {
				if !yield(AddrOf(op.Addr+n), code) {
					return
				}
			}
		}
	}
}

// Image returns the program as a contiguous memory image starting at
// origin. Gaps between .org sections are zero.
func (prog *Program) Image() (origin int, image []Word) {
	first := true
	var last int
	for addr := range prog.Codes() {
		if first || int(addr) < origin {
			origin = int(addr)
		}
		if first || int(addr) > last {
			last = int(addr)
		}
		first = false
	}

	if first {
		return
	}

	image = make([]Word, last-origin+1)
	for addr, code := range prog.Codes() {
		image[int(addr)-origin] = code
	}

	return
}
