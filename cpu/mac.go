package cpu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const MAC_DIGITS = 8 // Binary digits at the start of every mac line.

// ReadMac reads a mac image. Line N holds the word for address N as
// MAC_DIGITS binary digits; anything after the digits is ignored. Shorter
// lines leave their word zero.
func ReadMac(input io.Reader) (image []Word, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		line := scanner.Text()
		lineno++

		if lineno > MEMORY_SIZE {
			err = ErrMacSize
			return
		}

		var value Word
		if len(line) >= MAC_DIGITS {
			var value64 uint64
			value64, err = strconv.ParseUint(line[:MAC_DIGITS], 2, WORD_BITS)
			if err != nil {
				err = &ErrMacSyntax{LineNo: lineno, Line: line}
				return
			}
			value = Word(value64)
		}
		image = append(image, value)
	}

	err = scanner.Err()
	return
}

// WriteMac writes an image, starting at address 0, in mac format.
func WriteMac(output io.Writer, image []Word) (err error) {
	if len(image) > MEMORY_SIZE {
		err = ErrMacSize
		return
	}

	w := bufio.NewWriter(output)
	for _, value := range image {
		_, err = fmt.Fprintf(w, "%08b\n", value)
		if err != nil {
			return
		}
	}

	err = w.Flush()
	return
}

// Mac writes the program in mac format from address 0, with each
// instruction annotated by its disassembly.
func (prog *Program) Mac(output io.Writer) (err error) {
	origin, image := prog.Image()

	notes := map[int]string{}
	for _, op := range prog.Listing {
		if len(op.Codes) == 0 {
			continue
		}
		var note string
		if _, ok := mnemonicMap[op.Words[0]]; ok {
			ins := Decode(op.Codes[0]).WithOperand(op.Codes[1:]...)
			note = ins.String()
		} else {
			note = fmt.Sprintf(".byte x%d", len(op.Codes))
		}
		notes[op.Addr] = fmt.Sprintf("%04x: %v", op.Addr, note)
	}

	w := bufio.NewWriter(output)
	for addr := range origin + len(image) {
		var value Word
		if addr >= origin {
			value = image[addr-origin]
		}
		if note, ok := notes[addr]; ok {
			_, err = fmt.Fprintf(w, "%08b ; %v\n", value, note)
		} else {
			_, err = fmt.Fprintf(w, "%08b\n", value)
		}
		if err != nil {
			return
		}
	}

	err = w.Flush()
	return
}
