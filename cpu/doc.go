// Package cpu implements the processor and assembler for the SSBC teaching
// computer.
//
// The SSBC is an 8-bit stack machine with 64KiB of memory. The program
// counter (pc) and stack pointer (sp) are 16-bit registers, and a single
// 8-bit accumulator (acc) serves the immediate-add instructions. The program
// status word (PSW) and the four I/O ports are mapped into the top of memory.
//
// Subtraction has two semantics, two's-complement and sign-magnitude. The
// build default is selected with the 'signmagnitude' build tag, and the ALU
// takes its mode as an explicit value so both can be exercised side by side.
//
// The assembler provides a small macro assembly language for the SSBC
// instruction set, with labels, equates, and compile-time expression
// evaluation. Images are exchanged in the line-oriented 'mac' format.
package cpu
