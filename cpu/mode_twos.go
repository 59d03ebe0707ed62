//go:build !signmagnitude

package cpu

// BuildSubtractMode is the subtraction mode selected at build time.
// Build with '-tags signmagnitude' for the legacy sign-magnitude ALU.
const BuildSubtractMode = TWOS_COMPLEMENT
