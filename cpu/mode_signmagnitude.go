//go:build signmagnitude

package cpu

// BuildSubtractMode is the subtraction mode selected at build time.
// This build matches the legacy sign-magnitude grading reference.
const BuildSubtractMode = SIGN_MAGNITUDE
