// Package generation provides card number generators. The lifecycle service
// depends only on the CardNumberGenerator interface so that tests and tools
// can supply deterministic sequences.
package generation
