// Package io provides the program loader and output device for the ls8
// virtual machine.
//
// A Rom is the byte image parsed from a program file of binary literals,
// and a Tape is the line oriented sink that receives the values printed by
// the PRN instruction.
package io

// Printer receives the register values emitted by the CPU.
type Printer interface {
	// Print reports the value of a register.
	Print(register int, value uint8) error
}
