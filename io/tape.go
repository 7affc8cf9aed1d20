package io

import (
	"io"
)

// Tape is the line printer of the machine.
//
// Every Print writes one complete line straight to Output, so nothing is
// held back if the machine faults afterwards.
type Tape struct {
	Output   io.Writer
	Labelled bool // If set, lines name the register as well as the value.

	Lines int // Count of lines printed.
}

var _ Printer = (*Tape)(nil)

// Print writes the value of a register as a decimal line.
func (tc *Tape) Print(register int, value uint8) (err error) {
	var line string
	if tc.Labelled {
		line = f("Register: %d, Value: %d\n", register, value)
	} else {
		line = f("%d\n", value)
	}

	_, err = io.WriteString(tc.Output, line)
	if err != nil {
		return
	}

	tc.Lines++

	return
}
