package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Program image errors
	ErrProgramNotFound  = errors.New(f("program not found"))
	ErrMalformedProgram = errors.New(f("malformed program"))
	ErrProgramTooLarge  = errors.New(f("program too large"))
)

// ErrSyntax locates a malformed line of a program image.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
