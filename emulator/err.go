package emulator

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrDumpVersion = errors.New(f("dump version unsupported"))
	ErrDumpState   = errors.New(f("dump state invalid"))
	ErrFaulted     = errors.New(f("machine faulted"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint8
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %02X %v", err.Pc, err.Err)
	}
	return f("line %d pc %02X %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
