package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalt            = errors.New(f("halt"))
	ErrOutputInvalid   = errors.New(f("output invalid"))
	ErrProgramTooLarge = errors.New(f("program too large"))

	// Instruction decode errors
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrAluUnsupported  = errors.New(f("unsupported alu operation"))
	ErrOpcodePrint     = errors.New(f("print"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrOpcode reports the instruction that faulted.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x %v", uint8(eo.Op), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

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

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRange string

func (err ErrParseRange) Error() string {
	return f("'%v' does not fit in a byte", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
