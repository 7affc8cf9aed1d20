package cpu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source []string
		binary []byte
	}){
		{"empty", []string{"", "; nothing", "   # at all"}, nil},
		{"hlt", []string{"HLT"}, []byte{0x01}},
		{"lowercase", []string{"ldi r3, 0x10"}, []byte{0x82, 0x03, 0x10}},
		{"no_commas", []string{"MUL R1 R2"}, []byte{0xa2, 0x01, 0x02}},
		{"binary", []string{"LDI R0, 0b1010"}, []byte{0x82, 0x00, 0x0a}},
		{"negative", []string{"LDI R0, -1"}, []byte{0x82, 0x00, 0xff}},
		{"character", []string{"LDI R0, 'H'"}, []byte{0x82, 0x00, 72}},
		{"escape", []string{`LDI R0, '\n'`}, []byte{0x82, 0x00, 10}},
		{"stack", []string{"PUSH SP", "POP R6"}, []byte{0x45, 0x07, 0x46, 0x06}},
		{"stack_top", []string{"LDI R0, STACK_TOP"}, []byte{0x82, 0x00, 0xf4}},
		{"flags", []string{"LDI R0, $(FL_EQ | FL_LT)"}, []byte{0x82, 0x00, 0x05}},
		{"lineno", []string{"", "", "LDI R0, LINENO"}, []byte{0x82, 0x00, 3}},
		{"db", []string{".db 1 2 0xff", ".db -128"}, []byte{1, 2, 0xff, 0x80}},
		{"equ", []string{".equ COUNT 0x20", "LDI R1, COUNT"}, []byte{0x82, 0x01, 0x20}},
		{"equ_register", []string{".equ ACC R3", "PRN ACC"}, []byte{0x47, 0x03}},
		{"expr", []string{".equ EIGHT 8", "LDI R0, $(EIGHT * 9)"}, []byte{0x82, 0x00, 72}},
		{"expr_equ", []string{".equ A 2", ".equ B $(A * A)", "LDI R0, $(B + A)"}, []byte{0x82, 0x00, 6}},
		{"label_back", []string{"top: HLT", "LDI R2, top", "LDI R3, $(top + 1)"}, []byte{0x01, 0x82, 0x02, 0x00, 0x82, 0x03, 0x01}},
		{"label_forward", []string{"LDI R2, end", "HLT", "end:", "HLT"}, []byte{0x82, 0x02, 0x04, 0x01, 0x01}},
		{"label_many", []string{"HLT", "a: b:", "c: LDI R0, b"}, []byte{0x01, 0x82, 0x00, 0x01}},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(strings.Join(entry.source, "\n")))
		if !assert.NoError(err, entry.name) {
			continue
		}
		assert.Equal(entry.binary, prog.Binary(), entry.name)
	}
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("COUNT", "3")
	asm.Predefine("STACK_TOP", "0x80")

	prog, err := asm.Parse(strings.NewReader("LDI R0, COUNT\nLDI R7, STACK_TOP\n"))
	assert.NoError(err)
	assert.Equal([]byte{0x82, 0x00, 0x03, 0x82, 0x07, 0x80}, prog.Binary())

	// Predefines survive another pass, and nothing else does.
	prog, err = asm.Parse(strings.NewReader(".equ OTHER 1\nLDI R0, COUNT\n"))
	assert.NoError(err)
	assert.Equal([]byte{0x82, 0x00, 0x03}, prog.Binary())
	prog, err = asm.Parse(strings.NewReader(".equ OTHER 2\n"))
	assert.NoError(err)
	assert.Len(prog.Lines, 0)
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source []string
		lineno int
		err    error
	}){
		{"instruction", []string{"NOP"}, 1, ErrInstructionInvalid},
		{"extra", []string{"HLT", "PRN R0 R1"}, 2, ErrOpcodeExtraArgs},
		{"missing", []string{"LDI R0"}, 1, ErrOpcodeValueMissing},
		{"db_missing", []string{".db"}, 1, ErrOpcodeValueMissing},
		{"equ_syntax", []string{".equ A"}, 1, ErrEquateSyntax},
		{"equ_duplicate", []string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{"equ_system", []string{".equ SP 1"}, 1, ErrEquateDuplicate},
		{"label_duplicate", []string{"a: HLT", "a: HLT"}, 2, ErrLabelDuplicate},
		{"label_invalid", []string{"1a: HLT"}, 1, ErrLabelInvalid},
		{"too_large", slicesRepeat(".db 0 0", 129), 129, ErrProgramTooLarge},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.source, "\n")))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax ErrSyntax
		if assert.ErrorAs(err, &syntax, entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestAssembler_ErrorsTyped(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	var reg_err ErrParseRegister
	_, err := asm.Parse(strings.NewReader("PRN R8"))
	assert.ErrorAs(err, &reg_err)
	assert.Equal(ErrParseRegister("R8"), reg_err)

	var range_err ErrParseRange
	_, err = asm.Parse(strings.NewReader("LDI R0, 256"))
	assert.ErrorAs(err, &range_err)
	_, err = asm.Parse(strings.NewReader("LDI R0, $(128 * 2)"))
	assert.ErrorAs(err, &range_err)

	var num_err ErrParseNumber
	_, err = asm.Parse(strings.NewReader(".db 12x"))
	assert.ErrorAs(err, &num_err)

	var label_err ErrLabelMissing
	_, err = asm.Parse(strings.NewReader("HLT\nLDI R0, nowhere\nHLT\n"))
	assert.ErrorAs(err, &label_err)
	assert.Equal(ErrLabelMissing("nowhere"), label_err)
	var syntax ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(2, syntax.LineNo)

	var expr_err ErrParseExpression
	_, err = asm.Parse(strings.NewReader(`LDI R0, $("text")`))
	assert.ErrorAs(err, &expr_err)

	_, err = asm.Parse(strings.NewReader("LDI R0, $(undefined + 1)"))
	assert.Error(err)
}

func TestAssembler_Fits(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(slicesRepeat(".db 0 0", 128), "\n")))
	assert.NoError(err)
	assert.Len(prog.Binary(), RAM_SIZE)
}

func TestAssembler_Run(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source []string
		output string
	}){
		{"mult", multSource, "72\n"},
		{"countdown", []string{
			"; print 3 2 1",
			"        LDI R0, 3",
			"        LDI R2, loop",
			"        LDI R3, done",
			"        LDI R4, 0",
			"        LDI R5, -1",
			"loop:   PRN R0",
			"        ADD R0, R5",
			"        CMP R0, R4",
			"        JEQ R3",
			"        JMP R2",
			"done:   HLT",
		}, "3\n2\n1\n"},
		{"call", []string{
			"        LDI R1, double",
			"        LDI R0, 21",
			"        CALL R1",
			"        PRN R0",
			"        HLT",
			"double: ADD R0, R0",
			"        RET",
		}, "42\n"},
		{"stack", []string{
			"        LDI R0, 5",
			"        PUSH R0",
			"        LDI R0, 9",
			"        POP R0",
			"        PRN R0",
			"        HLT",
		}, "5\n"},
	}

	for _, entry := range table {
		prog := assemble(t, entry.source)

		buffer := &bytes.Buffer{}
		cpu := NewCpu(&io.Tape{Output: buffer})
		assert.NoError(cpu.Load(prog.Binary()), entry.name)
		assert.NoError(cpu.Run(), entry.name)
		assert.Equal(entry.output, buffer.String(), entry.name)
		assert.Equal(STACK_TOP, cpu.Register[SP], entry.name)
	}
}

// slicesRepeat returns count copies of line.
func slicesRepeat(line string, count int) (lines []string) {
	for range count {
		lines = append(lines, line)
	}
	return
}
