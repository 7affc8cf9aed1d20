// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"SP":        fmt.Sprintf("R%d", SP),
	"STACK_TOP": fmt.Sprintf("%#x", STACK_TOP),
	"FL_EQ":     fmt.Sprintf("%#x", FL_EQ),
	"FL_GT":     fmt.Sprintf("%#x", FL_GT),
	"FL_LT":     fmt.Sprintf("%#x", FL_LT),
}

// Defines returns an iterator over the predefined system equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(sysEquate)
}

var (
	reLabel     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reCharacter = regexp.MustCompile(`'\\?[^']'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass assembler for the ls8 instruction set.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// registerOf returns the register index named by a word.
func registerOf(word string) (reg uint8, err error) {
	upper := strings.ToUpper(word)
	if len(upper) == 2 && upper[0] == 'R' && upper[1] >= '0' && upper[1] < '0'+REGISTER_COUNT {
		reg = upper[1] - '0'
		return
	}

	err = ErrParseRegister(word)
	return
}

// valueOf returns the byte value of a numeric word. Negative values down
// to -128 are stored in two's complement.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 < -0x80 || v64 > 0xff {
		err = ErrParseRange(word)
		return
	}

	value = uint8(v64)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint8, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -0x80 || st_int64 > 0xff {
		err = ErrParseRange(expr)
		return
	}
	value = uint8(st_int64)
	return
}

// parseLine expands a single line into words, handling equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddr gets the address of the next generated byte.
func (asm *Assembler) currentAddr() int {
	if len(asm.Lines) == 0 {
		return 0
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Addr + len(last.Bytes)
}

// stripComment removes a ';' or '#' comment.
func stripComment(text string) string {
	index := strings.IndexAny(text, ";#")
	if index >= 0 {
		text = text[:index]
	}
	return text
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Lines = asm.Lines[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		ln := &asm.Lines[n]

		if len(ln.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[ln.LinkLabel]
		if !ok {
			lineno = ln.LineNo
			line = strings.Join(ln.Words, " ")
			err = ErrLabelMissing(ln.LinkLabel)
			return
		}
		ln.Bytes[ln.LinkIndex] = uint8(addr)
	}

	if asm.currentAddr() > RAM_SIZE {
		err = ErrProgramTooLarge
		return
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var data []byte
	var label string
	var link int

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(data) == 0 {
			return
		}
		line := Line{LineNo: lineno, Addr: asm.currentAddr(), Words: initial_words, Bytes: data, LinkLabel: label, LinkIndex: link}
		asm.Lines = append(asm.Lines, line)
	}()

	// .db VALUE...
	if words[0] == ".db" {
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var value uint8
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			data = append(data, value)
		}
		return
	}

	op, ok := LookupOpcode(words[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}
	info, _ := op.Info()

	args := words[1:]
	if len(args) < op.Operands() {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > op.Operands() {
		err = ErrOpcodeExtraArgs
		return
	}

	data = []byte{uint8(op)}
	for n, arg := range args {
		var value uint8
		if n < info.Registers {
			value, err = registerOf(arg)
		} else {
			value, err = asm.valueOf(arg)
			if err != nil && reLabel.MatchString(arg) {
				// Resolved once all labels are known.
				label = arg
				link = len(data)
				value = 0
				err = nil
			}
		}
		if err != nil {
			return
		}
		data = append(data, value)
	}

	return
}
