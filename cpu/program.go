package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Line represents a line of assembled source with the bytes it generated.
type Line struct {
	LineNo    int      // Source line number.
	Addr      int      // Address of the first byte.
	Words     []string // Source words, labels removed.
	Bytes     []byte   // Generated bytes.
	LinkLabel string   // Label to resolve into Bytes[LinkIndex].
	LinkIndex int
}

type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the source line that generated the byte at addr.
func (prog *Program) Debug(addr uint8) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(addr) >= line.Addr && int(addr) < line.Addr+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(addr) - line.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the program image.
func (prog *Program) Binary() (bins []byte) {
	for _, data := range prog.Bytes() {
		bins = append(bins, data)
	}

	return
}

// Bytes iterates over the program image as address and value pairs.
func (prog *Program) Bytes() iter.Seq2[uint8, byte] {
	return func(yield func(addr uint8, data byte) bool) {
		for _, line := range prog.Lines {
			for n, data := range line.Bytes {
				if !yield(uint8(line.Addr+n), data) {
					return
				}
			}
		}
	}
}

// Listing writes the program as binary literals, one byte per line, with
// the source of each line as a comment on its first byte.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, line := range prog.Lines {
		for n, data := range line.Bytes {
			text := fmt.Sprintf("%08b", data)
			if n == 0 {
				text += fmt.Sprintf(" # %v", strings.Join(line.Words, " "))
			}
			_, err = fmt.Fprintln(w, text)
			if err != nil {
				return
			}
		}
	}

	return
}
