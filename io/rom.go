package io

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"iter"
	"maps"
	"os"
	"strconv"
	"strings"
)

const (
	ROM_SIZE = 256 // Largest program image, the size of the address space.
)

var romDefines = map[string]string{
	"ROM_SIZE": strconv.Itoa(ROM_SIZE),
}

// Defines returns an iterator over the program image equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(romDefines)
}

// Rom is a program image, loaded at address 0 of the machine.
type Rom struct {
	Data []byte
}

// LoadRom reads a program image from the binary literal file at path.
func LoadRom(path string) (rom *Rom, err error) {
	inf, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = errors.Join(ErrProgramNotFound, err)
		}
		return
	}
	defer inf.Close()

	rom = &Rom{}
	err = rom.Parse(inf)
	if err != nil {
		rom = nil
		return
	}

	return
}

// Parse replaces the image with the bytes of a binary literal program.
//
// Each line holds at most one base-2 literal, optionally followed by a '#'
// comment. Blank and comment only lines are skipped.
func (rom *Rom) Parse(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	rom.Data = make([]byte, 0, ROM_SIZE)

	for scanner.Scan() {
		line = scanner.Text()
		lineno++

		text, _, _ := strings.Cut(line, "#")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		var value uint64
		value, err = strconv.ParseUint(text, 2, 8)
		if err != nil {
			err = errors.Join(ErrMalformedProgram, err)
			return
		}

		if len(rom.Data) == ROM_SIZE {
			err = ErrProgramTooLarge
			return
		}

		rom.Data = append(rom.Data, byte(value))
	}

	line = ""
	err = scanner.Err()

	return
}

// Bytes iterates over the image as address and value pairs.
func (rom *Rom) Bytes() iter.Seq2[uint8, byte] {
	return func(yield func(addr uint8, value byte) bool) {
		for n, value := range rom.Data {
			if !yield(uint8(n), value) {
				return
			}
		}
	}
}
