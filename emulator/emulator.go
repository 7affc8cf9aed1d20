// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

var _emulator_defines = map[string]string{
	"DUMP_VERSION": fmt.Sprintf("%v", DUMP_VERSION),
}

// Emulator state. CPU + program image + output tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	Trace    bool         // If set, logs the CPU trace before every tick.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembler listing of the program, if it was assembled.

	Equates map[string]string // Assembler predefines for LoadAssembly.

	Tape io.Tape // Tape output channel.
	Rom  io.Rom  // Program image, loaded on reset.

	state State
	fault error
}

// NewEmulator creates a new emulator, printing to stdout.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Tape.Output = os.Stdout
	emu.Cpu = cpu.NewCpu(&emu.Tape)

	return
}

// Defines returns an iterator over all of the defines. Entries of Equates
// come last, and so replace any system define of the same name.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(_emulator_defines),
		cpu.Defines(),
		io.Defines(),
		maps.All(emu.Equates),
	)
}

// State returns the run state of the machine.
func (emu *Emulator) State() State {
	return emu.state
}

func (emu *Emulator) setState(state State) {
	if emu.Verbose && emu.state != state {
		log.Printf("emulator: %v -> %v", emu.state, state)
	}
	emu.state = state
}

// Reset the machine and reload the program image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Rom.Data)
	if err != nil {
		return
	}

	emu.fault = nil
	emu.setState(STATE_READY)

	return
}

// Load a program image, and reset the machine.
func (emu *Emulator) Load(rom *io.Rom) (err error) {
	if len(rom.Data) > io.ROM_SIZE {
		err = io.ErrProgramTooLarge
		return
	}

	emu.Rom.Data = rom.Data
	emu.Program = &cpu.Program{}

	err = emu.Reset()

	return
}

// LoadFile loads a binary literal program file.
func (emu *Emulator) LoadFile(path string) (err error) {
	rom, err := io.LoadRom(path)
	if err != nil {
		return
	}

	err = emu.Load(rom)

	return
}

// LoadAssembly assembles a source file, and loads the result.
func (emu *Emulator) LoadAssembly(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = errors.Join(io.ErrProgramNotFound, err)
		}
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}
	prog, err := asm.Parse(inf)
	if err != nil {
		return
	}

	err = emu.Load(&io.Rom{Data: prog.Binary()})
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// LineNo returns the source line number of the instruction at the PC, or 0
// if the program was not assembled.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Code returns the instruction at the PC.
func (emu *Emulator) Code() cpu.Code {
	return emu.Cpu.Fetch()
}

// Tick performs a single tick of the emulator.
//
// done is set once the machine has halted or faulted; ticking it further
// changes nothing, and reports the same fault again.
func (emu *Emulator) Tick() (done bool, err error) {
	switch emu.state {
	case STATE_HALTED:
		done = true
		return
	case STATE_FAULTED:
		done = true
		err = emu.fault
		return
	}

	emu.setState(STATE_RUNNING)

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()

	if emu.Trace {
		log.Print(emu.Cpu.Trace())
	}

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalt) {
		err = nil
		done = true
		emu.setState(STATE_HALTED)
		return
	}
	if err != nil {
		err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		done = true
		emu.fault = err
		emu.setState(STATE_FAULTED)
		return
	}

	return
}

// Run ticks the emulator until the machine halts or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
	}

	return
}
