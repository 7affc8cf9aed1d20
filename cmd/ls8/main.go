// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command ls8 runs a program on the ls8 virtual machine.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/ezrec/ls8/config"
	"github.com/ezrec/ls8/emulator"
	ls8io "github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/translate"
)

// Process exit statuses.
const (
	EXIT_OK        = 0 // Program halted.
	EXIT_USAGE     = 1 // Bad command line.
	EXIT_NOT_FOUND = 2 // Program file missing.
	EXIT_MALFORMED = 3 // Program or configuration could not be loaded.
	EXIT_FAULT     = 4 // Program faulted.
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args, returning the exit status.
func run(args []string, stdout io.Writer, stderr io.Writer) (status int) {
	var conf_path string
	var verbose bool
	var trace bool
	var assembly bool
	var listing bool
	var labelled bool
	var dump string

	flags := flag.NewFlagSet("ls8", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		translate.Fprintf(stderr, "usage: ls8 [flags] <program>\n")
		flags.PrintDefaults()
	}

	flags.StringVar(&conf_path, "c", "", ".toml configuration file")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.BoolVar(&trace, "t", false, "Trace every instruction")
	flags.BoolVar(&assembly, "a", false, "Program is assembler source")
	flags.BoolVar(&listing, "S", false, "Assemble to a binary listing, do not execute")
	flags.BoolVar(&labelled, "l", false, "Print the register with each value")
	flags.StringVar(&dump, "dump", "", "Write a CBOR machine dump when stopped")

	err := flags.Parse(args)
	if err != nil {
		status = EXIT_USAGE
		return
	}

	if flags.NArg() != 1 {
		flags.Usage()
		status = EXIT_USAGE
		return
	}

	path := flags.Arg(0)

	log.SetOutput(stderr)

	fail := func(code int, err error) int {
		translate.Fprintf(stderr, "ls8: %v: %v\n", path, err)
		return code
	}

	conf := &config.Config{}
	if len(conf_path) != 0 {
		conf, err = config.Load(conf_path)
		if err != nil {
			translate.Fprintf(stderr, "ls8: %v: %v\n", conf_path, err)
			status = EXIT_MALFORMED
			return
		}
	}

	// Flags given on the command line override the configuration.
	given := map[string]bool{}
	flags.Visit(func(fl *flag.Flag) {
		given[fl.Name] = true
	})
	if !given["v"] {
		verbose = conf.Verbose
	}
	if !given["t"] {
		trace = conf.Trace
	}
	if !given["a"] {
		assembly = conf.Assembly
	}
	if !given["l"] {
		labelled = conf.Labelled
	}
	if !given["dump"] {
		dump = conf.Dump
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Trace = trace
	emu.Equates = conf.Equates
	emu.Tape.Output = stdout
	emu.Tape.Labelled = labelled

	if assembly || listing {
		err = emu.LoadAssembly(path)
	} else {
		err = emu.LoadFile(path)
	}
	if err != nil {
		if errors.Is(err, ls8io.ErrProgramNotFound) {
			return fail(EXIT_NOT_FOUND, err)
		}
		return fail(EXIT_MALFORMED, err)
	}

	if listing {
		err = emu.Program.Listing(stdout)
		if err != nil {
			return fail(EXIT_MALFORMED, err)
		}
		return
	}

	err = emu.Run()
	if err != nil {
		status = fail(EXIT_FAULT, err)
	}

	if len(dump) != 0 {
		derr := writeDump(emu, dump)
		if derr != nil {
			translate.Fprintf(stderr, "ls8: %v: %v\n", dump, derr)
			status = EXIT_FAULT
		}
	}

	if verbose {
		log.Printf("ls8: %v after %d ticks\n%v", emu.State(), emu.Cpu.Ticks, emu.Cpu.String())
	}

	return
}

// writeDump writes the machine state to the file at path.
func writeDump(emu *emulator.Emulator, path string) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}

	err = emu.Dump(ouf)
	cerr := ouf.Close()
	if err == nil {
		err = cerr
	}

	return
}
