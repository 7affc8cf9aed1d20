package emulator

import (
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/ezrec/ls8/cpu"
)

const (
	DUMP_VERSION = 1 // Version of the machine dump encoding.
)

// cborEncMode is canonical, so equal machines dump to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborEncMode = em
}

// machineDump is the encoded form of a machine.
type machineDump struct {
	Version  int          `cbor:"1,keyasint"`
	State    State        `cbor:"2,keyasint"`
	Snapshot cpu.Snapshot `cbor:"3,keyasint"`
	Lines    int          `cbor:"4,keyasint"`
}

// Dump writes the machine state to w as CBOR.
func (emu *Emulator) Dump(w io.Writer) (err error) {
	dump := machineDump{
		Version:  DUMP_VERSION,
		State:    emu.state,
		Snapshot: emu.Cpu.Snapshot(),
		Lines:    emu.Tape.Lines,
	}

	err = cborEncMode.NewEncoder(w).Encode(&dump)

	return
}

// Restore replaces the machine state with a dump read from r.
//
// A faulted machine is restored as faulted, though the fault that stopped it
// is reported as ErrFaulted.
func (emu *Emulator) Restore(r io.Reader) (err error) {
	var dump machineDump

	err = cbor.NewDecoder(r).Decode(&dump)
	if err != nil {
		return
	}

	if dump.Version != DUMP_VERSION {
		err = ErrDumpVersion
		return
	}

	if dump.State < STATE_READY || dump.State > STATE_FAULTED {
		err = ErrDumpState
		return
	}

	emu.Cpu.Restore(dump.Snapshot)
	emu.Tape.Lines = dump.Lines
	emu.fault = nil
	if dump.State == STATE_FAULTED {
		emu.fault = &ErrRuntime{Pc: emu.Cpu.Pc, LineNo: emu.LineNo(), Err: ErrFaulted}
	}
	emu.setState(dump.State)

	return
}
