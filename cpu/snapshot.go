package cpu

// Snapshot is a copy of the architectural state of a Cpu.
type Snapshot struct {
	Pc       uint8                 `cbor:"pc"`
	Fl       uint8                 `cbor:"fl"`
	Register [REGISTER_COUNT]uint8 `cbor:"register"`
	Ram      [RAM_SIZE]uint8       `cbor:"ram"`
	Ticks    int                   `cbor:"ticks"`
}

// Snapshot captures the CPU state.
func (cpu *Cpu) Snapshot() Snapshot {
	return Snapshot{
		Pc:       cpu.Pc,
		Fl:       cpu.Fl,
		Register: cpu.Register,
		Ram:      cpu.Ram,
		Ticks:    cpu.Ticks,
	}
}

// Restore replaces the CPU state with a snapshot.
func (cpu *Cpu) Restore(snap Snapshot) {
	cpu.Pc = snap.Pc
	cpu.Fl = snap.Fl
	cpu.Register = snap.Register
	cpu.Ram = snap.Ram
	cpu.Ticks = snap.Ticks
}
