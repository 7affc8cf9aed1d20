package emulator

// State is the run state of the machine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_READY   = State(iota) // ready
	STATE_RUNNING               // running
	STATE_HALTED                // halted
	STATE_FAULTED               // faulted
)

// Terminal is true once the machine can no longer run.
func (state State) Terminal() bool {
	return state == STATE_HALTED || state == STATE_FAULTED
}
