package cpu

const (
	STACK_TOP = uint8(0xf4) // Initial stack pointer; the stack grows down from here.
)

// The stack lives in RAM and is addressed through the SP register. Nothing
// keeps it from running into the program, or wrapping around the address space.

// Push stores value below the top of the stack.
func (cpu *Cpu) Push(value uint8) {
	cpu.Register[SP]--
	cpu.Ram[cpu.Register[SP]] = value
}

// Pop removes and returns the top of the stack.
func (cpu *Cpu) Pop() (value uint8) {
	value = cpu.Peek()
	cpu.Register[SP]++
	return
}

// Peek returns the top of the stack.
func (cpu *Cpu) Peek() uint8 {
	return cpu.Ram[cpu.Register[SP]]
}

// Depth returns the number of bytes pushed since reset. It is negative if
// more has been popped than pushed.
func (cpu *Cpu) Depth() int {
	return int(STACK_TOP) - int(cpu.Register[SP])
}

// Empty is true when nothing is on the stack.
func (cpu *Cpu) Empty() bool {
	return cpu.Depth() <= 0
}
