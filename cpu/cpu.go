package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/ls8/io"
)

const (
	REGISTER_COUNT = 8   // Size of the register bank.
	RAM_SIZE       = 256 // Size of the address space.
	SP             = 7   // Register holding the stack pointer.
)

// Cpu is the simulation context for the ls8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Output io.Printer // Receives the values printed by PRN.

	Pc       uint8                 // Program counter.
	Fl       uint8                 // Flags register.
	Register [REGISTER_COUNT]uint8 // Register bank; R7 is the stack pointer.
	Ram      [RAM_SIZE]uint8       // Program and stack memory.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a reset CPU printing to output.
func NewCpu(output io.Printer) (cpu *Cpu) {
	cpu = &Cpu{
		Output: output,
	}

	cpu.Reset()

	return
}

// Reset the CPU state.
// - Clears the registers, flags, RAM and PC.
// - Zeros the tick counter.
// - Points the stack pointer at STACK_TOP.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Ram[:])
	cpu.Pc = 0
	cpu.Fl = 0
	cpu.Ticks = 0

	cpu.Register[SP] = STACK_TOP
}

// Load copies a program into RAM, starting at address 0.
func (cpu *Cpu) Load(program []byte) (err error) {
	if len(program) > RAM_SIZE {
		err = ErrProgramTooLarge
		return
	}

	copy(cpu.Ram[:], program)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(program))
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6",
		"sp",
		"stack",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			code, _ := Disassemble(cpu.Ram[:], cpu.Pc)
			strval = fmt.Sprintf("%02X (%v)", cpu.Pc, code)
		case "fl":
			strval = fmt.Sprintf("%03b", cpu.Fl)
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6":
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%02X", val)
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Register[SP])
		case "stack":
			if cpu.Empty() {
				strval = "--"
			} else {
				strval = fmt.Sprintf("%02X", cpu.Peek())
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Trace returns a single line summary of the PC, the bytes at the PC, and
// the register bank.
func (cpu *Cpu) Trace() (text string) {
	text = fmt.Sprintf("TRACE: %02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.Ram[cpu.Pc],
		cpu.Ram[cpu.Pc+1],
		cpu.Ram[cpu.Pc+2],
	)

	for _, val := range cpu.Register {
		text += fmt.Sprintf(" %02X", val)
	}

	return
}

// Fetch reads the instruction at the PC.
//
// Both operand bytes are read whatever the opcode; the PC advance is
// decided by the opcode alone.
func (cpu *Cpu) Fetch() (code Code) {
	return Decode(cpu.Ram[:], cpu.Pc)
}

// Tick executes a single CPU instruction cycle.
//
// ErrHalt is returned once HLT is reached; the PC stays on the HLT.
func (cpu *Cpu) Tick() (err error) {
	code := cpu.Fetch()

	err = cpu.Execute(code)

	return
}

// Run ticks the CPU until it halts or faults. A halt is not an error.
func (cpu *Cpu) Run() (err error) {
	for {
		err = cpu.Tick()
		if errors.Is(err, ErrHalt) {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}

// Execute executes a single decoded instruction at the PC.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil && err != ErrHalt {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("cpu: %02x: %v", cpu.Pc, code)
	}

	info, ok := code.Op.Info()
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	operands := code.operands()
	for _, reg := range operands[:info.Registers] {
		if reg >= REGISTER_COUNT {
			err = ErrRegisterInvalid
			return
		}
	}

	next_pc := cpu.Pc + uint8(code.Size())

	switch code.Op {
	case OP_HLT:
		err = ErrHalt
		return
	case OP_LDI:
		cpu.Register[code.A] = code.B
	case OP_PRN:
		if cpu.Output == nil {
			err = errors.Join(ErrOpcodePrint, ErrOutputInvalid)
			return
		}
		err = cpu.Output.Print(int(code.A), cpu.Register[code.A])
		if err != nil {
			err = errors.Join(ErrOpcodePrint, err)
			return
		}
	case OP_ADD, OP_MUL, OP_CMP:
		alu, _ := code.Op.AluOp()
		var output uint8
		output, cpu.Fl, err = Alu(alu, cpu.Register[code.A], cpu.Register[code.B], cpu.Fl)
		if err != nil {
			return
		}
		cpu.Register[code.A] = output
	case OP_PUSH:
		cpu.Register[SP]--
		cpu.Ram[cpu.Register[SP]] = cpu.Register[code.A]
	case OP_POP:
		cpu.Register[code.A] = cpu.Ram[cpu.Register[SP]]
		cpu.Register[SP]++
	case OP_CALL:
		target := cpu.Register[code.A]
		cpu.Push(cpu.Pc + 2)
		next_pc = target
	case OP_RET:
		next_pc = cpu.Pop()
	case OP_JMP:
		next_pc = cpu.Register[code.A]
	case OP_JEQ:
		if (cpu.Fl & FL_EQ) != 0 {
			next_pc = cpu.Register[code.A]
			cpu.Fl = 0
		}
	case OP_JNE:
		if (cpu.Fl & FL_EQ) == 0 {
			next_pc = cpu.Register[code.A]
			cpu.Fl = 0
		}
	default:
		err = ErrOpcodeInvalid
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks += 1

	return
}
