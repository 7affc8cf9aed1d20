package cpu

import (
	"fmt"
	"strings"
)

// Opcode is an instruction byte.
//
// Bits 7-6 are the operand count, bit 5 is set for ALU operations and bit 4
// is set for instructions that load the PC themselves.
type Opcode uint8

const (
	OP_HLT  = Opcode(0b00000001) // Halt the machine.
	OP_LDI  = Opcode(0b10000010) // reg <- immediate
	OP_PRN  = Opcode(0b01000111) // Print reg.
	OP_ADD  = Opcode(0b10100000) // regA <- regA + regB
	OP_MUL  = Opcode(0b10100010) // regA <- regA * regB
	OP_PUSH = Opcode(0b01000101) // Push reg.
	OP_POP  = Opcode(0b01000110) // Pop into reg.
	OP_CALL = Opcode(0b01010000) // Push return address, jump to reg.
	OP_RET  = Opcode(0b00010001) // Pop into PC.
	OP_CMP  = Opcode(0b10100111) // FL <- compare regA regB
	OP_JMP  = Opcode(0b01010100) // PC <- reg
	OP_JEQ  = Opcode(0b01010101) // PC <- reg if FL has FL_EQ
	OP_JNE  = Opcode(0b01010110) // PC <- reg if FL lacks FL_EQ
)

const (
	OPCODE_ALU    = Opcode(0b00100000) // ALU operation marker.
	OPCODE_SET_PC = Opcode(0b00010000) // Instruction sets the PC.
)

// OpcodeInfo holds the static description of an opcode.
type OpcodeInfo struct {
	Name      string // Assembler mnemonic.
	Registers int    // How many of the operands name registers.
}

// opcodeTable is the closed set of instructions the CPU executes.
var opcodeTable = map[Opcode]OpcodeInfo{
	OP_HLT:  {"HLT", 0},
	OP_LDI:  {"LDI", 1},
	OP_PRN:  {"PRN", 1},
	OP_ADD:  {"ADD", 2},
	OP_MUL:  {"MUL", 2},
	OP_PUSH: {"PUSH", 1},
	OP_POP:  {"POP", 1},
	OP_CALL: {"CALL", 1},
	OP_RET:  {"RET", 0},
	OP_CMP:  {"CMP", 2},
	OP_JMP:  {"JMP", 1},
	OP_JEQ:  {"JEQ", 1},
	OP_JNE:  {"JNE", 1},
}

// mnemonicTable is the reverse of opcodeTable.
var mnemonicTable = func() map[string]Opcode {
	table := make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		table[info.Name] = op
	}
	return table
}()

// LookupOpcode finds the opcode for a mnemonic, ignoring case.
func LookupOpcode(name string) (op Opcode, ok bool) {
	op, ok = mnemonicTable[strings.ToUpper(name)]
	return
}

// Info returns the description of an opcode, and false if the opcode is
// not part of the instruction set.
func (op Opcode) Info() (info OpcodeInfo, ok bool) {
	info, ok = opcodeTable[op]
	if !ok {
		info = OpcodeInfo{Name: fmt.Sprintf("UNKNOWN_%02X", uint8(op))}
	}
	return
}

// Valid is true for opcodes in the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

// Operands returns the number of operand bytes following the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// IsAlu is true when the opcode is executed by the ALU.
func (op Opcode) IsAlu() bool {
	return (op & OPCODE_ALU) != 0
}

// SetsPc is true when the opcode may load the PC.
func (op Opcode) SetsPc() bool {
	return (op & OPCODE_SET_PC) != 0
}

// AluOp returns the ALU operation an opcode performs.
func (op Opcode) AluOp() (alu AluOp, ok bool) {
	ok = true
	switch op {
	case OP_ADD:
		alu = ALU_OP_ADD
	case OP_MUL:
		alu = ALU_OP_MUL
	case OP_CMP:
		alu = ALU_OP_CMP
	default:
		ok = false
	}
	return
}

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	info, _ := op.Info()
	return info.Name
}

// Code is a fetched instruction: the opcode and the two bytes that follow it.
type Code struct {
	Op Opcode
	A  uint8
	B  uint8
}

// Size returns the number of bytes the instruction occupies.
func (code Code) Size() int {
	return 1 + code.Op.Operands()
}

// operands returns the operand bytes that are fetched for the instruction.
// Opcodes claiming three operands are not encodable, and only see two.
func (code Code) operands() []uint8 {
	return []uint8{code.A, code.B}[:min(code.Op.Operands(), 2)]
}

// Bytes returns the encoding of the instruction.
func (code Code) Bytes() []byte {
	return append([]byte{uint8(code.Op)}, code.operands()...)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	info, _ := code.Op.Info()

	operands := code.operands()
	args := make([]string, len(operands))
	for n, value := range operands {
		if n < info.Registers {
			args[n] = fmt.Sprintf("R%d", value)
		} else {
			args[n] = fmt.Sprintf("%d", value)
		}
	}

	if len(args) == 0 {
		return info.Name
	}

	return info.Name + " " + strings.Join(args, ", ")
}

// Decode reads the instruction at addr of mem. Addresses wrap at 256.
func Decode(mem []byte, addr uint8) (code Code) {
	at := func(addr uint8) uint8 {
		if int(addr) < len(mem) {
			return mem[addr]
		}
		return 0
	}

	return Code{Op: Opcode(at(addr)), A: at(addr + 1), B: at(addr + 2)}
}

// Disassemble renders the instruction at addr of mem, returning its text
// and size in bytes.
func Disassemble(mem []byte, addr uint8) (text string, size int) {
	code := Decode(mem, addr)
	return code.String(), code.Size()
}
