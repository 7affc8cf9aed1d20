// Package cpu implements the processor and assembler of the ls8 virtual machine.
//
// The CPU consists of a program counter (PC), eight 8-bit registers (R0-R7)
// of which R7 is the stack pointer, a flags register (FL) written by CMP, and
// 256 bytes of RAM holding both the program and the downward growing stack.
// Opcodes carry their operand count in their two high bits.
//
// The assembler provides a small assembly language for the ls8 instruction
// set, supporting labels, equates, raw data and compile-time expression
// evaluation.
package cpu
