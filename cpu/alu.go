package cpu

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_MUL = AluOp(1) // mul
	ALU_OP_CMP = AluOp(2) // cmp
)

// Flags register bits, as set by ALU_OP_CMP.
const (
	FL_EQ = uint8(0b001) // Equal.
	FL_GT = uint8(0b010) // Greater than.
	FL_LT = uint8(0b100) // Less than.
)

// Alu performs op on the two register values a and b.
//
// The result is destined for the register of a. Only ALU_OP_CMP alters the
// flags; it clears them and sets exactly one of FL_EQ, FL_GT and FL_LT from
// the signed comparison of a and b.
func Alu(op AluOp, a, b uint8, flags uint8) (output uint8, fl uint8, err error) {
	output = a
	fl = flags

	switch op {
	case ALU_OP_ADD:
		output = a + b
	case ALU_OP_MUL:
		output = a * b
	case ALU_OP_CMP:
		// Treat as signed.
		sa := int8(a)
		sb := int8(b)
		switch {
		case sa == sb:
			fl = FL_EQ
		case sa < sb:
			fl = FL_LT
		default:
			fl = FL_GT
		}
	default:
		err = ErrAluUnsupported
	}

	return
}
