package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	assert.True(cpu.Empty())

	cpu.Push(0x12)
	assert.False(cpu.Empty())
	assert.Equal(1, cpu.Depth())
	assert.Equal(uint8(0xf3), cpu.Register[SP])
	assert.Equal(uint8(0x12), cpu.Ram[0xf3])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	cpu.Push(0x12)
	cpu.Push(0xab)

	assert.Equal(uint8(0xab), cpu.Pop())
	assert.Equal(1, cpu.Depth())

	assert.Equal(uint8(0x12), cpu.Pop())
	assert.Equal(0, cpu.Depth())
	assert.Equal(STACK_TOP, cpu.Register[SP])
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	cpu.Push(0x12)
	cpu.Push(0xab)

	assert.Equal(uint8(0xab), cpu.Peek())
	assert.Equal(2, cpu.Depth())
}

func TestStack_Underflow(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	cpu.Ram[STACK_TOP] = 0x77

	// Nothing stops a pop past the top.
	assert.Equal(uint8(0x77), cpu.Pop())
	assert.Equal(-1, cpu.Depth())
	assert.True(cpu.Empty())
}

func TestStack_Wrap(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	cpu.Register[SP] = 0

	cpu.Push(0x55)
	assert.Equal(uint8(0xff), cpu.Register[SP])
	assert.Equal(uint8(0x55), cpu.Ram[0xff])

	assert.Equal(uint8(0x55), cpu.Pop())
	assert.Equal(uint8(0), cpu.Register[SP])
}

func TestStack_Program(t *testing.T) {
	assert := assert.New(t)

	// The stack shares RAM with the program.
	cpu := NewCpu(nil)
	cpu.Register[SP] = 3
	assert.NoError(cpu.Load([]byte{0x82, 0x00, 0x08, 0x01}))

	cpu.Push(uint8(OP_HLT))
	assert.Equal(uint8(OP_HLT), cpu.Ram[2])
}
