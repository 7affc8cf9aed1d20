package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Print(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	assert.NoError(tape.Print(0, 72))
	assert.NoError(tape.Print(3, 0))
	assert.NoError(tape.Print(6, 255))

	assert.Equal("72\n0\n255\n", output.String())
	assert.Equal(3, tape.Lines)
}

func TestTape_Print_Labelled(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output, Labelled: true}

	assert.NoError(tape.Print(0, 72))

	assert.Equal("Register: 0, Value: 72\n", output.String())
}

type brokenWriter struct{}

var errBroken = errors.New("broken")

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errBroken
}

func TestTape_Print_Error(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Output: brokenWriter{}}

	assert.ErrorIs(tape.Print(1, 2), errBroken)
	assert.Equal(0, tape.Lines)
}
