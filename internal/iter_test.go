package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat2(t *testing.T) {
	assert := assert.New(t)

	first := slices.All([]string{"a", "b"})
	second := slices.All([]string{"c"})

	var keys []int
	var values []string
	for key, value := range Concat2(first, second) {
		keys = append(keys, key)
		values = append(values, value)
	}
	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"a", "b", "c"}, values)

	// Later sequences win when collected.
	merged := maps.Collect(Concat2(maps.All(map[string]int{"x": 1, "y": 2}), maps.All(map[string]int{"x": 3})))
	assert.Equal(map[string]int{"x": 3, "y": 2}, merged)

	count := 0
	for range Concat2(first, second) {
		count++
		break
	}
	assert.Equal(1, count)

	assert.Empty(maps.Collect(Concat2[string, int]()))
}
