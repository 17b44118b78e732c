package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBenchmarkEnabled(t *testing.T) {

	tests := []struct {
		show     bool
		delay    int
		expected bool
	}{
		{false, 0, true},
		{false, 1, true},
		{true, 1, true},
		{true, 0, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, benchmarkEnabled(tc.show, tc.delay),
			"show=%v delay=%d", tc.show, tc.delay)
	}
}

func TestLoadSeedBox(t *testing.T) {

	seed, mask, err := loadSeed("", "3, 4,5,6", 127)
	assert.NoError(t, err)
	assert.Nil(t, mask)
	assert.NotNil(t, seed)

	_, _, err = loadSeed("", "3,4", 127)
	assert.Error(t, err)
}
