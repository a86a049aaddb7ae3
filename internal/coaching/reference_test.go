package coaching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDescribeRPE verifies the scale bounds.
func TestDescribeRPE(t *testing.T) {
	d, ok := DescribeRPE(8)
	assert.True(t, ok)
	assert.Equal(t, "Extremely hard - Extremely difficult", d)

	_, ok = DescribeRPE(0)
	assert.False(t, ok)
	_, ok = DescribeRPE(11)
	assert.False(t, ok)
}

// TestDescribeTempo verifies table entries and generated explanations.
func TestDescribeTempo(t *testing.T) {
	d, ok := DescribeTempo("HOLD")
	assert.True(t, ok)
	assert.Equal(t, "Hold position for specified duration", d)

	d, ok = DescribeTempo("3-1-2")
	assert.True(t, ok)
	assert.Equal(t, "3 seconds down, 1 second pause, 2 seconds up", d)

	d, ok = DescribeTempo("2-0-1")
	assert.True(t, ok)
	assert.Equal(t, "2 seconds down, no pause, 1 second up", d)

	_, ok = DescribeTempo("slow")
	assert.False(t, ok)
}

// TestEveryEmittedTempoIsDescribed verifies all engine tempos have an explanation.
func TestEveryEmittedTempoIsDescribed(t *testing.T) {
	for _, r := range tempoOverrides {
		_, ok := DescribeTempo(r.tempo)
		assert.True(t, ok, r.tempo)
	}
	for g, gt := range goalTempos {
		for _, tempo := range []string{gt.Compound, gt.Isolation} {
			_, ok := DescribeTempo(tempo)
			assert.True(t, ok, "%s %s", g, tempo)
		}
	}
}
