package amc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_ExactBoundaryBehavior(t *testing.T) {
	// Boundary values belong to the higher tier (half-open intervals).
	const t1, t2 = 10.0, 18.0
	tests := []struct {
		estSnrDB float64
		want     Choice
	}{
		{9.9, ChoiceNone},
		{10.0, ChoiceQPSK},
		{15.0, ChoiceQPSK},
		{17.999, ChoiceQPSK},
		{18.0, Choice16QAM},
		{25.0, Choice16QAM},
		{-40.0, ChoiceNone},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Decide(tc.estSnrDB, t1, t2), "estimate %.3f dB", tc.estSnrDB)
	}
}

func TestDecide_PairDelegates(t *testing.T) {
	pair := ThresholdPair{QPSKdB: 10, QAM16dB: 18}
	assert.Equal(t, ChoiceQPSK, pair.Decide(12.0))
	assert.Equal(t, Choice16QAM, pair.Decide(18.0))
}

func TestDecide_NoHysteresis(t *testing.T) {
	// Adjacent calls with estimates straddling a threshold flip the decision;
	// the function carries no history.
	pair := ThresholdPair{QPSKdB: 10, QAM16dB: 18}
	assert.Equal(t, ChoiceNone, pair.Decide(9.99))
	assert.Equal(t, ChoiceQPSK, pair.Decide(10.01))
	assert.Equal(t, ChoiceNone, pair.Decide(9.99))
}

func TestChoice_StringAndOrder(t *testing.T) {
	assert.Equal(t, "NONE", ChoiceNone.String())
	assert.Equal(t, "QPSK", ChoiceQPSK.String())
	assert.Equal(t, "16QAM", Choice16QAM.String())
	assert.Equal(t, 0, ChoiceNone.Order())
	assert.Equal(t, 4, ChoiceQPSK.Order())
	assert.Equal(t, 16, Choice16QAM.Order())
}
