package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMods(t *testing.T) {
	// GIVEN comma lists of modulation orders
	tests := []struct {
		name    string
		in      string
		want    []int
		wantErr bool
	}{
		{"all supported", "2,4,16", []int{2, 4, 16}, false},
		{"single", "4", []int{4}, false},
		{"spaces tolerated", " 2 , 16 ", []int{2, 16}, false},
		{"unsupported order", "8", nil, true},
		{"not a number", "qpsk", nil, true},
		{"empty", "", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// WHEN parsing the list
			got, err := parseMods(tc.in)
			// THEN supported orders parse and anything else is rejected
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDemoSNRs(t *testing.T) {
	got, err := parseDemoSNRs("5, 10,15.5")
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10, 15.5}, got)

	got, err = parseDemoSNRs("")
	require.NoError(t, err)
	assert.Nil(t, got, "empty list means no demos")

	_, err = parseDemoSNRs("5,x")
	assert.Error(t, err)
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []int64
		wantErr bool
	}{
		{"ascending list", "1000,5000,20000", []int64{1000, 5000, 20000}, false},
		{"single", "50000", []int64{50000}, false},
		{"spaces tolerated", " 1000 , 2000 ", []int64{1000, 2000}, false},
		{"zero size", "1000,0", nil, true},
		{"negative size", "-5", nil, true},
		{"not a number", "big", nil, true},
		{"empty", "", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSizes(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSeedFromFlag(t *testing.T) {
	// Negative flag values mean time-based randomness.
	s := seedFromFlag(-1)
	assert.False(t, s.Valid)

	// Zero and positive values are deterministic seeds.
	s = seedFromFlag(0)
	assert.True(t, s.Valid)
	assert.Equal(t, uint64(0), s.Value)

	s = seedFromFlag(42)
	assert.True(t, s.Valid)
	assert.Equal(t, uint64(42), s.Value)
}

func TestSubcommandsRegistered(t *testing.T) {
	// All four subcommands must hang off the root command.
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"sweep", "thresholds", "bench", "decide"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}
