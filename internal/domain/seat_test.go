package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatLabels(t *testing.T) {
	assert.Nil(t, SeatLabels(0))
	assert.Equal(t, []string{"1A", "1B", "1C", "1D", "1E", "1F"}, SeatLabels(6))
	assert.Equal(t, []string{"1A", "1B", "1C", "1D", "1E", "1F", "2A", "2B"}, SeatLabels(8))

	labels := SeatLabels(180)
	assert.Len(t, labels, 180)
	assert.Equal(t, "1A", labels[0])
	assert.Equal(t, "30F", labels[179])
}

func TestValidSeat(t *testing.T) {
	testCases := []struct {
		seatNo string
		total  int
		valid  bool
	}{
		{"1A", 180, true},
		{"30F", 180, true},
		{"12c", 180, true},
		{"31A", 180, false},
		{"0A", 180, false},
		{"12G", 180, false},
		{"2C", 8, false}, // partial last row: only 2A/2B exist
		{"2B", 8, true},
		{"A", 180, false},
		{"", 180, false},
		{"AA", 180, false},
		{"1A", 0, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.valid, ValidSeat(tc.seatNo, tc.total), "seat %q total %d", tc.seatNo, tc.total)
	}
}

func TestNormalizeSeat(t *testing.T) {
	assert.Equal(t, "12C", NormalizeSeat(" 12c "))
	assert.Equal(t, "1A", NormalizeSeat("1a"))
}
