package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cabins are laid out six seats per row, columns A through F. Seat labels
// are row number plus column letter, e.g. "12C".
const seatColumns = "ABCDEF"

// SeatLabels generates the full ordered seat map for a cabin of the given
// size: 1A, 1B, ... up to totalSeats labels.
func SeatLabels(totalSeats int) []string {
	if totalSeats <= 0 {
		return nil
	}
	seats := make([]string, 0, totalSeats)
	rows := (totalSeats + len(seatColumns) - 1) / len(seatColumns)
	for row := 1; row <= rows; row++ {
		for _, col := range seatColumns {
			if len(seats) == totalSeats {
				return seats
			}
			seats = append(seats, fmt.Sprintf("%d%c", row, col))
		}
	}
	return seats
}

// ValidSeat reports whether seatNo names a seat that exists in a cabin of
// totalSeats. The column letter is case-insensitive.
func ValidSeat(seatNo string, totalSeats int) bool {
	if len(seatNo) < 2 || totalSeats <= 0 {
		return false
	}
	row, err := strconv.Atoi(seatNo[:len(seatNo)-1])
	if err != nil {
		return false
	}
	col := strings.ToUpper(seatNo[len(seatNo)-1:])
	if !strings.Contains(seatColumns, col) {
		return false
	}
	maxRows := (totalSeats + len(seatColumns) - 1) / len(seatColumns)
	if row < 1 || row > maxRows {
		return false
	}
	// The last row may be partial.
	index := (row-1)*len(seatColumns) + strings.Index(seatColumns, col)
	return index < totalSeats
}

// NormalizeSeat upper-cases the column letter so "12c" and "12C" address
// the same seat.
func NormalizeSeat(seatNo string) string {
	return strings.ToUpper(strings.TrimSpace(seatNo))
}
