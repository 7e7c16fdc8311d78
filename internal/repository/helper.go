package repository

import (
	"fmt"
	"strconv"
	"time"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// formatFloat renders a number with the shortest representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseFloats parses each named cell into the matching destination.
func parseFloats(cells []string, dst ...*float64) error {
	for i, p := range dst {
		v, err := strconv.ParseFloat(cells[i], 64)
		if err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
		*p = v
	}
	return nil
}
