package utils

import (
	"fmt"
	"time"
)

// TimeLayout is the wire format for screening start times, read in the process-local zone.
const TimeLayout = "2006-01-02 15:04"

// ParseScreeningTime parses a start time and truncates it to the minute.
func ParseScreeningTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected format %s: %w", value, TimeLayout, err)
	}
	return t.Truncate(time.Minute), nil
}

func FormatScreeningTime(t time.Time) string {
	return t.In(time.Local).Format(TimeLayout)
}
