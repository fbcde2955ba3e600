package booking

import (
	"fmt"
	"time"
)

const (
	minDaysAhead = 1
	maxDaysAhead = 88

	maxNotesLength           = 1000
	maxRejectionReasonLength = 500
)

// parseBookingWindow parses and validates the requested window. The window
// must be chronologically valid, strictly in the future, and between 1 and
// 88 days ahead of now.
func parseBookingWindow(startRaw, endRaw string, now time.Time) (time.Time, time.Time, []string) {
	var errs []string

	start, startErr := time.Parse(time.RFC3339, startRaw)
	end, endErr := time.Parse(time.RFC3339, endRaw)
	if startErr != nil || endErr != nil {
		return time.Time{}, time.Time{}, []string{"invalid booking date format"}
	}
	start = start.UTC()
	end = end.UTC()

	if !end.After(start) {
		errs = append(errs, "booking end time must be after start time")
	}
	if !start.After(now) {
		errs = append(errs, "booking must be scheduled for a future date")
	}

	minDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, minDaysAhead)
	if start.Before(minDate) {
		errs = append(errs, fmt.Sprintf("booking must be at least %d day(s) in advance", minDaysAhead))
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC).AddDate(0, 0, maxDaysAhead)
	if start.After(maxDate) {
		errs = append(errs, fmt.Sprintf("booking cannot be more than %d days in advance", maxDaysAhead))
	}

	return start, end, errs
}
