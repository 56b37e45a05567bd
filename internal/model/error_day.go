package model

import (
	"fmt"
	"time"
)

const (
	// SuccessStatus is the only status line that is not counted as an error.
	SuccessStatus = "200 OK"

	// ErrorThresholdPercent is the exclusive lower bound, in percent, of the
	// error rate of a day included in the error days report.
	ErrorThresholdPercent = 1

	// DayLayout is the layout used to exchange calendar dates with the database.
	DayLayout = "2006-01-02"

	// LongDateLayout renders a date as "July 29, 2016".
	LongDateLayout = "January 2, 2006"
)

// ErrorDay holds the request totals of a single calendar day.
type ErrorDay struct {
	// Date is the calendar day at midnight UTC.
	Date time.Time `json:"date"`

	// Requests is the number of log entries recorded on the day.
	Requests int64 `json:"requests"`

	// Errors is the number of those entries whose status is not SuccessStatus.
	Errors int64 `json:"errors"`
}

// NewErrorDay builds an ErrorDay from a database date string in DayLayout.
func NewErrorDay(day string, requests, errors int64) (ErrorDay, error) {
	date, err := time.Parse(DayLayout, day)
	if err != nil {
		return ErrorDay{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return ErrorDay{Date: date, Requests: requests, Errors: errors}, nil
}

// Percent returns the error rate in percent.
// Multiplying before dividing keeps whole percentages exact (2 of 100 is 2, not 2.0000000000000004).
func (d ErrorDay) Percent() float64 {
	if d.Requests == 0 {
		return 0
	}
	return float64(d.Errors) * 100 / float64(d.Requests)
}

// ExceedsThreshold reports whether the error rate is strictly greater than
// ErrorThresholdPercent. The comparison is done on integers, so a day at
// exactly the threshold is never included because of rounding.
func (d ErrorDay) ExceedsThreshold() bool {
	return d.Errors*100 > d.Requests*ErrorThresholdPercent
}

// LongDate formats the day as a long-form calendar string, e.g. "July 29, 2016".
func (d ErrorDay) LongDate() string {
	return d.Date.Format(LongDateLayout)
}
