// Package period resolves named search periods into inclusive calendar-date
// windows used to filter transactions.
package period

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidFilter = errors.New("wrong filter")

// Window is an inclusive [Start, End] calendar-date range. Both bounds are
// date-only values (midnight UTC).
type Window struct {
	Start time.Time
	End   time.Time
}

const (
	Day      = "DAY"
	Week     = "WEEK"
	Month    = "MONTH"
	Year     = "YEAR"
	Interval = "INTERVAL"
)

// resolvers maps each period token to its window computation. A table keeps
// every branch independently testable instead of one conditional chain.
var resolvers = map[string]func(today time.Time, start, end *time.Time) (Window, error){
	Day:      resolveDay,
	Week:     resolveWeek,
	Month:    resolveMonth,
	Year:     resolveYear,
	Interval: resolveInterval,
}

// Resolve maps a case-insensitive period token and optional explicit bounds
// to a concrete window. The caller supplies today so resolution never reads
// the wall clock. Explicit bounds are only consulted for INTERVAL.
func Resolve(token string, start, end *time.Time, today time.Time) (Window, error) {
	resolve, ok := resolvers[strings.ToUpper(token)]
	if !ok {
		return Window{}, ErrInvalidFilter
	}
	return resolve(truncateToDate(today), start, end)
}

func resolveDay(today time.Time, _, _ *time.Time) (Window, error) {
	return Window{Start: today, End: today}, nil
}

func resolveWeek(today time.Time, _, _ *time.Time) (Window, error) {
	// ISO weeks start on Monday; Go's Weekday starts on Sunday.
	offset := (int(today.Weekday()) + 6) % 7
	return Window{Start: today.AddDate(0, 0, -offset), End: today}, nil
}

func resolveMonth(today time.Time, _, _ *time.Time) (Window, error) {
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: today}, nil
}

func resolveYear(today time.Time, _, _ *time.Time) (Window, error) {
	start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: today}, nil
}

func resolveInterval(today time.Time, start, end *time.Time) (Window, error) {
	if start == nil || end == nil {
		return Window{}, ErrInvalidFilter
	}
	from := truncateToDate(*start)
	to := truncateToDate(*end)
	if from.After(to) || to.After(today) {
		return Window{}, ErrInvalidFilter
	}
	return Window{Start: from, End: to}, nil
}

func truncateToDate(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
