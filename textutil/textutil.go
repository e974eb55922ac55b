package textutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotANumber = errors.New("not a number")
	ErrNegative   = errors.New("must not be negative")
	ErrTooLarge   = errors.New("too large")
)

const (
	millisPerSecond = 1000
	millisPerMinute = 60 * millisPerSecond
	millisPerHour   = 60 * millisPerMinute
)

// ParseAmount parses a chip amount typed into a field.  A blank field is
// zero, not an error.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrNotANumber)
	}
	if f < 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrNegative)
	}
	return f, nil
}

// ParseWhole is ParseAmount for whole numbers, such as hours and minutes.
func ParseWhole(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrNotANumber)
	}
	if n < 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrNegative)
	}
	return n, nil
}

// SplitMillis breaks a millisecond count into whole hours, minutes, and
// seconds.  Anything under a second is dropped.
func SplitMillis(millis int64) (hours, minutes, seconds int64) {
	if millis < 0 {
		millis = 0
	}
	hours = millis / millisPerHour
	millis -= hours * millisPerHour
	minutes = millis / millisPerMinute
	millis -= minutes * millisPerMinute
	seconds = millis / millisPerSecond
	return hours, minutes, seconds
}

// FormatClock renders milliseconds as HH:MM:SS.  Hours don't wrap at 24.
func FormatClock(millis int64) string {
	h, m, s := SplitMillis(millis)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// JoinClock adds up non-negative hours, minutes, and seconds, failing with
// ErrTooLarge rather than wrapping past what a time.Duration holds.
func JoinClock(hours, minutes, seconds int64) (time.Duration, error) {
	const maxSeconds = math.MaxInt64 / int64(time.Second)
	tooLarge := func() (time.Duration, error) {
		return 0, fmt.Errorf("%d:%02d:%02d: %w", hours, minutes, seconds, ErrTooLarge)
	}
	if hours > maxSeconds/3600 {
		return tooLarge()
	}
	total := hours * 3600
	if minutes > (maxSeconds-total)/60 {
		return tooLarge()
	}
	total += minutes * 60
	if seconds > maxSeconds-total {
		return tooLarge()
	}
	return time.Duration(total+seconds) * time.Second, nil
}

// Parse MM:SS or HH:MM:SS format into time.Duration.
func ParseDuration(s string) (time.Duration, error) {
	var hh, mm, ss string
	parts := strings.Split(s, ":")
	if len(parts) == 3 {
		hh, mm, ss = parts[0], parts[1], parts[2]
	} else if len(parts) == 2 {
		hh, mm, ss = "0", parts[0], parts[1]
	} else {
		return 0, errors.New("invalid HH:MM:SS format")
	}

	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, errors.New("can't parse hours")
	}
	mins, err := strconv.Atoi(mm)
	if err != nil {
		return 0, errors.New("can't parse minutes")
	}
	secs, err := strconv.Atoi(ss)
	if err != nil {
		return 0, errors.New("can't parse seconds")
	}
	if hours < 0 || mins < 0 || secs < 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrNegative)
	}

	return JoinClock(int64(hours), int64(mins), int64(secs))
}
