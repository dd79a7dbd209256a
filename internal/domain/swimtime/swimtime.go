// Package swimtime parses and formats swim result times.
package swimtime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const secondsPerMinute = 60

// ErrUnparsableTime is returned when a result string cannot be read as seconds.
var ErrUnparsableTime = errors.New("unparsable time")

// Clean trims whitespace and any trailing marker letters (e.g. the "Y" yard tag).
func Clean(raw string) string {
	t := strings.TrimSpace(raw)
	t = strings.TrimRightFunc(t, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsSpace(r)
	})
	return strings.TrimSpace(t)
}

// ParseSeconds converts "M:SS.ss" or "SS.ss" into total seconds.
// A failure is always reported as an error wrapping ErrUnparsableTime, never as zero.
func ParseSeconds(raw string) (float64, error) {
	t := Clean(raw)
	if t == "" {
		return 0, fmt.Errorf("%w: empty value", ErrUnparsableTime)
	}

	var secs float64
	if strings.Contains(t, ":") {
		parts := strings.Split(t, ":")
		if len(parts) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, raw)
		}
		m, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, raw)
		}
		s, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, raw)
		}
		if m < 0 || s < 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, raw)
		}
		secs = m*secondsPerMinute + s
	} else {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, raw)
		}
		secs = v
	}

	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, raw)
	}
	return secs, nil
}

// FormatDrop renders a single-event drop as "-X.XX", or "0.00s" when the drop is not positive.
func FormatDrop(drop float64) string {
	if drop <= 0 {
		return "0.00s"
	}
	return fmt.Sprintf("-%.2f", drop)
}

// FormatTotalDrop renders a cumulative drop as "-X.XXs".
func FormatTotalDrop(drop float64) string {
	return fmt.Sprintf("-%.2fs", drop)
}
