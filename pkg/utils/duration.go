package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidDuration = errors.New("invalid duration")

var (
	hoursMinutesRe = regexp.MustCompile(`(?i)(\d+)\s*h\s*(\d+)?\s*m?`)
	clockRe        = regexp.MustCompile(`(\d+):(\d+)`)
	leadingMinRe   = regexp.MustCompile(`^\s*(\d+)`)
)

// ParseDuration reads "2h 30m", "3h", "2:30" or a bare minute count such as
// "150" or "45m", and returns minutes.
func ParseDuration(s string) (int, error) {
	if m := hoursMinutesRe.FindStringSubmatch(s); m != nil {
		return atoi(m[1])*60 + atoi(m[2]), nil
	}
	if m := clockRe.FindStringSubmatch(s); m != nil {
		return atoi(m[1])*60 + atoi(m[2]), nil
	}
	if m := leadingMinRe.FindStringSubmatch(s); m != nil {
		return atoi(m[1]), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
}

// atoi is only fed regexp digit groups; an empty group is zero.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// FormatDuration renders minutes as "45m", "2h" or "2h 30m".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatDurationLong renders minutes as "1 hour 5 minutes".
func FormatDurationLong(minutes int) string {
	h, m := minutes/60, minutes%60
	var parts []string
	if h > 0 {
		parts = append(parts, plural(h, "hour"))
	}
	if m > 0 || len(parts) == 0 {
		parts = append(parts, plural(m, "minute"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
