package extract

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// ParseFlexibleDate parses a numeric statement date that may be either
// DD/MM/YYYY or MM/DD/YYYY. When either positional value exceeds 12 the
// layout is unambiguous. When both are 12 or less the correct interpretation
// is not determinable from the data, so the parse defaults to month-first
// and reports ambiguous=true; callers log the ambiguity rather than hide it.
func ParseFlexibleDate(raw string) (parsed time.Time, ambiguous bool, err error) {
	s := strings.TrimSpace(raw)
	sep := "/"
	if strings.Contains(s, "-") && !strings.Contains(s, "/") {
		sep = "-"
	}

	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return time.Time{}, false, fmt.Errorf("invalid date %q", raw)
	}

	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q", raw)
	}
	if year < 100 {
		year += 2000
	}

	month, day := first, second
	switch {
	case first > 12 && second > 12:
		return time.Time{}, false, fmt.Errorf("invalid date %q", raw)
	case first > 12:
		// First value cannot be a month; the layout is day-first.
		month, day = second, first
	case second > 12:
		// Second value cannot be a day position in day-first; month-first.
	default:
		ambiguous = true
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false, fmt.Errorf("invalid date %q", raw)
	}

	parsed = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if parsed.Day() != day {
		return time.Time{}, false, fmt.Errorf("invalid date %q", raw)
	}
	return parsed, ambiguous, nil
}

// logAmbiguousDate records a month-first default that could not be verified.
func logAmbiguousDate(source string, raw string) {
	slog.Warn("Ambiguous numeric date, defaulting to month-first",
		"source", source,
		"date", raw)
}
