package transform

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate marks a date cell that matched none of the accepted formats.
var ErrInvalidDate = errors.New("invalid date")

const canonicalLayout = "2006-01-02"

// sheetEpoch is day zero of spreadsheet serial dates (1899-12-30, the classic
// Lotus epoch with its leap-year quirk baked into the offset).
var sheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	monthFirst4 = regexp.MustCompile(`^([01]?\d)[./-]([0-3]?\d)[./-](\d{4})$`)
	dayFirst4   = regexp.MustCompile(`^([0-3]?\d)[./-]([01]?\d)[./-](\d{4})$`)
	monthFirst2 = regexp.MustCompile(`^([01]?\d)[./-]([0-3]?\d)[./-](\d{2})$`)
	dayFirst2   = regexp.MustCompile(`^([0-3]?\d)[./-]([01]?\d)[./-](\d{2})$`)

	// dayFirstAny is the expense-ledger convention: always day first, with
	// 2-to-4-digit years (typos included).
	dayFirstAny = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2,5})$`)
)

// NormalizeDate converts a heterogeneous date cell into canonical YYYY-MM-DD.
// The revenue and expense sheets use opposite day/month ordering, so string
// input is tried month-first and then day-first; callers needing a strict
// day-first-only reading use NormalizeDayFirst instead.
func NormalizeDate(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", fmt.Errorf("%w: empty cell", ErrInvalidDate)
	case time.Time:
		return v.UTC().Format(canonicalLayout), nil
	case float64:
		return normalizeNumeric(v)
	case int:
		return normalizeNumeric(float64(v))
	case int64:
		return normalizeNumeric(float64(v))
	case string:
		return normalizeString(v)
	default:
		return "", fmt.Errorf("%w: unsupported value %v", ErrInvalidDate, value)
	}
}

// normalizeNumeric accepts only plausible numeric date encodings. Small
// integers (day counters, running totals that leaked into the date column)
// must not silently become dates.
func normalizeNumeric(v float64) (string, error) {
	switch {
	case v > 10000 && v < 100000:
		// Spreadsheet serial day count.
		days := time.Duration(v * 24 * float64(time.Hour))
		return sheetEpoch.Add(days).UTC().Format(canonicalLayout), nil
	case v > 1e12:
		return time.UnixMilli(int64(v)).UTC().Format(canonicalLayout), nil
	case v > 1e9 && v < 1e12:
		return time.Unix(int64(v), 0).UTC().Format(canonicalLayout), nil
	}
	return "", fmt.Errorf("%w: numeric value %v", ErrInvalidDate, v)
}

func normalizeString(value string) (string, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalidDate)
	}

	if d, err := time.Parse(canonicalLayout, s); err == nil {
		return d.Format(canonicalLayout), nil
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d.UTC().Format(canonicalLayout), nil
	}

	// Month-first with 4-digit year: the revenue-sheet convention.
	if m := monthFirst4.FindStringSubmatch(s); m != nil {
		if out, ok := composeDate(atoi(m[3]), atoi(m[1]), atoi(m[2])); ok {
			return out, nil
		}
	}
	// Day-first with 4-digit year: the expense-sheet convention.
	if m := dayFirst4.FindStringSubmatch(s); m != nil {
		day, month := atoi(m[1]), atoi(m[2])
		if day >= 1 && day <= 31 && month >= 1 && month <= 12 {
			if out, ok := composeDate(atoi(m[3]), month, day); ok {
				return out, nil
			}
		}
	}
	// 2-digit years are assumed to be in the 2000s.
	if m := monthFirst2.FindStringSubmatch(s); m != nil {
		if out, ok := composeDate(2000+atoi(m[3]), atoi(m[1]), atoi(m[2])); ok {
			return out, nil
		}
	}
	if m := dayFirst2.FindStringSubmatch(s); m != nil {
		day, month := atoi(m[1]), atoi(m[2])
		if day >= 1 && day <= 31 && month >= 1 && month <= 12 {
			if out, ok := composeDate(2000+atoi(m[3]), month, day); ok {
				return out, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// NormalizeDayFirst parses a strictly day-first date string, the convention of
// the expense and breakfast ledgers. Years with 2 digits are promoted into
// the 2000s; years mangled by known data-entry mistakes go through
// repairSuspiciousYear before the row is given up on.
func NormalizeDayFirst(value string) (string, error) {
	m := dayFirstAny.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	day, month, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if len(m[3]) == 2 {
		year += 2000
	}
	if year < 2000 || year > 2030 {
		repaired, ok := repairSuspiciousYear(year)
		if !ok {
			return "", fmt.Errorf("%w: %q (year out of range)", ErrInvalidDate, value)
		}
		year = repaired
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	out, ok := composeDate(year, month, day)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return out, nil
}

// repairSuspiciousYear remaps year values produced by known typo classes into
// the accepted [2020, 2030] window:
//
//	25    -> 2025 (missing century)
//	5122  -> 2022 (transposed digits; the last two survive)
//	20025 -> 2025 (stray digit; the last two survive)
//	20250 -> 2025 (stray trailing zero)
//
// Returns false when no remapping lands inside the window.
func repairSuspiciousYear(year int) (int, bool) {
	inWindow := func(y int) bool { return y >= 2020 && y <= 2030 }
	switch {
	case year >= 0 && year < 100:
		if c := 2000 + year; inWindow(c) {
			return c, true
		}
	case year >= 100 && year < 1000:
		if c := 2000 + year%100; inWindow(c) {
			return c, true
		}
	case year > 1000 && year < 10000:
		if c := 2000 + year%100; inWindow(c) {
			return c, true
		}
	case year >= 10000 && year < 100000:
		if c := 2000 + year%100; inWindow(c) {
			return c, true
		}
		if year%10 == 0 {
			if c := year / 10; inWindow(c) {
				return c, true
			}
		}
	}
	return 0, false
}

// composeDate builds the canonical form and rejects values that do not name a
// real calendar date (time.Date silently normalizes overflow, so the
// components are checked on the way back out).
func composeDate(year, month, day int) (string, bool) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return "", false
	}
	return d.Format(canonicalLayout), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
