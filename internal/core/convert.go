package core

// convert.go provides best-effort parsing of log record fields.
//
// These functions handle the messy reality of hand-maintained inventory logs:
//   - Several date layouts (ISO, dotted, day-first with slashes or dashes)
//   - Times with or without seconds
//   - Memory sizes with or without a unit suffix
//
// Every parser reports failure through its ok result instead of an error. The
// Field* helpers wrap a parser and fall back to the raw text, which is how the
// record builder consumes them.

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Date layouts tried in order. Single-digit month/day layouts also accept
// zero-padded input.
var (
	dateLayouts = []string{
		"2006-1-2",
		"2006.1.2",
		"2/1/2006",
		"2-1-2006",
		"2006/1/2",
	}
	// isoFallbackLayouts are the strict ISO 8601 calendar forms tried last.
	isoFallbackLayouts = []string{
		isoDateLayout,
		"20060102",
	}
)

// ParseDate parses s using the supported layouts.
// Returns ok=false for empty or unrecognized input.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t.Year(), t.Month(), t.Day()), true
		}
	}
	for _, layout := range isoFallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t.Year(), t.Month(), t.Day()), true
		}
	}

	return Date{}, false
}

// ParseLoginDate parses the leading field of a record, which must be three
// dot-separated integers (YYYY.MM.DD) forming a valid calendar date.
func ParseLoginDate(s string) (Date, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Date{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Date{}, false
		}
		nums[i] = n
	}

	y, m, d := nums[0], nums[1], nums[2]
	if y < 1 || y > 9999 || m < 1 || m > 12 || d < 1 {
		return Date{}, false
	}
	// time.Date normalizes overflow (Feb 30 -> Mar 1); reject anything that moved.
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return Date{}, false
	}

	return DateOf(y, time.Month(m), d), true
}

// ParseTime parses colon-separated H:M or H:M:S. Extra components after the
// seconds are ignored.
func ParseTime(s string) (Clock, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Clock{}, false
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return Clock{}, false
	}

	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Clock{}, false
		}
		nums = append(nums, n)
	}

	h, m, sec := nums[0], nums[1], 0
	if len(nums) >= 3 {
		sec = nums[2]
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return Clock{}, false
	}

	return ClockOf(h, m, sec), true
}

// ParseRAM converts an installed memory size to whole gigabytes.
// Accepts "8", "8GB", "16 g", "16384MB", "8388608kb". Conversions truncate
// toward zero, so "512MB" is 0 GB.
func ParseRAM(s string) (RAM, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RAM{}, false
	}

	var (
		num     string
		divisor float64 = 1
	)
	switch {
	case strings.HasSuffix(s, "gb"):
		num = s[:len(s)-2]
	case strings.HasSuffix(s, "g"):
		num = s[:len(s)-1]
	case strings.HasSuffix(s, "mb"):
		num = s[:len(s)-2]
		divisor = 1024
	case strings.HasSuffix(s, "k"), strings.HasSuffix(s, "kb"):
		num = strings.TrimRight(s, "kb")
		divisor = 1024 * 1024
	default:
		num = s
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return RAM{}, false
	}

	gb := math.Trunc(f / divisor)
	if gb >= math.MaxInt64 || gb < math.MinInt64 {
		return RAM{}, false
	}

	return RAMOf(int64(gb)), true
}

// FieldDate parses s as a date, keeping the raw text when parsing fails.
func FieldDate(s string) Date {
	if d, ok := ParseDate(s); ok {
		return d
	}
	return RawDate(s)
}

// FieldTime parses s as a time of day, keeping the raw text when parsing fails.
func FieldTime(s string) Clock {
	if c, ok := ParseTime(s); ok {
		return c
	}
	return Clock{Raw: s}
}

// FieldRAM parses s as a memory size, keeping the raw text when parsing fails.
func FieldRAM(s string) RAM {
	if r, ok := ParseRAM(s); ok {
		return r
	}
	return RAM{Raw: s}
}
