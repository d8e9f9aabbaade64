package core

// value.go defines the tagged field values produced by best-effort parsing.
//
// Each value is either Parsed (the typed side is Valid) or Raw (the original text
// is kept because every parse attempt failed). Read sites resolve the two cases
// explicitly; nothing coerces silently.

import (
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	isoDateLayout = "2006-01-02"
	isoTimeLayout = "15:04:05"
)

// Date is a calendar date or the raw text that failed to parse as one.
type Date struct {
	Parsed pgtype.Date
	Raw    string
}

// DateOf returns a parsed Date for the given calendar day.
func DateOf(year int, month time.Month, day int) Date {
	return Date{Parsed: pgtype.Date{
		Time:  time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Valid: true,
	}}
}

// RawDate returns an unparsed Date carrying s.
func RawDate(s string) Date {
	return Date{Raw: s}
}

// IsParsed reports whether the date holds a calendar value.
func (d Date) IsParsed() bool {
	return d.Parsed.Valid
}

// Time returns the calendar value at UTC midnight. Zero for raw dates.
func (d Date) Time() time.Time {
	if !d.Parsed.Valid {
		return time.Time{}
	}
	return d.Parsed.Time
}

// String renders the date as ISO 8601 when parsed, raw text otherwise.
func (d Date) String() string {
	if d.Parsed.Valid {
		return d.Parsed.Time.Format(isoDateLayout)
	}
	return d.Raw
}

// Equal reports whether both dates are parsed and fall on the same day.
func (d Date) Equal(other Date) bool {
	if !d.Parsed.Valid || !other.Parsed.Valid {
		return false
	}
	return d.Parsed.Time.Equal(other.Parsed.Time)
}

// Compare orders two dates. Parsed dates compare by calendar, raw dates
// lexically. ok is false when one side is parsed and the other is not.
func (d Date) Compare(other Date) (cmp int, ok bool) {
	switch {
	case d.Parsed.Valid && other.Parsed.Valid:
		return d.Parsed.Time.Compare(other.Parsed.Time), true
	case !d.Parsed.Valid && !other.Parsed.Valid:
		switch {
		case d.Raw < other.Raw:
			return -1, true
		case d.Raw > other.Raw:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Clock is a time of day or the raw text that failed to parse as one.
type Clock struct {
	Parsed pgtype.Time
	Raw    string
}

// ClockOf returns a parsed Clock.
func ClockOf(hour, minute, second int) Clock {
	us := (int64(hour)*3600 + int64(minute)*60 + int64(second)) * int64(time.Second/time.Microsecond)
	return Clock{Parsed: pgtype.Time{Microseconds: us, Valid: true}}
}

// IsParsed reports whether the clock holds a time of day.
func (c Clock) IsParsed() bool {
	return c.Parsed.Valid
}

// String renders HH:MM:SS when parsed, raw text otherwise.
func (c Clock) String() string {
	if !c.Parsed.Valid {
		return c.Raw
	}
	d := time.Duration(c.Parsed.Microseconds) * time.Microsecond
	return time.Time{}.Add(d).Format(isoTimeLayout)
}

// RAM is an installed memory size in whole gigabytes or unparsed text.
type RAM struct {
	GB  pgtype.Int8
	Raw string
}

// RAMOf returns a parsed RAM value.
func RAMOf(gb int64) RAM {
	return RAM{GB: pgtype.Int8{Int64: gb, Valid: true}}
}

// IsParsed reports whether the size was understood.
func (r RAM) IsParsed() bool {
	return r.GB.Valid
}

// String renders the gigabyte count when parsed, raw text otherwise.
func (r RAM) String() string {
	if r.GB.Valid {
		return strconv.FormatInt(r.GB.Int64, 10)
	}
	return r.Raw
}
