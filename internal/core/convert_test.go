package core

import (
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// ParseDate Tests
// ----------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   string // ISO form of the expected date
	}{
		// Valid: ISO and variants
		{name: "ISO", input: "2024-01-05", wantOK: true, want: "2024-01-05"},
		{name: "ISO single digit", input: "2024-1-5", wantOK: true, want: "2024-01-05"},
		{name: "dotted", input: "2020.01.01", wantOK: true, want: "2020-01-01"},
		{name: "dotted single digit", input: "2020.3.9", wantOK: true, want: "2020-03-09"},
		{name: "slashed year first", input: "2021/05/05", wantOK: true, want: "2021-05-05"},
		{name: "compact", input: "20240105", wantOK: true, want: "2024-01-05"},
		{name: "surrounding whitespace", input: "  2024-01-05 ", wantOK: true, want: "2024-01-05"},

		// Valid: day first
		{name: "day first slashes", input: "05/01/2024", wantOK: true, want: "2024-01-05"},
		{name: "day first dashes", input: "5-1-2024", wantOK: true, want: "2024-01-05"},

		// Invalid
		{name: "empty", input: "", wantOK: false},
		{name: "whitespace only", input: "   ", wantOK: false},
		{name: "text", input: "unknown", wantOK: false},
		{name: "impossible day", input: "2024-02-30", wantOK: false},
		{name: "month out of range", input: "2024-13-01", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.String() != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseLoginDate Tests
// ----------------------------------------------------------------------------

func TestParseLoginDate(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
		want   string
	}{
		{"2024.01.05", true, "2024-01-05"},
		{"2024.1.5", true, "2024-01-05"},
		{"2024.02.29", true, "2024-02-29"},
		{" 2024 . 02 . 03 ", true, "2024-02-03"},

		{"2023.02.29", false, ""}, // not a leap year
		{"2024.02.30", false, ""},
		{"2024.13.01", false, ""},
		{"2024.00.10", false, ""},
		{"2024.01.00", false, ""},
		{"2024-01-05", false, ""},
		{"2024.01", false, ""},
		{"2024.01.05.01", false, ""},
		{"not-a-date", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLoginDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseLoginDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got.String() != tt.want {
				t.Errorf("ParseLoginDate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseTime Tests
// ----------------------------------------------------------------------------

func TestParseTime(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   string
	}{
		{name: "full", input: "08:15:30", wantOK: true, want: "08:15:30"},
		{name: "no seconds", input: "8:05", wantOK: true, want: "08:05:00"},
		{name: "extra component ignored", input: "12:30:15:99", wantOK: true, want: "12:30:15"},
		{name: "midnight", input: "0:0:0", wantOK: true, want: "00:00:00"},
		{name: "last second", input: "23:59:59", wantOK: true, want: "23:59:59"},

		{name: "empty", input: "", wantOK: false},
		{name: "hour only", input: "8", wantOK: false},
		{name: "hour out of range", input: "24:00", wantOK: false},
		{name: "minute out of range", input: "10:60", wantOK: false},
		{name: "second out of range", input: "10:00:60", wantOK: false},
		{name: "text", input: "morning", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTime(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseTime(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got.String() != tt.want {
				t.Errorf("ParseTime(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseRAM Tests
// ----------------------------------------------------------------------------

func TestParseRAM(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   int64
	}{
		{name: "bare number", input: "8", wantOK: true, want: 8},
		{name: "GB suffix", input: "16GB", wantOK: true, want: 16},
		{name: "lower case g with space", input: "16 g", wantOK: true, want: 16},
		{name: "megabytes", input: "16384MB", wantOK: true, want: 16},
		{name: "megabytes truncate", input: "512MB", wantOK: true, want: 0},
		{name: "kilobytes", input: "8388608kb", wantOK: true, want: 8},
		{name: "fraction truncates", input: "7.9", wantOK: true, want: 7},

		{name: "empty", input: "", wantOK: false},
		{name: "text", input: "lots", wantOK: false},
		{name: "unit only", input: "GB", wantOK: false},
		{name: "infinity", input: "Inf", wantOK: false},
		{name: "2^63 overflows", input: "9223372036854775808", wantOK: false},
		{name: "2^63 in exponent form overflows", input: "9.223372036854775807e18", wantOK: false},
		{name: "below int64 range", input: "-1e19", wantOK: false},
		{name: "largest exact float below 2^63", input: "9223372036854774784", wantOK: true, want: 9223372036854774784},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRAM(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseRAM(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got.GB.Int64 != tt.want {
				t.Errorf("ParseRAM(%q) = %d, want %d", tt.input, got.GB.Int64, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Field fallbacks
// ----------------------------------------------------------------------------

func TestFieldFallbacks(t *testing.T) {
	if d := FieldDate("sometime in 2019"); d.IsParsed() || d.String() != "sometime in 2019" {
		t.Errorf("FieldDate kept %+v, want raw text", d)
	}
	if d := FieldDate("2019.06.01"); !d.IsParsed() || !d.Time().Equal(time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("FieldDate(2019.06.01) = %+v", d)
	}
	if c := FieldTime("late"); c.IsParsed() || c.String() != "late" {
		t.Errorf("FieldTime kept %+v, want raw text", c)
	}
	if r := FieldRAM("lots"); r.IsParsed() || r.String() != "lots" {
		t.Errorf("FieldRAM kept %+v, want raw text", r)
	}
	if r := FieldRAM("32GB"); r.String() != "32" {
		t.Errorf("FieldRAM(32GB) = %s, want 32", r)
	}
}

func TestDateCompare(t *testing.T) {
	jan := DateOf(2024, time.January, 1)
	feb := DateOf(2024, time.February, 1)

	tests := []struct {
		name    string
		a, b    Date
		wantCmp int
		wantOK  bool
	}{
		{"parsed before", jan, feb, -1, true},
		{"parsed after", feb, jan, 1, true},
		{"parsed equal", jan, DateOf(2024, time.January, 1), 0, true},
		{"raw lexical", RawDate("abc"), RawDate("abd"), -1, true},
		{"raw equal", RawDate("x"), RawDate("x"), 0, true},
		{"mixed", jan, RawDate("2024-02-01"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, ok := tt.a.Compare(tt.b)
			if ok != tt.wantOK || cmp != tt.wantCmp {
				t.Errorf("Compare() = (%d, %v), want (%d, %v)", cmp, ok, tt.wantCmp, tt.wantOK)
			}
		})
	}

	if jan.Equal(RawDate("2024-01-01")) {
		t.Error("parsed date should never equal a raw date")
	}
}
