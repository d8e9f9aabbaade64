package core

import (
	"testing"
	"time"
)

func ingestAll(t *testing.T, lines ...string) *DisplayView {
	t.Helper()
	view := NewDisplayView()
	b := NewBuilder(NewRegistry(), view)
	for _, l := range lines {
		if _, err := b.IngestLine(l); err != nil {
			t.Fatalf("IngestLine(%q) error = %v", l, err)
		}
	}
	return view
}

func TestDisplayView_KeepsLatestPerPair(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		wantDates []string
	}{
		{
			name: "newer replaces older",
			lines: []string{
				line("2024.01.01", "08:00", "Laptop", "PC-1", "alice"),
				line("2024.02.01", "08:00", "Laptop", "PC-1", "alice"),
			},
			wantDates: []string{"2024-02-01"},
		},
		{
			name: "older does not replace newer",
			lines: []string{
				line("2024.02.01", "08:00", "Laptop", "PC-1", "alice"),
				line("2024.01.01", "08:00", "Laptop", "PC-1", "alice"),
			},
			wantDates: []string{"2024-02-01"},
		},
		{
			name: "pairs match case-insensitively",
			lines: []string{
				line("2024.01.01", "08:00", "Laptop", "PC-1", "Alice"),
				line("2024.03.01", "08:00", "Laptop", "pc-1 ", "alice"),
			},
			wantDates: []string{"2024-03-01"},
		},
		{
			name: "different pairs both kept",
			lines: []string{
				line("2024.01.01", "08:00", "Laptop", "PC-1", "alice"),
				line("2024.01.01", "08:00", "Laptop", "PC-1", "bob"),
				line("2024.01.01", "08:00", "Laptop", "PC-2", "alice"),
			},
			wantDates: []string{"2024-01-01", "2024-01-01", "2024-01-01"},
		},
		{
			name: "winner moves to the end",
			lines: []string{
				line("2024.01.01", "08:00", "Laptop", "PC-1", "alice"),
				line("2024.01.15", "08:00", "Laptop", "PC-2", "bob"),
				line("2024.02.01", "08:00", "Laptop", "PC-1", "alice"),
			},
			wantDates: []string{"2024-01-15", "2024-02-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ingestAll(t, tt.lines...)
			entries := view.Entries()
			if len(entries) != len(tt.wantDates) {
				t.Fatalf("Len() = %d, want %d", len(entries), len(tt.wantDates))
			}
			for i, want := range tt.wantDates {
				if got := entries[i].LoginDate.String(); got != want {
					t.Errorf("entry %d date = %s, want %s", i, got, want)
				}
			}
		})
	}
}

func TestDisplayView_TieKeepsExisting(t *testing.T) {
	view := ingestAll(t,
		line("2024.01.01", "08:00", "Laptop", "PC-1", "alice"),
		line("2024.01.01", "17:00", "Laptop", "PC-1", "alice"),
	)
	entries := view.Entries()
	if len(entries) != 1 {
		t.Fatalf("Len() = %d, want 1", len(entries))
	}
	if entries[0].LoginID != 1 {
		t.Errorf("LoginID = %d, want the first event on a tie", entries[0].LoginID)
	}
}

func TestDisplayView_TextMatchWithoutIDs(t *testing.T) {
	view := NewDisplayView()
	view.Register(Record{Event: Event{User: " Alice", PCName: "pc-1", LoginDate: DateOf(2024, time.January, 1)}})
	view.Register(Record{Event: Event{User: "alice", PCName: "PC-1", LoginDate: DateOf(2024, time.March, 1)}})

	if view.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", view.Len())
	}
	if got := view.Entries()[0].LoginDate.String(); got != "2024-03-01" {
		t.Errorf("date = %s, want 2024-03-01", got)
	}
}

func TestDisplayView_IncomparableDatesNewWins(t *testing.T) {
	view := NewDisplayView()
	view.Register(Record{Event: Event{User: "alice", PCName: "PC-1", LoginDate: DateOf(2024, time.March, 1)}})
	view.Register(Record{Event: Event{User: "alice", PCName: "PC-1", LoginDate: RawDate("early 2024")}})

	if view.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", view.Len())
	}
	if got := view.Entries()[0].LoginDate.String(); got != "early 2024" {
		t.Errorf("date = %s, want the newly registered raw date", got)
	}
}

func TestDisplayView_RawDatesCompareLexically(t *testing.T) {
	view := NewDisplayView()
	view.Register(Record{Event: Event{User: "alice", PCName: "PC-1", LoginDate: RawDate("b")}})
	view.Register(Record{Event: Event{User: "alice", PCName: "PC-1", LoginDate: RawDate("a")}})

	if got := view.Entries()[0].LoginDate.String(); got != "b" {
		t.Errorf("date = %s, want b", got)
	}
}

func idRecord(userID, pcID int, user, pc string, d Date) Record {
	return Record{
		Event:    Event{User: user, PCName: pc, LoginDate: d},
		UserID:   userID,
		PCNameID: pcID,
	}
}

func TestDisplayView_RepeatedUpdatesKeepOrder(t *testing.T) {
	view := NewDisplayView()
	view.Register(idRecord(1, 1, "alice", "PC-1", DateOf(2024, time.January, 1)))
	view.Register(idRecord(2, 1, "bob", "PC-1", DateOf(2024, time.January, 1)))
	view.Register(idRecord(3, 1, "carol", "PC-1", DateOf(2024, time.January, 1)))
	for m := time.February; m <= time.December; m++ {
		view.Register(idRecord(1, 1, "alice", "PC-1", DateOf(2024, m, 1)))
	}

	tests := []struct {
		name      string
		register  *Record
		wantUsers []string
		wantLast  string
	}{
		{name: "updated pair moves to the end", wantUsers: []string{"bob", "carol", "alice"}, wantLast: "2024-12-01"},
		{
			name:      "older event still moves the kept entry",
			register:  &Record{Event: Event{User: "bob", PCName: "PC-1", LoginDate: DateOf(2023, time.June, 1)}, UserID: 2, PCNameID: 1},
			wantUsers: []string{"carol", "alice", "bob"},
			wantLast:  "2024-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.register != nil {
				view.Register(*tt.register)
			}
			entries := view.Entries()
			if view.Len() != len(tt.wantUsers) || len(entries) != len(tt.wantUsers) {
				t.Fatalf("Len() = %d, entries = %d, want %d", view.Len(), len(entries), len(tt.wantUsers))
			}
			for i, want := range tt.wantUsers {
				if entries[i].User != want {
					t.Errorf("entry %d user = %s, want %s", i, entries[i].User, want)
				}
			}
			if got := entries[len(entries)-1].LoginDate.String(); got != tt.wantLast {
				t.Errorf("last entry date = %s, want %s", got, tt.wantLast)
			}
			if got := len(view.Search("2024")); got != len(tt.wantUsers) {
				t.Errorf("Search(2024) = %d rows, want %d", got, len(tt.wantUsers))
			}
		})
	}
}

func TestDisplayView_TextAndIDPathsShareEntries(t *testing.T) {
	tests := []struct {
		name      string
		records   []Record
		wantDates []string
	}{
		{
			name: "text record replaces id entry then id record appends",
			records: []Record{
				idRecord(1, 1, "alice", "PC-1", DateOf(2024, time.January, 1)),
				idRecord(0, 0, "Alice", "pc-1", DateOf(2024, time.March, 1)),
				idRecord(1, 1, "alice", "PC-1", DateOf(2024, time.February, 1)),
			},
			wantDates: []string{"2024-03-01", "2024-02-01"},
		},
		{
			name: "id entry kept by text record is still found by id",
			records: []Record{
				idRecord(1, 1, "alice", "PC-1", DateOf(2024, time.March, 1)),
				idRecord(0, 0, "alice", "PC-1", DateOf(2024, time.January, 1)),
				idRecord(1, 1, "alice", "PC-1", DateOf(2024, time.April, 1)),
			},
			wantDates: []string{"2024-04-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewDisplayView()
			for _, rec := range tt.records {
				view.Register(rec)
			}
			entries := view.Entries()
			if view.Len() != len(tt.wantDates) {
				t.Fatalf("Len() = %d, want %d", view.Len(), len(tt.wantDates))
			}
			for i, want := range tt.wantDates {
				if got := entries[i].LoginDate.String(); got != want {
					t.Errorf("entry %d date = %s, want %s", i, got, want)
				}
			}
		})
	}
}

func TestDisplayView_Search(t *testing.T) {
	view := ingestAll(t,
		line("2024.01.05", "08:00", "Laptop", "PC-1", "alice"),
		line("2024.02.10", "08:00", "Laptop", "PC-2", "bob"),
		line("2024.02.11", "08:00", "Laptop", "PC-3", "carol"),
	)

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"  ", 3},
		{"2024-02", 2},
		{"2024-01", 1},
		{"2024-02-1", 2},
		{"2024-02-11", 1},
		{"2023", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := len(view.Search(tt.query)); got != tt.want {
				t.Errorf("Search(%q) = %d rows, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestPage(t *testing.T) {
	rows := make([]Record, 5)

	tests := []struct {
		name      string
		page      int
		size      int
		wantPage  int
		wantRows  int
		wantTotal int
	}{
		{"first page", 0, 2, 0, 2, 3},
		{"last partial page", 2, 2, 2, 1, 3},
		{"past the end clamps", 9, 2, 2, 1, 3},
		{"negative clamps", -1, 2, 0, 2, 3},
		{"zero size uses default", 0, 0, 0, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Page(rows, tt.page, tt.size)
			if p.Page != tt.wantPage || len(p.Rows) != tt.wantRows || p.TotalPages != tt.wantTotal {
				t.Errorf("Page() = page %d, %d rows, %d pages; want %d, %d, %d",
					p.Page, len(p.Rows), p.TotalPages, tt.wantPage, tt.wantRows, tt.wantTotal)
			}
			if p.TotalRows != 5 {
				t.Errorf("TotalRows = %d, want 5", p.TotalRows)
			}
		})
	}

	empty := Page(nil, 3, 10)
	if empty.TotalPages != 1 || empty.Page != 0 || len(empty.Rows) != 0 {
		t.Errorf("Page(nil) = %+v", empty)
	}
}

func TestYearMonth(t *testing.T) {
	if got := YearMonth(DateOf(2024, time.February, 10)); got != "2024-02" {
		t.Errorf("YearMonth() = %q, want 2024-02", got)
	}
	if got := YearMonth(RawDate("soon")); got != "soon" {
		t.Errorf("YearMonth(raw) = %q, want soon", got)
	}
}
