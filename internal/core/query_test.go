package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input        string
		wantKind     FilterKind
		wantSelector string
	}{
		{"", FilterAll, "all"},
		{"   ", FilterAll, "all"},
		{"2024-02", FilterMonth, "2024-02"},
		{"2024-02-10", FilterDate, "2024-02-10"},
		{"2024.02.10", FilterDate, "2024-02-10"},
		{"10/02/2024", FilterDate, "2024-02-10"},
		{"2024-0", FilterPrefix, "2024-0"},
		{"2024", FilterPrefix, "2024"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f := ParseFilter(tt.input)
			if f.Kind != tt.wantKind {
				t.Errorf("ParseFilter(%q).Kind = %v, want %v", tt.input, f.Kind, tt.wantKind)
			}
			if got := f.Selector(); got != tt.wantSelector {
				t.Errorf("Selector() = %q, want %q", got, tt.wantSelector)
			}
		})
	}
}

func TestParseStrictFilter(t *testing.T) {
	for _, ok := range []string{"", "2024-02", "2024-02-10"} {
		if _, err := ParseStrictFilter(ok); err != nil {
			t.Errorf("ParseStrictFilter(%q) error = %v", ok, err)
		}
	}
	for _, bad := range []string{"2024-0", "feb", "2024"} {
		if _, err := ParseStrictFilter(bad); !errors.Is(err, ErrInvalidFilter) {
			t.Errorf("ParseStrictFilter(%q) error = %v, want ErrInvalidFilter", bad, err)
		}
	}
}

func TestFilterMatch(t *testing.T) {
	feb10 := DateOf(2024, time.February, 10)

	tests := []struct {
		name   string
		filter Filter
		date   Date
		want   bool
	}{
		{"all matches parsed", ParseFilter(""), feb10, true},
		{"all matches raw", ParseFilter(""), RawDate("whenever"), true},
		{"exact date", ParseFilter("2024-02-10"), feb10, true},
		{"exact date other day", ParseFilter("2024-02-11"), feb10, false},
		{"exact date never matches raw", ParseFilter("2024-02-10"), RawDate("2024-02-10"), false},
		{"month", ParseFilter("2024-02"), feb10, true},
		{"other month", ParseFilter("2024-03"), feb10, false},
		{"month falls back to raw prefix", ParseFilter("2024-02"), RawDate("2024-02-xx"), true},
		{"prefix", ParseFilter("2024-0"), feb10, true},
		{"prefix never matches empty", ParseFilter("2024-0"), RawDate(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(tt.date); got != tt.want {
				t.Errorf("Match(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func sampleRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	b := NewBuilder(reg, nil)
	lines := []string{
		line("2024.01.05", "08:00", "Laptop", "PC-1", "alice", "Acme", "X1", "16GB", "Intel i7", "i7-8650U", "Windows 10", "2020.01.01"),
		line("2024.02.10", "09:00", "Desktop", "PC-2", "bob", "Globex", "G5", "8GB", "AMD Ryzen", "R5-3600", "Ubuntu", "2021.05.05"),
		line("2024.02.11", "10:00", "Desktop", "PC-2", "carol", "Globex", "G5", "8GB", "AMD Ryzen", "R5-3600", "Ubuntu", "2021.05.05"),
		line("2024.03.01", "11:00", "Laptop", "PC-1", "alice", "Acme", "X1", "16GB", "Intel i7", "i7-8650U", "Windows 10", "2020.01.01"),
	}
	for _, l := range lines {
		if _, err := b.IngestLine(l); err != nil {
			t.Fatalf("IngestLine() error = %v", err)
		}
	}
	return reg
}

func TestSelect_MonthClosure(t *testing.T) {
	reg := sampleRegistry(t)
	sel := Select(reg, ParseFilter("2024-02"))

	if len(sel.Logins) != 2 {
		t.Fatalf("Logins = %d, want 2", len(sel.Logins))
	}
	if sel.Logins[0].ID != 2 || sel.Logins[1].ID != 3 {
		t.Errorf("login order = %d, %d, want 2, 3", sel.Logins[0].ID, sel.Logins[1].ID)
	}

	c := sel.Closure
	sizes := []struct {
		name string
		got  int
		want int
	}{
		{"Users", len(c.Users), 2},
		{"PCs", len(c.PCs), 1},
		{"DeviceTypes", len(c.DeviceTypes), 1},
		{"Models", len(c.Models), 1},
		{"OperatingSystems", len(c.OperatingSystems), 1},
		{"Processors", len(c.Processors), 1},
		{"ProcessorModels", len(c.ProcessorModels), 1},
		{"Brands", len(c.Brands), 1},
	}
	for _, s := range sizes {
		if s.got != s.want {
			t.Errorf("closure %s = %d, want %d", s.name, s.got, s.want)
		}
	}

	for id := range c.Brands {
		if name := reg.Brands[id].Name; name != "Globex" {
			t.Errorf("closure brand = %q, want Globex only", name)
		}
	}
}

func TestSelect_AllAndEmpty(t *testing.T) {
	reg := sampleRegistry(t)

	all := Select(reg, ParseFilter(""))
	if len(all.Logins) != 4 {
		t.Errorf("all Logins = %d, want 4", len(all.Logins))
	}
	if len(all.Closure.Brands) != 2 || len(all.Closure.Users) != 3 {
		t.Errorf("all closure Brands = %d, Users = %d, want 2 and 3", len(all.Closure.Brands), len(all.Closure.Users))
	}

	none := Select(reg, ParseFilter("2023-12"))
	if len(none.Logins) != 0 || len(none.Closure.PCs) != 0 || len(none.Closure.Brands) != 0 {
		t.Errorf("empty selection should have an empty closure, got %+v", none.Closure)
	}
}

func TestSelect_SkipsDanglingReferences(t *testing.T) {
	reg := NewRegistry()
	reg.PCs[1] = PC{ID: 1, Name: "PC-1", ModelID: 99, ProcessorID: 42}
	reg.Logins = []Login{
		{ID: 1, Date: DateOf(2024, time.January, 1), PCID: 1, UserID: 7},
		{ID: 2, Date: DateOf(2024, time.January, 2), PCID: 5},
	}

	sel := Select(reg, ParseFilter(""))
	c := sel.Closure

	if _, ok := c.Models[99]; !ok {
		t.Error("model reference should be collected even when the row is missing")
	}
	if len(c.Brands) != 0 {
		t.Errorf("Brands = %d, want 0 for a missing model", len(c.Brands))
	}
	if _, ok := c.Processors[42]; !ok {
		t.Error("processor reference should be collected")
	}
	if len(c.ProcessorModels) != 0 {
		t.Errorf("ProcessorModels = %d, want 0 for a missing processor", len(c.ProcessorModels))
	}
	if len(c.DeviceTypes) != 0 || len(c.OperatingSystems) != 0 {
		t.Error("absent references should be skipped")
	}
	if len(c.PCs) != 2 {
		t.Errorf("PCs = %d, want 2", len(c.PCs))
	}
}
