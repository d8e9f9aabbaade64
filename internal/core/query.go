package core

import (
	"fmt"
	"strings"
)

// FilterKind selects how login dates are matched.
type FilterKind int

const (
	FilterAll    FilterKind = iota // every login
	FilterDate                     // exact calendar date
	FilterMonth                    // YYYY-MM prefix
	FilterPrefix                   // text prefix of the rendered date
)

// Filter is a parsed date filter.
type Filter struct {
	Kind  FilterKind
	Date  Date   // FilterDate
	Value string // FilterMonth, FilterPrefix
}

// ParseFilter interprets user input as a date filter.
// Empty input selects everything, YYYY-MM selects a month, anything that parses
// as a date selects that day, and other text matches as a date prefix.
func ParseFilter(s string) Filter {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Filter{Kind: FilterAll}
	case yearMonthRegex.MatchString(s):
		return Filter{Kind: FilterMonth, Value: s}
	}
	if d, ok := ParseDate(s); ok {
		return Filter{Kind: FilterDate, Date: d}
	}
	return Filter{Kind: FilterPrefix, Value: s}
}

// ParseStrictFilter is ParseFilter without the prefix fallback. Interactive
// surfaces use it to reject typos instead of exporting an unexpected subset.
func ParseStrictFilter(s string) (Filter, error) {
	f := ParseFilter(s)
	if f.Kind == FilterPrefix {
		return Filter{}, fmt.Errorf("%w: %q is neither YYYY-MM nor a date", ErrInvalidFilter, s)
	}
	return f, nil
}

// Selector names the filter in artifact names: "all", the month, the ISO
// date or the raw prefix.
func (f Filter) Selector() string {
	switch f.Kind {
	case FilterAll:
		return "all"
	case FilterDate:
		return f.Date.String()
	default:
		return f.Value
	}
}

// Match reports whether a login date satisfies the filter.
func (f Filter) Match(d Date) bool {
	switch f.Kind {
	case FilterAll:
		return true
	case FilterDate:
		return d.Equal(f.Date)
	case FilterMonth:
		s := d.String()
		return len(s) >= 7 && s[:7] == f.Value
	case FilterPrefix:
		s := d.String()
		return s != "" && strings.HasPrefix(s, f.Value)
	}
	return false
}

// Closure is the set of entity identifiers reachable from a login selection.
type Closure struct {
	Users            map[int]struct{}
	PCs              map[int]struct{}
	DeviceTypes      map[int]struct{}
	Models           map[int]struct{}
	OperatingSystems map[int]struct{}
	Processors       map[int]struct{}
	ProcessorModels  map[int]struct{}
	Brands           map[int]struct{}
}

func newClosure() Closure {
	return Closure{
		Users:            make(map[int]struct{}),
		PCs:              make(map[int]struct{}),
		DeviceTypes:      make(map[int]struct{}),
		Models:           make(map[int]struct{}),
		OperatingSystems: make(map[int]struct{}),
		Processors:       make(map[int]struct{}),
		ProcessorModels:  make(map[int]struct{}),
		Brands:           make(map[int]struct{}),
	}
}

// Selection is the result of a query: matching logins in log order and
// the referential closure restricting every other table.
type Selection struct {
	Filter  Filter
	Logins  []Login
	Closure Closure
}

// Select runs filter against reg.
//
// Closure: Login -> PC, User; PC -> DeviceType, Model, OperatingSystem,
// Processor; Processor -> ProcessorModel; Model -> Brand. Absent references and
// dangling identifiers are skipped.
func Select(reg *Registry, filter Filter) Selection {
	sel := Selection{Filter: filter, Closure: newClosure()}
	c := sel.Closure

	for _, l := range reg.Logins {
		if !filter.Match(l.Date) {
			continue
		}
		sel.Logins = append(sel.Logins, l)
		addID(c.Users, l.UserID)
		addID(c.PCs, l.PCID)
	}

	for id := range c.PCs {
		pc, ok := reg.PCs[id]
		if !ok {
			continue
		}
		addID(c.DeviceTypes, pc.DeviceID)
		addID(c.Models, pc.ModelID)
		addID(c.OperatingSystems, pc.OperatingSystemID)
		if pc.ProcessorID != 0 {
			c.Processors[pc.ProcessorID] = struct{}{}
			if proc, ok := reg.Processors[pc.ProcessorID]; ok {
				addID(c.ProcessorModels, proc.ProcessorModelID)
			}
		}
	}

	for id := range c.Models {
		if m, ok := reg.Models[id]; ok {
			addID(c.Brands, m.BrandID)
		}
	}

	return sel
}

func addID(set map[int]struct{}, id int) {
	if id != 0 {
		set[id] = struct{}{}
	}
}
