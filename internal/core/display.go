package core

import (
	"regexp"
	"strings"
)

// DefaultPageSize is the number of entries per browse page.
const DefaultPageSize = 50

var yearMonthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// DisplayView keeps, for each (user, machine) pair, the single event with the
// most recent login date. It only drives browsing and filtering; exports read
// the Registry instead.
//
// Replaced entries leave dead slots behind so display order never shifts;
// the slice is compacted once more than half of it is dead.
type DisplayView struct {
	entries []Record
	dead    []bool
	live    int
	byPair  map[[2]int][]int // live slots per (UserID, PCNameID), ascending
}

// NewDisplayView returns an empty view.
func NewDisplayView() *DisplayView {
	return &DisplayView{byPair: make(map[[2]int][]int)}
}

// Register adds rec, replacing any entries for the same pair when rec wins.
//
// Entries match on (UserID, PCNameID) when both are known, otherwise on
// trimmed, case-insensitive user and machine text. Among the existing matches
// followed by rec, the first entry with the latest date wins; an entry only
// displaces the current best when strictly newer. If two dates cannot be
// compared (one parsed, one raw) rec wins outright.
func (v *DisplayView) Register(rec Record) {
	var same []int
	if key, ok := pairKey(rec); ok {
		same = append(same, v.byPair[key]...)
	} else {
		user, pc := foldText(rec.User), foldText(rec.PCName)
		for i, e := range v.entries {
			if !v.dead[i] && foldText(e.User) == user && foldText(e.PCName) == pc {
				same = append(same, i)
			}
		}
	}

	if len(same) == 0 {
		v.add(rec)
		return
	}

	winner := latest(v.entries, same, rec)
	for _, i := range same {
		v.remove(i)
	}
	v.add(winner)

	if v.live*2 < len(v.entries) {
		v.compact()
	}
}

func pairKey(rec Record) ([2]int, bool) {
	if rec.UserID == 0 || rec.PCNameID == 0 {
		return [2]int{}, false
	}
	return [2]int{rec.UserID, rec.PCNameID}, true
}

func (v *DisplayView) add(rec Record) {
	if key, ok := pairKey(rec); ok {
		v.byPair[key] = append(v.byPair[key], len(v.entries))
	}
	v.entries = append(v.entries, rec)
	v.dead = append(v.dead, false)
	v.live++
}

func (v *DisplayView) remove(i int) {
	v.dead[i] = true
	v.live--

	key, ok := pairKey(v.entries[i])
	if !ok {
		return
	}
	slots := v.byPair[key][:0]
	for _, j := range v.byPair[key] {
		if j != i {
			slots = append(slots, j)
		}
	}
	if len(slots) == 0 {
		delete(v.byPair, key)
		return
	}
	v.byPair[key] = slots
}

// compact drops dead slots and rebuilds the pair index.
func (v *DisplayView) compact() {
	entries := v.Entries()
	v.entries = v.entries[:0]
	v.dead = v.dead[:0]
	v.live = 0
	clear(v.byPair)
	for _, e := range entries {
		v.add(e)
	}
}

// latest picks the winning record among entries[same...] followed by rec.
func latest(entries []Record, same []int, rec Record) Record {
	best := entries[same[0]]
	candidates := make([]Record, 0, len(same))
	for _, i := range same[1:] {
		candidates = append(candidates, entries[i])
	}
	candidates = append(candidates, rec)

	for _, c := range candidates {
		cmp, ok := c.LoginDate.Compare(best.LoginDate)
		if !ok {
			return rec
		}
		if cmp > 0 {
			best = c
		}
	}
	return best
}

// Len returns the number of entries in the view.
func (v *DisplayView) Len() int {
	return v.live
}

// Entries returns a copy of the view in display order.
func (v *DisplayView) Entries() []Record {
	out := make([]Record, 0, v.live)
	for i, e := range v.entries {
		if !v.dead[i] {
			out = append(out, e)
		}
	}
	return out
}

// Search filters the view by login date. An empty query returns everything,
// a YYYY-MM query matches that month, anything else matches as a prefix of
// the ISO login date.
func (v *DisplayView) Search(q string) []Record {
	q = strings.TrimSpace(q)
	if q == "" {
		return v.Entries()
	}

	month := yearMonthRegex.MatchString(q)
	var out []Record
	for i, e := range v.entries {
		if v.dead[i] {
			continue
		}
		date := e.LoginDate.String()
		if date == "" {
			continue
		}
		if month {
			if len(date) >= 7 && date[:7] == q {
				out = append(out, e)
			}
			continue
		}
		if strings.HasPrefix(date, q) {
			out = append(out, e)
		}
	}
	return out
}

// BrowsePage is one page of browse results.
type BrowsePage struct {
	Rows       []Record
	Page       int // zero-based
	TotalPages int
	TotalRows  int
}

// Page slices rows into pages of size entries. Out-of-range pages are clamped.
func Page(rows []Record, page, size int) BrowsePage {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := (len(rows) + size - 1) / size
	if total < 1 {
		total = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= total {
		page = total - 1
	}

	start := page * size
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}

	return BrowsePage{
		Rows:       rows[start:end],
		Page:       page,
		TotalPages: total,
		TotalRows:  len(rows),
	}
}

// YearMonth returns the YYYY-MM prefix of a rendered date, or the whole text
// when shorter.
func YearMonth(d Date) string {
	s := d.String()
	if len(s) >= 7 {
		return s[:7]
	}
	return s
}

func foldText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
