package core

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Lookup assigns stable positive identifiers to repeated raw values.
//
// Values are canonicalized (ISO text for parsed dates and times, trimmed text
// otherwise) and then case folded, so "Dell " and "dell" share an identifier.
// The first value seen for a key binds its identifier for the life of the
// Lookup; identifiers are dense and start at 1.
type Lookup struct {
	ids  map[string]int
	next int
	fold cases.Caser
}

// NewLookup returns an empty Lookup.
func NewLookup() *Lookup {
	return &Lookup{
		ids:  make(map[string]int),
		next: 1,
		fold: cases.Fold(),
	}
}

// GetOrCreate returns the identifier for v, allocating one on first sight.
// Returns ok=false when v canonicalizes to the empty string.
func (l *Lookup) GetOrCreate(v any) (id int, ok bool) {
	key := canonicalKey(v)
	if key == "" {
		return 0, false
	}

	nkey := l.fold.String(key)
	if id, exists := l.ids[nkey]; exists {
		return id, true
	}

	id = l.next
	l.next++
	l.ids[nkey] = id
	return id, true
}

// Len returns the number of identifiers allocated so far.
func (l *Lookup) Len() int {
	return len(l.ids)
}

// canonicalKey converts a scalar to the trimmed text used as a lookup key.
func canonicalKey(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
