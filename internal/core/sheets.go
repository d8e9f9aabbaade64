package core

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Export sheet names.
const (
	SheetLogin           = "Login"
	SheetUser            = "User"
	SheetPC              = "Pc"
	SheetDevice          = "Device"
	SheetModel           = "Model"
	SheetBrand           = "Brand"
	SheetOperatingSystem = "OperationSystem"
	SheetProcessorModel  = "ProcessorModel"
	SheetProcessor       = "Processor"
)

// SheetInfo describes one exported table.
type SheetInfo struct {
	Name    string   // Sheet name, also the CSV file and SQL table stem
	Order   int      // Position in the artifact
	Columns []string // Header row, in output order
}

// RowsFunc renders the rows of a sheet for a selection. Each row must have
// exactly len(Columns) cells; see the Cell* helpers for value types.
type RowsFunc func(reg *Registry, sel Selection) [][]any

// SheetDefinition contains everything needed to export one table.
type SheetDefinition struct {
	Info SheetInfo
	Rows RowsFunc
}

var (
	sheets   = make(map[string]SheetDefinition)
	sheetsMu sync.RWMutex
)

// RegisterSheet adds a sheet definition.
// Panics if a sheet with the same name is already registered.
func RegisterSheet(def SheetDefinition) {
	sheetsMu.Lock()
	defer sheetsMu.Unlock()

	if _, exists := sheets[def.Info.Name]; exists {
		panic(fmt.Sprintf("sheet already registered: %s", def.Info.Name))
	}
	sheets[def.Info.Name] = def
}

// Sheets returns all registered sheets in artifact order.
func Sheets() []SheetDefinition {
	sheetsMu.RLock()
	defer sheetsMu.RUnlock()

	result := make([]SheetDefinition, 0, len(sheets))
	for _, def := range sheets {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Order != result[j].Info.Order {
			return result[i].Info.Order < result[j].Info.Order
		}
		return result[i].Info.Name < result[j].Info.Name
	})

	return result
}

// SheetCount returns the number of registered sheets.
func SheetCount() int {
	sheetsMu.RLock()
	defer sheetsMu.RUnlock()
	return len(sheets)
}

// Cell helpers normalize values for serializers. Cells are nil (blank), int,
// string or time.Time (a calendar date at UTC midnight).

// CellID returns nil for an absent reference.
func CellID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}

// CellText returns nil for empty text.
func CellText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// CellDate returns the calendar value when parsed, the raw text otherwise.
func CellDate(d Date) any {
	if d.IsParsed() {
		return d.Time()
	}
	return CellText(d.Raw)
}

// CellClock renders a time of day as HH:MM:SS text, or the raw text.
func CellClock(c Clock) any {
	return CellText(c.String())
}

// CellRAM returns whole gigabytes when parsed, the raw text otherwise.
func CellRAM(r RAM) any {
	if r.IsParsed() {
		return int(r.GB.Int64)
	}
	return CellText(r.Raw)
}

// FormatCell renders a cell as text for text-only sinks: blank for nil,
// ISO for dates.
func FormatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case time.Time:
		return c.Format(isoDateLayout)
	default:
		return fmt.Sprint(c)
	}
}
