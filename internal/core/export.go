package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArtifactPrefix starts every export artifact name.
const ArtifactPrefix = "hw_relational_"

// Table is one rendered sheet: a name, a header row and data rows.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Serializer persists a named set of tables and returns where it put them.
// Implementations must not leave a partial artifact behind on error.
type Serializer interface {
	Write(ctx context.Context, name string, tables []Table) (string, error)
}

// ExportResult describes a finished export.
type ExportResult struct {
	ID       string
	Selector string
	Name     string
	Path     string
	Rows     map[string]int // data rows per sheet
	Duration time.Duration
}

// Exporter renders selections and hands them to a Serializer.
type Exporter struct {
	serializer Serializer
}

// NewExporter returns an Exporter writing through s.
func NewExporter(s Serializer) *Exporter {
	return &Exporter{serializer: s}
}

// Render builds every registered sheet for sel, in artifact order.
func Render(reg *Registry, sel Selection) []Table {
	defs := Sheets()
	tables := make([]Table, 0, len(defs))
	for _, def := range defs {
		tables = append(tables, Table{
			Name:    def.Info.Name,
			Columns: def.Info.Columns,
			Rows:    def.Rows(reg, sel),
		})
	}
	return tables
}

// Export renders sel and writes one artifact named after its filter.
// Any failure is reported as ErrExportFailed.
func (e *Exporter) Export(ctx context.Context, reg *Registry, sel Selection) (*ExportResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	if SheetCount() == 0 {
		return nil, fmt.Errorf("%w: no sheets registered", ErrExportFailed)
	}

	tables := Render(reg, sel)
	selector := sel.Filter.Selector()
	name := ArtifactName(selector)

	path, err := e.serializer.Write(ctx, name, tables)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrExportFailed, name, err)
	}

	rows := make(map[string]int, len(tables))
	for _, t := range tables {
		rows[t.Name] = len(t.Rows)
	}

	return &ExportResult{
		ID:       uuid.New().String(),
		Selector: selector,
		Name:     name,
		Path:     path,
		Rows:     rows,
		Duration: time.Since(start),
	}, nil
}

// ArtifactName returns the artifact stem for a selector. Characters that are
// unsafe in file names are replaced with '_'.
func ArtifactName(selector string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, selector)
	return ArtifactPrefix + safe
}
