// Package csvdir writes export artifacts as a directory of CSV files, one per
// table, named <Sheet>.csv.
package csvdir

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/hwinventory/internal/core"
)

// Serializer writes <Dir>/<name>/<Sheet>.csv.
type Serializer struct {
	Dir string
}

// New returns a Serializer writing into dir.
func New(dir string) *Serializer {
	return &Serializer{Dir: dir}
}

// Write renders every table into a staging directory and renames it into
// place, replacing an earlier artifact of the same name.
func (s *Serializer) Write(ctx context.Context, name string, tables []core.Table) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	staging, err := os.MkdirTemp(s.Dir, "."+name+"-*")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(staging) }

	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			cleanup()
			return "", err
		}
		if err := writeTable(filepath.Join(staging, t.Name+".csv"), t); err != nil {
			cleanup()
			return "", fmt.Errorf("table %s: %w", t.Name, err)
		}
	}

	path := filepath.Join(s.Dir, name)
	if err := os.RemoveAll(path); err != nil {
		cleanup()
		return "", fmt.Errorf("replace %s: %w", path, err)
	}
	if err := os.Rename(staging, path); err != nil {
		cleanup()
		return "", fmt.Errorf("move artifact into place: %w", err)
	}
	return path, nil
}

func writeTable(path string, t core.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		f.Close()
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, core.FormatCell(v))
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
