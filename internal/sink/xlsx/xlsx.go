// Package xlsx writes export artifacts as Excel workbooks, one worksheet per
// table.
package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/hwinventory/internal/core"
)

// Extension is the artifact file extension.
const Extension = ".xlsx"

// maxSheetName is Excel's worksheet name limit.
const maxSheetName = 31

const dateFormat = "yyyy-mm-dd"

// Serializer writes <Dir>/<name>.xlsx.
type Serializer struct {
	Dir string
}

// New returns a Serializer writing into dir.
func New(dir string) *Serializer {
	return &Serializer{Dir: dir}
}

// Write builds the workbook and saves it atomically: the file is written to a
// temporary name in Dir and renamed into place.
func (s *Serializer) Write(ctx context.Context, name string, tables []core.Table) (string, error) {
	f, err := Build(ctx, tables)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+name+"-*"+Extension)
	if err != nil {
		return "", fmt.Errorf("create temp workbook: %w", err)
	}
	tmpPath := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close workbook: %w", err)
	}

	path := filepath.Join(s.Dir, name+Extension)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("move workbook into place: %w", err)
	}
	return path, nil
}

// Build renders tables into an in-memory workbook. The caller must Close it.
// The first row of each sheet is the bold header; date cells get a
// yyyy-mm-dd number format.
func Build(ctx context.Context, tables []core.Table) (*excelize.File, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("workbook needs at least one table")
	}

	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			f.Close()
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	numFmt := dateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("date style: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, t := range tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sheet := SheetName(t.Name)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return nil, fmt.Errorf("rename sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("add sheet %s: %w", sheet, err)
		}

		if err := writeSheet(f, sheet, t, headerStyle, dateStyle); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	ok = true
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, t core.Table, headerStyle, dateStyle int) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if len(t.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		rowNum := r + 2
		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		cells := row
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return err
		}
		for c, v := range row {
			if _, isDate := v.(time.Time); !isDate {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

// SheetName trims name to Excel's worksheet name limit.
func SheetName(name string) string {
	r := []rune(name)
	if len(r) > maxSheetName {
		return string(r[:maxSheetName])
	}
	return name
}
