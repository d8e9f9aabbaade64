package core

// source.go reads the event log and builds a Snapshot.
//
// The reader strips a leading UTF-8 BOM (Windows editors add one), replaces
// invalid UTF-8 with '?', and counts bytes for progress reporting. Each line
// goes through the Builder; blank and malformed lines are counted and skipped.

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
)

// ContextCheckInterval is how often (in lines) ingestion checks for cancellation
// and reports progress.
var ContextCheckInterval = 100

// maxLineSize bounds a single source line.
const maxLineSize = 1 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadPhase indicates the current stage of ingestion.
type LoadPhase string

const (
	PhaseReading  LoadPhase = "reading"
	PhaseComplete LoadPhase = "complete"
	PhaseFailed   LoadPhase = "failed"
)

// LoadProgress is reported while ingesting. Display only.
type LoadProgress struct {
	Phase      LoadPhase
	Lines      int
	Parsed     int
	Skipped    int
	BytesRead  int64
	BytesTotal int64
}

// Percent returns byte-based progress (0-100), or 0 if the size is unknown.
func (p LoadProgress) Percent() int {
	if p.BytesTotal <= 0 {
		return 0
	}
	pct := int(p.BytesRead * 100 / p.BytesTotal)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// ProgressCallback receives ingestion progress.
type ProgressCallback func(LoadProgress)

// LoadStats summarizes one ingestion pass.
type LoadStats struct {
	Source    string
	Lines     int
	Parsed    int
	Blank     int
	Malformed int
	Duration  time.Duration
	LoadedAt  time.Time
}

// Snapshot is the frozen result of one ingestion pass.
type Snapshot struct {
	Registry *Registry
	View     *DisplayView
	Stats    LoadStats
}

// LoadFile ingests the log at path.
// A missing file returns ErrSourceMissing; parse problems never fail the load.
func LoadFile(ctx context.Context, path string, progress ProgressCallback) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return nil, fmt.Errorf("open source %s: %w", path, err)
	}
	defer f.Close()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	snap, err := LoadReader(ctx, f, size, progress)
	if err != nil {
		return nil, err
	}
	snap.Stats.Source = path
	return snap, nil
}

// LoadReader ingests lines from r. size is used for progress and may be 0.
func LoadReader(ctx context.Context, r io.Reader, size int64, progress ProgressCallback) (*Snapshot, error) {
	start := time.Now()
	counter := &countingReader{r: r}
	br := bufio.NewReader(counter)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	reg := NewRegistry()
	view := NewDisplayView()
	builder := NewBuilder(reg, view)

	var stats LoadStats
	report := func(phase LoadPhase) {
		if progress == nil {
			return
		}
		progress(LoadProgress{
			Phase:      phase,
			Lines:      stats.Lines,
			Parsed:     stats.Parsed,
			Skipped:    stats.Blank + stats.Malformed,
			BytesRead:  counter.n,
			BytesTotal: size,
		})
	}

	for scanner.Scan() {
		stats.Lines++
		if stats.Lines%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				report(PhaseFailed)
				return nil, fmt.Errorf("ingestion cancelled at line %d: %w", stats.Lines, err)
			}
			report(PhaseReading)
		}

		line := strings.ToValidUTF8(scanner.Text(), "?")
		_, err := builder.IngestLine(line)
		switch {
		case err == nil:
			stats.Parsed++
		case errors.Is(err, ErrBlankLine):
			stats.Blank++
		default:
			stats.Malformed++
		}
	}
	if err := scanner.Err(); err != nil {
		report(PhaseFailed)
		return nil, fmt.Errorf("read source at line %d: %w", stats.Lines+1, err)
	}

	stats.Duration = time.Since(start)
	stats.LoadedAt = time.Now()
	report(PhaseComplete)

	return &Snapshot{Registry: reg, View: view, Stats: stats}, nil
}

// countingReader tracks bytes read for progress reporting.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
