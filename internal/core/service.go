package core

import (
	"context"
	"log/slog"
	"sync"

	"github.com/JonMunkholm/hwinventory/internal/config"
	"github.com/JonMunkholm/hwinventory/internal/logging"
)

// Service is the main entry point for loading, browsing and exporting.
//
// It owns the current Snapshot. Reload builds a complete new snapshot from the
// source and swaps it in under the write lock, so readers never observe a
// half-built registry.
type Service struct {
	cfg      *config.Config
	exporter *Exporter
	limiter  *ExportLimiter

	mu   sync.RWMutex
	snap *Snapshot
}

// NewService creates a service exporting through serializer.
func NewService(cfg *config.Config, serializer Serializer) *Service {
	return &Service{
		cfg:      cfg,
		exporter: NewExporter(serializer),
		limiter:  NewExportLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWait),
	}
}

// Reload re-reads the configured source and replaces the snapshot.
// On error the previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context, progress ProgressCallback) (LoadStats, error) {
	snap, err := LoadFile(ctx, s.cfg.Source.Path, progress)
	if err != nil {
		return LoadStats{}, err
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	slog.Info("inventory loaded",
		"source", snap.Stats.Source,
		"lines", snap.Stats.Lines,
		"logins", snap.Stats.Parsed,
		"malformed", snap.Stats.Malformed,
		"browse_entries", snap.View.Len(),
		"duration_ms", snap.Stats.Duration.Milliseconds(),
	)
	return snap.Stats, nil
}

// Snapshot returns the current snapshot.
func (s *Service) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil, ErrNotLoaded
	}
	return s.snap, nil
}

// Browse returns one page of the display view filtered by q.
func (s *Service) Browse(q string, page int) (BrowsePage, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return BrowsePage{}, err
	}
	return Page(snap.View.Search(q), page, s.cfg.Source.PageSize), nil
}

// Select runs a date filter against the current snapshot.
func (s *Service) Select(filter Filter) (*Registry, Selection, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, Selection{}, err
	}
	return snap.Registry, Select(snap.Registry, filter), nil
}

// AcquireExport takes an export slot for callers that render on their own,
// such as a streamed download. The returned function releases it.
func (s *Service) AcquireExport(ctx context.Context) (func(), error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	return s.limiter.Release, nil
}

// WaitForExports blocks until running exports finish or ctx ends.
func (s *Service) WaitForExports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// ExportStatus reports export slot usage.
func (s *Service) ExportStatus() ExportLimiterStatus {
	return s.limiter.Status()
}

// Export selects by filter and writes one artifact through the configured
// serializer.
func (s *Service) Export(ctx context.Context, filter Filter) (*ExportResult, error) {
	reg, sel, err := s.Select(filter)
	if err != nil {
		return nil, err
	}

	release, err := s.AcquireExport(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	log := logging.WithFields(ctx, "selector", filter.Selector())
	res, err := s.exporter.Export(ctx, reg, sel)
	if err != nil {
		log.Error("export failed", "error", err)
		return nil, err
	}

	log.Info("export written",
		"export_id", res.ID,
		"path", res.Path,
		"logins", res.Rows[SheetLogin],
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
