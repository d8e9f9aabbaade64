// Package sink selects the export serializer for the configured format.
package sink

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/hwinventory/internal/config"
	"github.com/JonMunkholm/hwinventory/internal/core"
	"github.com/JonMunkholm/hwinventory/internal/sink/csvdir"
	"github.com/JonMunkholm/hwinventory/internal/sink/postgres"
	"github.com/JonMunkholm/hwinventory/internal/sink/xlsx"
)

// New returns the serializer for cfg.Export.Format and a function releasing
// its resources. The postgres format connects immediately.
func New(ctx context.Context, cfg *config.Config) (core.Serializer, func(), error) {
	noop := func() {}

	switch strings.ToLower(cfg.Export.Format) {
	case config.FormatXLSX:
		return xlsx.New(cfg.Export.Dir), noop, nil
	case config.FormatCSV:
		return csvdir.New(cfg.Export.Dir), noop, nil
	case config.FormatPostgres:
		pool, err := postgres.Connect(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres export target: %w", err)
		}
		slog.Info("connected to export database", "max_conns", cfg.Database.MaxConns)
		return postgres.New(pool), pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", core.ErrUnknownFormat, cfg.Export.Format)
	}
}
