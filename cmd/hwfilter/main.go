// Command hwfilter loads the hardware login log and exports a relational
// snapshot, either in one shot (--export) or from an interactive browser.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/JonMunkholm/hwinventory/internal/application"
	"github.com/JonMunkholm/hwinventory/internal/config"
	"github.com/JonMunkholm/hwinventory/internal/core"
	_ "github.com/JonMunkholm/hwinventory/internal/core/tables" // Register all sheets
	"github.com/JonMunkholm/hwinventory/internal/logging"
	"github.com/JonMunkholm/hwinventory/internal/sink"
)

func main() {
	if err := run(); err != nil {
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, "hwfilter:", core.FormatUserError(err))
			fmt.Fprintln(os.Stderr, "  detail:", err)
		} else {
			fmt.Fprintln(os.Stderr, "hwfilter:", err)
		}
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Overload()

	cfg, err := config.LoadEnv()
	if err != nil {
		return err
	}

	// Flags default to the environment values they override
	pflag.StringVarP(&cfg.Source.Path, "source", "s", cfg.Source.Path, "Event log to load (HW_SOURCE_PATH).")
	pflag.StringVarP(&cfg.Export.Dir, "out", "o", cfg.Export.Dir, "Output directory for file artifacts (HW_OUTPUT_DIR).")
	pflag.StringVarP(&cfg.Export.Format, "format", "f", cfg.Export.Format, "Export format: xlsx, csv or postgres (HW_EXPORT_FORMAT).")
	pflag.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level: debug, info, warn, error (LOG_LEVEL).")
	date := pflag.StringP("date", "d", "", "Date filter: empty for all, YYYY-MM, or a date.")
	export := pflag.BoolP("export", "e", false, "Export once and exit instead of starting the browser.")
	logFile := pflag.String("log-file", "", "Write logs here while the browser runs (default: discard).")
	pflag.Parse()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	var logClose func()
	if *export {
		logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	} else {
		w, closeFn, err := openLog(*logFile)
		if err != nil {
			return err
		}
		logClose = closeFn
		slog.SetDefault(logging.New(w, cfg.Logging.Level, cfg.Logging.Format))
	}
	if logClose != nil {
		defer logClose()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serializer, closeSink, err := sink.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	service := core.NewService(cfg, serializer)
	if _, err := service.Reload(ctx, progressLogger()); err != nil {
		return err
	}

	if *export {
		return exportOnce(ctx, service, cfg, *date)
	}

	p := tea.NewProgram(application.New(service, *date, cfg.Export.Timeout), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// exportOnce writes one artifact. The command line accepts any filter text;
// unrecognized input matches as a date prefix.
func exportOnce(ctx context.Context, service *core.Service, cfg *config.Config, date string) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Export.Timeout)
	defer cancel()

	res, err := service.Export(ctx, core.ParseFilter(date))
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d logins)\n", res.Path, res.Rows[core.SheetLogin])
	return nil
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func progressLogger() core.ProgressCallback {
	return func(p core.LoadProgress) {
		slog.Debug("loading",
			"phase", p.Phase,
			"lines", p.Lines,
			"parsed", p.Parsed,
			"skipped", p.Skipped,
			"percent", p.Percent(),
		)
	}
}
