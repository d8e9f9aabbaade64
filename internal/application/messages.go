package application

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/hwinventory/internal/core"
)

// ReloadTimeout is the maximum duration for re-reading the source.
var ReloadTimeout = 5 * time.Minute

// ErrMsg reports a failed background action. Err is a *core.UserError so
// the view shows the mapped message while the cause stays reachable.
type ErrMsg struct{ Err error }

// ExportedMsg carries a finished export.
type ExportedMsg struct{ Result *core.ExportResult }

// ReloadedMsg carries the stats of a finished reload.
type ReloadedMsg struct{ Stats core.LoadStats }

// exportCmd runs an export off the UI goroutine, bounded by timeout.
func exportCmd(svc *core.Service, filter core.Filter, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := svc.Export(ctx, filter)
		if err != nil {
			return ErrMsg{Err: core.NewUserError(err)}
		}
		return ExportedMsg{Result: res}
	}
}

// reloadCmd re-reads the source off the UI goroutine.
func reloadCmd(svc *core.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ReloadTimeout)
		defer cancel()

		stats, err := svc.Reload(ctx, nil)
		if err != nil {
			return ErrMsg{Err: core.NewUserError(err)}
		}
		return ReloadedMsg{Stats: stats}
	}
}
