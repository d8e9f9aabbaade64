package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/hwinventory/internal/core"
	"github.com/JonMunkholm/hwinventory/internal/logging"
	"github.com/JonMunkholm/hwinventory/internal/sink/xlsx"
	"github.com/JonMunkholm/hwinventory/internal/web/templates"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LoginEntry is one browse row in API responses.
type LoginEntry struct {
	LoginID   int    `json:"login_id"`
	Date      string `json:"date"`
	Month     string `json:"month"`
	Time      string `json:"time"`
	User      string `json:"user"`
	PC        string `json:"pc"`
	Device    string `json:"device"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	RAM       string `json:"ram"`
	CPU       string `json:"cpu"`
	OS        string `json:"os"`
	FreeSpace string `json:"free_space"`
}

// LoginPage is the /api/logins response.
type LoginPage struct {
	Query      string       `json:"query"`
	Page       int          `json:"page"` // one-based
	TotalPages int          `json:"total_pages"`
	TotalRows  int          `json:"total_rows"`
	Entries    []LoginEntry `json:"entries"`
}

// StatsResponse is the /api/stats response.
type StatsResponse struct {
	Source        string                   `json:"source"`
	LoadedAt      time.Time                `json:"loaded_at"`
	Lines         int                      `json:"lines"`
	Parsed        int                      `json:"parsed"`
	Blank         int                      `json:"blank"`
	Malformed     int                      `json:"malformed"`
	BrowseEntries int                      `json:"browse_entries"`
	Tables        map[string]int           `json:"tables"`
	Exports       core.ExportLimiterStatus `json:"exports"`
}

// ExportResponse is the POST /api/export response.
type ExportResponse struct {
	ID         string         `json:"id"`
	Selector   string         `json:"selector"`
	Path       string         `json:"path"`
	Rows       map[string]int `json:"rows"`
	DurationMS int64          `json:"duration_ms"`
}

func toLoginEntry(rec core.Record) LoginEntry {
	return LoginEntry{
		LoginID:   rec.LoginID,
		Date:      rec.LoginDate.String(),
		Month:     core.YearMonth(rec.LoginDate),
		Time:      rec.LoginTime.String(),
		User:      rec.User,
		PC:        rec.PCName,
		Device:    rec.DeviceType,
		Brand:     rec.Brand,
		Model:     rec.Model,
		RAM:       rec.InstalledRAM.String(),
		CPU:       rec.CPUModel,
		OS:        rec.OperatingSystem,
		FreeSpace: rec.FreeTotalDiskSpace,
	}
}

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// browse runs the search and paging shared by the page and the API.
func (s *Server) browse(r *http.Request) (string, core.BrowsePage, error) {
	q := r.URL.Query().Get("q")
	page := parseIntParam(r, "page", 1)
	result, err := s.service.Browse(q, page-1)
	return q, result, err
}

// handleBrowsePage renders the HTML browse page.
func (s *Server) handleBrowsePage(w http.ResponseWriter, r *http.Request) {
	q, result, err := s.browse(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rows := make([]templates.Row, len(result.Rows))
	for i, rec := range result.Rows {
		e := toLoginEntry(rec)
		rows[i] = templates.Row{
			Date: e.Date, Month: e.Month, Time: e.Time, User: e.User, PC: e.PC,
			Brand: e.Brand, Model: e.Model, OS: e.OS,
		}
	}

	_, filterErr := core.ParseStrictFilter(q)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = templates.BrowsePage(templates.BrowseParams{
		Query:      q,
		CanExport:  filterErr == nil,
		Page:       result.Page + 1,
		TotalPages: result.TotalPages,
		TotalRows:  result.TotalRows,
		Rows:       rows,
	}).Render(r.Context(), w)
	if err != nil {
		logging.FromContext(r.Context()).Error("render browse page", "error", err)
	}
}

// handleListLogins returns one page of the display view as JSON.
func (s *Server) handleListLogins(w http.ResponseWriter, r *http.Request) {
	q, result, err := s.browse(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries := make([]LoginEntry, len(result.Rows))
	for i, rec := range result.Rows {
		entries[i] = toLoginEntry(rec)
	}
	writeJSON(w, LoginPage{
		Query:      q,
		Page:       result.Page + 1,
		TotalPages: result.TotalPages,
		TotalRows:  result.TotalRows,
		Entries:    entries,
	})
}

// handleStats reports ingestion counters and table sizes.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Snapshot()
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, StatsResponse{
		Source:        snap.Stats.Source,
		LoadedAt:      snap.Stats.LoadedAt,
		Lines:         snap.Stats.Lines,
		Parsed:        snap.Stats.Parsed,
		Blank:         snap.Stats.Blank,
		Malformed:     snap.Stats.Malformed,
		BrowseEntries: snap.View.Len(),
		Tables:        snap.Registry.TableCounts(),
		Exports:       s.service.ExportStatus(),
	})
}

// handleDownloadExport builds the workbook for ?date= in memory and streams it.
func (s *Server) handleDownloadExport(w http.ResponseWriter, r *http.Request) {
	filter, err := core.ParseStrictFilter(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	reg, sel, err := s.service.Select(filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	release, err := s.service.AcquireExport(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer release()

	f, err := xlsx.Build(r.Context(), core.Render(reg, sel))
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %w", core.ErrExportFailed, err))
		return
	}
	defer f.Close()

	filename := core.ArtifactName(filter.Selector()) + xlsx.Extension
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(w); err != nil {
		// Headers are already sent
		logging.FromContext(r.Context()).Error("stream workbook", "file", filename, "error", err)
		return
	}
	logging.FromContext(r.Context()).Info("workbook downloaded",
		"selector", filter.Selector(),
		"logins", len(sel.Logins),
	)
}

// handleExport writes an artifact through the configured serializer.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	filter, err := core.ParseStrictFilter(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Export.Timeout)
	defer cancel()

	res, err := s.service.Export(ctx, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, ExportResponse{
		ID:         res.ID,
		Selector:   res.Selector,
		Path:       res.Path,
		Rows:       res.Rows,
		DurationMS: res.Duration.Milliseconds(),
	})
}

// handleReload re-reads the source file.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Reload(r.Context(), nil)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{
		"source":    stats.Source,
		"lines":     stats.Lines,
		"parsed":    stats.Parsed,
		"malformed": stats.Malformed,
		"blank":     stats.Blank,
	})
}

// handleHealth reports liveness and whether a snapshot is loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, err := s.service.Snapshot()
	writeJSON(w, map[string]any{
		"status": "ok",
		"loaded": err == nil,
	})
}
