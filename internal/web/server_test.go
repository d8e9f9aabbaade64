package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/hwinventory/internal/config"
	"github.com/JonMunkholm/hwinventory/internal/core"
	_ "github.com/JonMunkholm/hwinventory/internal/core/tables"
)

const sampleLog = `2024.01.05;08:00:00;Laptop;PC-1;alice;Acme;X1;16GB;Intel i7;i7-8650U;Windows 10;2020.01.01;SSD;100GB;
2024.02.10;09:15:00;Laptop;PC-1;alice;Acme;X1;16GB;Intel i7;i7-8650U;Windows 10;2020.01.01;SSD;90GB;
2024.02.11;10:00:00;Desktop;PC-2;bob;Globex;G5;8GB;AMD Ryzen;R5-3600;Ubuntu;2021.05.05;HDD;500GB;note
not-a-date;broken
`

type recordingSerializer struct {
	names []string
}

func (s *recordingSerializer) Write(_ context.Context, name string, _ []core.Table) (string, error) {
	s.names = append(s.names, name)
	return "/out/" + name, nil
}

func newTestServer(t *testing.T, load bool, mutate func(*config.Config)) (*Server, *recordingSerializer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hw.txt")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Defaults()
	cfg.Source.Path = path
	if mutate != nil {
		mutate(cfg)
	}

	ser := &recordingSerializer{}
	svc := core.NewService(cfg, ser)
	if load {
		if _, err := svc.Reload(context.Background(), nil); err != nil {
			t.Fatalf("Reload() error = %v", err)
		}
	}
	return NewServer(svc, cfg), ser
}

func do(s *Server, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, false, nil)
	rec := do(s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	json.NewDecoder(rec.Body).Decode(&body)
	if body["loaded"] != false {
		t.Errorf("loaded = %v, want false before reload", body["loaded"])
	}
}

func TestListLogins_NotLoaded(t *testing.T) {
	s, _ := newTestServer(t, false, nil)
	rec := do(s, http.MethodGet, "/api/logins", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body ErrorResponse
	json.NewDecoder(rec.Body).Decode(&body)
	if body.Code != "LOAD001" {
		t.Errorf("code = %q, want LOAD001", body.Code)
	}
}

func TestListLogins(t *testing.T) {
	s, _ := newTestServer(t, true, nil)

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},        // latest per (user, pc)
		{"2024-02", 2}, // both winners are in February
		{"2024-01", 0}, // January entry was superseded
		{"2024-02-11", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(s, http.MethodGet, "/api/logins?q="+tt.query, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var page LoginPage
			if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
				t.Fatal(err)
			}
			if page.TotalRows != tt.want {
				t.Errorf("TotalRows = %d, want %d", page.TotalRows, tt.want)
			}
			if page.Page != 1 {
				t.Errorf("Page = %d, want 1", page.Page)
			}
		})
	}
}

func TestStats(t *testing.T) {
	s, _ := newTestServer(t, true, nil)
	rec := do(s, http.MethodGet, "/api/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.Parsed != 3 || stats.Malformed != 1 {
		t.Errorf("parsed/malformed = %d/%d, want 3/1", stats.Parsed, stats.Malformed)
	}
	if stats.Tables[core.SheetLogin] != 3 || stats.Tables[core.SheetPC] != 2 {
		t.Errorf("tables = %v", stats.Tables)
	}
}

func TestBrowsePage(t *testing.T) {
	s, _ := newTestServer(t, true, nil)
	rec := do(s, http.MethodGet, "/?q=2024-02", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"PC-1", "PC-2", `value="2024-02"`, "/api/export?date=2024-02"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestBrowsePage_ExportSelectionLink(t *testing.T) {
	s, _ := newTestServer(t, true, nil)

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "month", query: "2024-02", want: true},
		{name: "full date", query: "2024-02-10", want: true},
		{name: "year prefix", query: "2024", want: false},
		{name: "free text", query: "feb", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodGet, "/?q="+tt.query, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if got := strings.Contains(rec.Body.String(), "Export selection"); got != tt.want {
				t.Errorf("Export selection link shown = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDownloadExport(t *testing.T) {
	s, _ := newTestServer(t, true, nil)
	rec := do(s, http.MethodGet, "/api/export?date=2024-02", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != xlsxContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "hw_relational_2024-02.xlsx") {
		t.Errorf("Content-Disposition = %q", got)
	}
	// xlsx is a zip archive
	if !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Error("body is not a zip archive")
	}
}

func TestDownloadExport_InvalidFilter(t *testing.T) {
	s, _ := newTestServer(t, true, nil)
	rec := do(s, http.MethodGet, "/api/export?date=garbage", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestExport_UsesConfiguredSerializer(t *testing.T) {
	s, ser := newTestServer(t, true, nil)
	rec := do(s, http.MethodPost, "/api/export?date=2024-02-11", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res ExportResponse
	json.NewDecoder(rec.Body).Decode(&res)
	if res.Rows[core.SheetLogin] != 1 {
		t.Errorf("login rows = %d, want 1", res.Rows[core.SheetLogin])
	}
	if len(ser.names) != 1 || ser.names[0] != "hw_relational_2024-02-11" {
		t.Errorf("serializer names = %v", ser.names)
	}
}

func TestReload_RequiresAPIKey(t *testing.T) {
	s, _ := newTestServer(t, false, func(c *config.Config) {
		c.Security.RequireAPIKey = true
		c.Security.APIKeys = []string{"secret"}
	})

	if rec := do(s, http.MethodPost, "/api/reload", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("without key: status = %d, want 401", rec.Code)
	}

	rec := do(s, http.MethodPost, "/api/reload", map[string]string{"X-API-Key": "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("with key: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec := do(s, http.MethodGet, "/api/stats", nil); rec.Code != http.StatusOK {
		t.Errorf("stats after reload: status = %d", rec.Code)
	}
}
