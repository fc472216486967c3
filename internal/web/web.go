// Package web serves the dashboard UI and its JSON API on top of the
// latest schedule snapshot.
package web

import (
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ccdash/internal/config"
	"ccdash/internal/ics"
	appLog "ccdash/internal/log"
	"ccdash/internal/model"
	"ccdash/internal/notify"
	"ccdash/internal/schedule"
)

// RefreshFunc forces a reload of the schedule file into the store.
type RefreshFunc func(ctx context.Context) error

// Server provides the dashboard HTTP API:
//
//	GET  /health
//	GET  /api/schedule
//	GET  /api/upcoming
//	GET  /api/reminders
//	POST /api/refresh
//	GET  /export/all.ics
//	GET  /export/filtered.ics
//	GET  /            (embedded static UI)
type Server struct {
	cfg     *config.Config
	store   *Store
	refresh RefreshFunc
	mux     *http.ServeMux

	// now is swappable for tests; handlers never call time.Now directly.
	now func() time.Time
}

//go:embed all:static
var embeddedStatic embed.FS

// NewServer constructs a new Server.
func NewServer(cfg *config.Config, store *Store, refresh RefreshFunc) *Server {
	s := &Server{
		cfg:     cfg,
		store:   store,
		refresh: refresh,
		mux:     http.NewServeMux(),
		now:     func() time.Time { return time.Now().In(schedule.Zone) },
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Treat empty username or password as disabled.
	if s.cfg.BasicAuth.Username == "" || s.cfg.BasicAuth.Password == "" {
		return false
	}
	return true
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /health stays reachable without credentials.
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="CCDash", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/schedule", s.handleSchedule)
	s.mux.HandleFunc("/api/upcoming", s.handleUpcoming)
	s.mux.HandleFunc("/api/reminders", s.handleReminders)
	s.mux.HandleFunc("/api/refresh", s.handleRefresh)
	s.mux.HandleFunc("/export/all.ics", s.handleExportAll)
	s.mux.HandleFunc("/export/filtered.ics", s.handleExportFiltered)

	// Embedded static UI; everything that is not an API path falls
	// through to it.
	s.mux.Handle("/", s.staticFileServer())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// criteriaFromQuery reads the repeatable filter parameters. Absent
// parameters leave the corresponding column unrestricted.
func criteriaFromQuery(q map[string][]string) schedule.Criteria {
	return schedule.Criteria{
		Months:    q["month"],
		Weeks:     q["week"],
		Locations: q["location"],
		Teams:     q["team"],
		Modes:     q["mode"],
	}
}

// scheduleResponse is the JSON shape for /api/schedule.
type scheduleResponse struct {
	Rows           []model.Row      `json:"rows"`
	Options        schedule.Options `json:"options"`
	MissingColumns []string         `json:"missing_columns,omitempty"`
	LoadedAt       time.Time        `json:"loaded_at"`
	LastError      string           `json:"last_error,omitempty"`
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Get()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "schedule not loaded yet")
		return
	}

	crit := criteriaFromQuery(r.URL.Query())
	rows := schedule.Filter(snap.Rows, crit)

	writeJSON(w, http.StatusOK, scheduleResponse{
		Rows:           rows,
		Options:        schedule.Distinct(snap.Rows),
		MissingColumns: snap.MissingColumns,
		LoadedAt:       snap.LoadedAt,
		LastError:      snap.LastError,
	})
}

// upcomingResponse is the JSON shape for /api/upcoming.
type upcomingResponse struct {
	Rows           []model.Row `json:"rows"`
	Next           *model.Row  `json:"next,omitempty"`
	Now            time.Time   `json:"now"`
	HorizonMinutes int         `json:"horizon_minutes"`
}

// handleUpcoming returns sessions inside the (now, now+horizon] window.
//
// GET /api/upcoming?minutes=30 — horizon in minutes, default 1440 (one
// day). Filter parameters apply as on /api/schedule.
func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Get()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "schedule not loaded yet")
		return
	}

	minutes := parseIntDefault(r.URL.Query().Get("minutes"), 24*60)
	if minutes <= 0 {
		minutes = 24 * 60
	}
	horizon := time.Duration(minutes) * time.Minute

	now := s.now()
	rows := schedule.Filter(snap.Rows, criteriaFromQuery(r.URL.Query()))

	writeJSON(w, http.StatusOK, upcomingResponse{
		Rows:           schedule.UpcomingBetween(rows, now, horizon),
		Next:           schedule.Next(rows, now),
		Now:            now,
		HorizonMinutes: minutes,
	})
}

func (s *Server) handleReminders(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Get()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "schedule not loaded yet")
		return
	}

	rows := schedule.Filter(snap.Rows, criteriaFromQuery(r.URL.Query()))
	writeJSON(w, http.StatusOK, notify.Events(rows))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	if s.refresh == nil {
		writeError(w, http.StatusNotImplemented, "refresh not available")
		return
	}

	if err := s.refresh(r.Context()); err != nil {
		appLog.Error("manual refresh failed", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	snap := s.store.Get()
	writeJSON(w, http.StatusOK, map[string]any{
		"loaded_at": snap.LoadedAt,
		"rows":      len(snap.Rows),
	})
}

func (s *Server) handleExportAll(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Get()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "schedule not loaded yet")
		return
	}
	s.serveCalendar(w, snap.Rows, s.cfg.CalendarName+" — All", s.cfg.ExportBasename+"_All.ics")
}

func (s *Server) handleExportFiltered(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Get()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "schedule not loaded yet")
		return
	}
	rows := schedule.Filter(snap.Rows, criteriaFromQuery(r.URL.Query()))
	s.serveCalendar(w, rows, s.cfg.CalendarName+" — Filtered", s.cfg.ExportBasename+"_Filtered.ics")
}

func (s *Server) serveCalendar(w http.ResponseWriter, rows []model.Row, calName, filename string) {
	doc := ics.Encode(rows, calName)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// staticFileServer serves the embedded dashboard page from
// internal/web/static.
func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		appLog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "static UI not available", http.StatusServiceUnavailable)
		})
	}

	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Never serve HTML for unknown API paths.
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			http.NotFound(w, r)
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
