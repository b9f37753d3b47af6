// Package api serves the hold lookup HTTP interface.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/banshee-data/holdmap/internal/db"
	"github.com/banshee-data/holdmap/internal/holds"
	"github.com/banshee-data/holdmap/internal/httputil"
	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/monitoring"
	"github.com/banshee-data/holdmap/internal/voice"
	"github.com/banshee-data/holdmap/internal/wall"
)

// ANSI escape codes for the access log
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Lookup log sources.
const (
	sourceAPI   = "api"
	sourceShow  = "show"
	sourceVoice = "voice"
)

// Settings is the client-facing part of the configuration.
type Settings struct {
	Presentation string        `json:"presentation"`
	DefaultHold  string        `json:"default_hold"`
	VoiceEnabled bool          `json:"voice_enabled"`
	VoiceFields  []voice.Field `json:"voice_fields"`
}

type Server struct {
	session   *wall.Session
	db        *db.DB           // optional lookup log
	announcer *voice.Announcer // optional
	settings  Settings
}

// NewServer wires the handlers. database and announcer may be nil.
func NewServer(session *wall.Session, database *db.DB, announcer *voice.Announcer, settings Settings) *Server {
	return &Server{
		session:   session,
		db:        database,
		announcer: announcer,
		settings:  settings,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/holds", s.listHolds)
	mux.HandleFunc("/api/holds/", s.showHold)
	mux.HandleFunc("/api/show", s.showOnWall)
	mux.HandleFunc("/api/wall.png", s.wallImage)
	mux.HandleFunc("/api/config", s.showConfig)
	mux.HandleFunc("/api/lookups", s.listLookups)
	return mux
}

// lookupResponse is the JSON shape of a resolved hold.
type lookupResponse struct {
	wall.Description
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func newLookupResponse(res wall.Result) lookupResponse {
	return lookupResponse{Description: res.Describe(), X: res.Placement.X, Y: res.Placement.Y}
}

func (s *Server) listHolds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	ids := s.session.Dataset().IDs()
	httputil.WriteJSONOK(w, map[string]interface{}{
		"count": len(ids),
		"holds": ids,
	})
}

func (s *Server) showHold(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	query := strings.TrimPrefix(r.URL.Path, "/api/holds/")
	if holds.NormalizeID(query) == "" {
		httputil.BadRequest(w, "missing hold id")
		return
	}

	res, err := s.session.Lookup(query)
	s.recordLookup(query, res, err, sourceAPI)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSONOK(w, newLookupResponse(res))
}

// showOnWall makes ?hold= the current highlight. An empty hold clears the
// wall; an unknown one clears it and answers 404.
func (s *Server) showOnWall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	query, source := r.FormValue("hold"), sourceShow
	if spoken := r.FormValue("spoken"); spoken != "" && query == "" {
		query, source = holds.NormalizeSpoken(spoken), sourceVoice
		// Only filler words: keep the current highlight.
		if query == "" {
			httputil.BadRequest(w, "could not understand "+strconv.Quote(spoken))
			return
		}
	}

	res, err := s.session.Show(query)
	if holds.NormalizeID(query) == "" {
		if s.announcer != nil {
			s.announcer.Stop()
		}
		httputil.WriteJSONOK(w, map[string]bool{"cleared": true})
		return
	}
	s.recordLookup(query, res, err, source)
	if err != nil {
		if s.announcer != nil && layout.IsLookup(err) {
			s.announcer.Say("hold " + holds.NormalizeID(query) + " not found")
		}
		httputil.WriteError(w, err)
		return
	}
	if s.announcer != nil {
		s.announcer.Announce(res.Describe())
	}
	httputil.WriteJSONOK(w, newLookupResponse(res))
}

// wallImage returns the shared wall, or a one-off rendering of ?hold=.
func (s *Server) wallImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	hold := r.URL.Query().Get("hold")
	if hold == "" {
		httputil.WritePNG(w, s.session.Snapshot())
		return
	}
	img, _, err := s.session.RenderImage(hold)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WritePNG(w, img)
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	m := s.session.Mapper()
	httputil.WriteJSONOK(w, map[string]interface{}{
		"layout":        s.session.Layout().Name,
		"width":         m.Width(),
		"height":        m.Height(),
		"presentation":  s.settings.Presentation,
		"default_hold":  s.settings.DefaultHold,
		"voice_enabled": s.settings.VoiceEnabled,
		"voice_fields":  s.settings.VoiceFields,
	})
}

func (s *Server) listLookups(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			httputil.BadRequest(w, "limit must be an integer between 1 and 1000")
			return
		}
		limit = n
	}
	if s.db == nil {
		httputil.WriteJSONOK(w, []db.Lookup{})
		return
	}
	lookups, err := s.db.RecentLookups(limit)
	if err != nil {
		httputil.InternalServerError(w, "failed to read lookups")
		return
	}
	httputil.WriteJSONOK(w, lookups)
}

// recordLookup appends to the lookup log. Failures are logged, not returned:
// the log never blocks a lookup.
func (s *Server) recordLookup(query string, res wall.Result, lookupErr error, source string) {
	if s.db == nil {
		return
	}
	if _, err := s.db.RecordLookup(query, res.Hold.ID, lookupErr == nil, source); err != nil {
		monitoring.L().Warn("failed to record lookup", zap.String("query", query), zap.Error(err))
	}
}
