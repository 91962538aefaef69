package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/daylio-dash/daylio-dash/internal/api/recovery"
	"github.com/daylio-dash/daylio-dash/internal/api/respond"
	"github.com/daylio-dash/daylio-dash/internal/core/journal"
)

// Options tunes the router.
type Options struct {
	// MaxImportBytes caps POST /api/import bodies.
	MaxImportBytes int64
	// StaticDir, when set, is served for every path no API route claims.
	StaticDir string
}

// NewRouter wires every route onto a gorilla/mux router.
func NewRouter(svc *journal.Service, health ServiceHealth, opts Options, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares; recovery sits inside the logger so panics are logged as 500s.
	router.Use(RequestLogger(log))
	router.Use(recovery.Middleware(log))

	// mux skips middlewares when no route matches, so these carry their own.
	router.NotFoundHandler = RequestLogger(log)(http.HandlerFunc(notFound))
	router.MethodNotAllowedHandler = RequestLogger(log)(http.HandlerFunc(methodNotAllowed))

	if opts.MaxImportBytes <= 0 {
		opts.MaxImportBytes = 32 << 20
	}
	journalHandler := NewJournalHandler(svc, opts.MaxImportBytes)
	healthHandler := NewHealthHandler(health)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Dashboard views
	router.HandleFunc("/vital", journalHandler.GetVital).Methods("GET")
	router.HandleFunc("/entries", journalHandler.GetEntries).Methods("GET")
	router.HandleFunc("/structured_data", journalHandler.GetStructuredData).Methods("GET")
	router.HandleFunc("/metadata", journalHandler.GetMetadata).Methods("GET")

	// Entries and lookups
	router.HandleFunc("/api/entries", journalHandler.CreateEntry).Methods("POST")
	router.HandleFunc("/api/entries", journalHandler.ListEntries).Methods("GET")
	router.HandleFunc("/api/moods", journalHandler.ListMoods).Methods("GET")
	router.HandleFunc("/api/tags", journalHandler.ListTags).Methods("GET")
	router.HandleFunc("/api/summary", journalHandler.GetSummary).Methods("GET")

	// Backup files
	router.HandleFunc("/api/import", journalHandler.ImportBackup).Methods("POST")
	router.HandleFunc("/api/export", journalHandler.ExportBackup).Methods("GET")

	if opts.StaticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(opts.StaticDir))).Methods("GET", "HEAD")
	}

	return router
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	respond.WriteError(w, http.StatusNotFound, "Not Found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respond.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
