// Package ui exposes the titer pipeline over HTTP.
package ui

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"serovis/domain/core"
	"serovis/domain/titer"
	"serovis/internal"
)

// App represents the HTTP application
type App struct {
	router *chi.Mux
	log    *internal.Logger
}

// NewApp creates the HTTP application with its routes and middleware.
func NewApp(log *internal.Logger) *App {
	if log == nil {
		log = internal.NewDefaultLogger()
	}
	app := &App{router: chi.NewRouter(), log: log}

	app.router.Use(middleware.Logger)
	app.router.Use(middleware.Recoverer)
	app.router.Use(middleware.Compress(5))

	app.router.Get("/healthz", app.handleHealth)
	app.router.Post("/api/render", app.handleRender)

	return app
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// tableDTO mirrors titer.Table on the wire.
type tableDTO struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// renderRequest is the POST /api/render payload: per-strain tables
// plus pipeline options.
type renderRequest struct {
	Tables  map[string]tableDTO `json:"tables"`
	Options titer.Options       `json:"options"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender runs the pipeline and returns the ordered chart-spec
// mapping as JSON. Rendering to pixels stays client-side or with the
// CLI; this endpoint serves specs only.
func (a *App) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	tables := make(titer.StrainTables, len(req.Tables))
	for strain, t := range req.Tables {
		table := titer.Table{Columns: t.Columns}
		for _, row := range t.Rows {
			table.Rows = append(table.Rows, titer.Row(row))
		}
		tables[strain] = table
	}

	specs, err := titer.BuildCharts(tables, req.Options)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsConfigurationError(err) || core.IsInsufficientColorsError(err) ||
			errors.Is(err, core.ErrEmptyInput) {
			status = http.StatusUnprocessableEntity
		}
		a.log.Warn("render failed: %v", err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, specs)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
