// Package server exposes the dashboard operations as a JSON API for the
// browser UI.
//
// All responses carry a "success" field. Failures add a human-readable
// "message"; a refused tag deletion also lists the blocking projects.
//
// # Endpoints
//
//	GET  /api/projects                 list, filtered by query parameters
//	POST /api/projects/scan            rescan, returns the project count
//	POST /api/projects/open            open a project in an application
//	GET  /api/projects/{name}/readme   raw README text
//	GET  /api/tags/available           tag definitions and colors
//	GET  /api/tags/{name}              tag assignment of one project
//	POST /api/tags/{name}              replace the tag assignment
//	POST /api/tags/manage              add or delete a category tag
//	POST /api/tags/colors              set a category color
//	GET  /api/settings                 current settings
//	POST /api/settings                 update settings
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/raphi011/pdash/internal/launcher"
	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/query"
	"github.com/raphi011/pdash/internal/settings"
	"github.com/raphi011/pdash/internal/tags"
)

const shutdownTimeout = 5 * time.Second

// Opener launches applications for a project.
type Opener interface {
	Open(ctx context.Context, req launcher.Request) launcher.Result
}

// Server serves the JSON API.
type Server struct {
	projects *query.Service
	tags     *tags.Manager
	settings *settings.Store
	// opener builds the launcher for the settings current at request time.
	opener func(settings.Settings) Opener
}

// New creates a Server.
func New(projects *query.Service, mgr *tags.Manager, st *settings.Store) *Server {
	return &Server{
		projects: projects,
		tags:     mgr,
		settings: st,
		opener: func(s settings.Settings) Opener {
			return launcher.New(s)
		},
	}
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/projects", s.listProjects)
	mux.HandleFunc("POST /api/projects/scan", s.scanProjects)
	mux.HandleFunc("POST /api/projects/open", s.openProject)
	mux.HandleFunc("GET /api/projects/{name}/readme", s.readme)

	mux.HandleFunc("GET /api/tags/available", s.availableTags)
	mux.HandleFunc("POST /api/tags/manage", s.manageTag)
	mux.HandleFunc("POST /api/tags/colors", s.updateColor)
	mux.HandleFunc("GET /api/tags/{name}", s.getProjectTags)
	mux.HandleFunc("POST /api/tags/{name}", s.setProjectTags)

	mux.HandleFunc("GET /api/settings", s.getSettings)
	mux.HandleFunc("POST /api/settings", s.updateSettings)

	return withCORS(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. ready, when non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	l := log.FromContext(ctx)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if ready != nil {
		ready(ln.Addr())
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	l.Debug("shutting down", "addr", ln.Addr().String())
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// withCORS allows the UI dev server on another port to call the API.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		start := time.Now()
		next.ServeHTTP(w, r)
		log.FromContext(r.Context()).Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start).Round(time.Millisecond))
	})
}
