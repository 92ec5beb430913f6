package server

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/raphi011/pdash/internal/launcher"
	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/query"
	"github.com/raphi011/pdash/internal/settings"
	"github.com/raphi011/pdash/internal/tags"
)

// filterFromQuery builds the list filter from the settings defaults and the
// request's query parameters.
func filterFromQuery(st settings.Settings, q map[string][]string) (query.Filter, error) {
	f := query.DefaultFilter(st)
	get := func(key string) string {
		if v := q[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	f.Search = get("search")
	f.Progress = get("progress")
	for _, c := range q["category"] {
		for part := range strings.SplitSeq(c, ",") {
			if part = strings.TrimSpace(part); part != "" {
				f.Categories = append(f.Categories, part)
			}
		}
	}

	for key, dst := range map[string]*bool{"favorite": &f.Favorite, "archived": &f.IncludeArchived} {
		raw := get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, fmt.Errorf("%w: %s must be true or false", errBadRequest, key)
		}
		*dst = v
	}
	return f, nil
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := filterFromQuery(s.settings.Load(ctx), r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := s.projects.List(ctx, f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// List populated the cache, so this does not scan again
	snap, err := s.projects.Snapshot(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.FromContext(ctx).Debug("serving scan", "age", snap.Age().Round(time.Second), "matched", len(entries))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"count":     len(entries),
		"projects":  entries,
		"scannedAt": snap.ScannedAt,
	})
}

func (s *Server) scanProjects(w http.ResponseWriter, r *http.Request) {
	n, err := s.projects.Refresh(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"scanned": n,
		"message": "Projects rescanned successfully",
	})
}

func (s *Server) openProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req launcher.Request
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.App == "" {
		writeError(w, r, fmt.Errorf("%w: app is required", errBadRequest))
		return
	}
	if req.Path == "" && req.URL == "" {
		writeError(w, r, fmt.Errorf("%w: project path or URL is required", errBadRequest))
		return
	}

	writeJSON(w, http.StatusOK, s.opener(s.settings.Load(ctx)).Open(ctx, req))
}

func (s *Server) readme(w http.ResponseWriter, r *http.Request) {
	content, err := s.projects.Readme(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "content": content})
}

func (s *Server) availableTags(w http.ResponseWriter, r *http.Request) {
	av := s.tags.Available(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"definitions": av.Definitions,
		"colors":      av.Colors,
	})
}

func (s *Server) getProjectTags(w http.ResponseWriter, r *http.Request) {
	a := s.tags.GetProjectTags(r.Context(), r.PathValue("name"))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "tags": a})
}

func (s *Server) setProjectTags(w http.ResponseWriter, r *http.Request) {
	a := tags.DefaultAssignment()
	if err := decode(w, r, &a); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := s.tags.SetProjectTags(r.Context(), r.PathValue("name"), a)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "tags": saved})
}

type manageRequest struct {
	Action string `json:"action"`
	Tag    string `json:"tag"`
}

func (s *Server) manageTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req manageRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var (
		av  tags.Available
		err error
	)
	switch req.Action {
	case "add":
		av, err = s.tags.AddCategory(ctx, req.Tag)
	case "delete":
		av, err = s.tags.DeleteCategory(ctx, req.Tag)
	default:
		err = fmt.Errorf("%w: invalid action %q", errBadRequest, req.Action)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"definitions": av.Definitions,
		"colors":      av.Colors,
	})
}

type colorRequest struct {
	Tag   string `json:"tag"`
	Color string `json:"color"`
}

func (s *Server) updateColor(w http.ResponseWriter, r *http.Request) {
	var req colorRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	colors, err := s.tags.UpdateColor(r.Context(), req.Tag, req.Color)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "colors": colors})
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "settings": s.settings.Load(r.Context())})
}

// updateSettings merges the posted fields over the current settings. A
// changed scan path or exclusion list invalidates the cached scan.
func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current := s.settings.Load(ctx)
	next := current
	next.ExcludedFolders = slices.Clone(current.ExcludedFolders)
	if err := decode(w, r, &next); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.settings.Save(next); err != nil {
		writeError(w, r, err)
		return
	}

	if next.ScanPath != current.ScanPath || !slices.Equal(next.ExcludedFolders, current.ExcludedFolders) {
		s.projects.Invalidate()
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "settings": s.settings.Load(ctx)})
}
