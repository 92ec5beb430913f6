package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/pdash/internal/cache"
	"github.com/raphi011/pdash/internal/config"
	"github.com/raphi011/pdash/internal/history"
	"github.com/raphi011/pdash/internal/query"
	"github.com/raphi011/pdash/internal/scanner"
	"github.com/raphi011/pdash/internal/settings"
	"github.com/raphi011/pdash/internal/storage"
	"github.com/raphi011/pdash/internal/tags"
	"github.com/raphi011/pdash/internal/ui/progress"
)

// env bundles the stores and services a command works with.
type env struct {
	cfg      *config.Config
	settings *settings.Store
	tags     *tags.Manager
	projects *query.Service
	history  string
}

// loadEnv opens the stores in the configured data directory.
func loadEnv(ctx context.Context) (*env, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}

	dir, err := storage.DataDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open data dir: %w", err)
	}

	st := settings.NewStore(dir, settings.Default(cfg.Scan.DefaultPath))
	mgr := tags.NewManager(tags.NewStore(dir))
	svc := query.New(scanner.New(cfg.Scan.Concurrency), mgr.Store(), st, &cache.Projects{})

	return &env{cfg: cfg, settings: st, tags: mgr, projects: svc, history: history.Path(dir)}, nil
}

// find resolves a project by name.
func (e *env) find(ctx context.Context, name string) (query.Entry, error) {
	return e.projects.Find(ctx, name)
}

// refresh rescans, drawing a progress bar when stderr is a terminal.
func (e *env) refresh(ctx context.Context) (int, error) {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return e.projects.Refresh(ctx)
	}

	bar := progress.New("Scanning projects")
	bar.Start()
	defer bar.Stop()

	return e.projects.Refresh(scanner.WithProgress(ctx, bar.Report))
}

// errNotInteractive is returned when a prompt is needed without a terminal.
var errNotInteractive = errors.New("interactive mode requires a terminal")

// isInteractive reports whether stdin and stderr are both terminals, which
// the pickers and forms need.
func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())
}
