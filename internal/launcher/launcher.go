package launcher

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/raphi011/pdash/internal/cmd"
	"github.com/raphi011/pdash/internal/forge"
	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/scanner"
	"github.com/raphi011/pdash/internal/settings"
)

// Application names accepted by Open.
const (
	AppClaude   = "claude"
	AppTerminal = "terminal"
	AppVSCode   = "vscode"
	AppFinder   = "finder"
	AppGitHub   = "github"
)

// Apps lists the supported application names in display order.
var Apps = []string{AppClaude, AppTerminal, AppVSCode, AppFinder, AppGitHub}

// Request asks for a project to be opened in App. URL is only used by the
// github application.
type Request struct {
	Path string `json:"path"`
	App  string `json:"app"`
	URL  string `json:"url,omitempty"`
}

// Result reports the outcome of Open.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// StartFunc launches a detached process. It matches cmd.Start.
type StartFunc func(ctx context.Context, dir, name string, args ...string) error

// Launcher opens projects using the apps configured in settings.
type Launcher struct {
	terminalApp   string
	editorCommand string
	goos          string
	start         StartFunc
}

// New returns a Launcher for the current platform.
func New(st settings.Settings) *Launcher {
	return &Launcher{
		terminalApp:   st.TerminalApp,
		editorCommand: st.EditorCommand,
		goos:          runtime.GOOS,
		start:         cmd.Start,
	}
}

// ForProject builds a Request for p. For the github app the URL is derived
// from the project's git remote when it has one.
func ForProject(p scanner.Project, app string) Request {
	req := Request{Path: p.Path, App: app}
	if app == AppGitHub && p.GitRemote != nil {
		if u, ok := forge.BrowseURL(*p.GitRemote); ok {
			req.URL = u
		}
	}
	return req
}

// Open launches req.App. Unknown applications and missing inputs yield an
// unsuccessful Result without starting anything.
func (l *Launcher) Open(ctx context.Context, req Request) Result {
	if !slices.Contains(Apps, req.App) {
		return fail("Unknown application: %s", req.App)
	}
	if req.App != AppGitHub && strings.TrimSpace(req.Path) == "" {
		return fail("Project path not provided")
	}

	log.FromContext(ctx).Debug("opening project", "app", req.App, "path", req.Path)

	switch req.App {
	case AppClaude, AppTerminal:
		if err := l.openTerminal(ctx, req.Path); err != nil {
			return fail("Failed to open %s: %v", l.terminalApp, err)
		}
	case AppVSCode:
		fields := strings.Fields(l.editorCommand)
		if len(fields) == 0 {
			return fail("Failed to open editor: no editor command configured")
		}
		args := append(fields[1:], req.Path)
		if err := l.start(ctx, req.Path, fields[0], args...); err != nil {
			return fail("Failed to open editor: %v", err)
		}
	case AppFinder:
		if err := l.openWithSystem(ctx, req.Path); err != nil {
			return fail("Failed to open folder: %v", err)
		}
	case AppGitHub:
		if strings.TrimSpace(req.URL) == "" {
			return fail("GitHub URL not provided")
		}
		if err := l.openWithSystem(ctx, req.URL); err != nil {
			return fail("Failed to open GitHub: %v", err)
		}
	}
	return Result{Success: true}
}

func (l *Launcher) openTerminal(ctx context.Context, path string) error {
	if l.terminalApp == "" {
		return fmt.Errorf("no terminal app configured")
	}
	if l.goos == "darwin" {
		return l.start(ctx, "", "open", "-a", l.terminalApp, path)
	}
	return l.start(ctx, path, l.terminalApp)
}

// openWithSystem hands target to the platform's default opener.
func (l *Launcher) openWithSystem(ctx context.Context, target string) error {
	switch l.goos {
	case "darwin":
		return l.start(ctx, "", "open", target)
	case "windows":
		return l.start(ctx, "", "explorer", target)
	default:
		return l.start(ctx, "", "xdg-open", target)
	}
}

func fail(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}
