package manifest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/raphi011/pdash/internal/log"
)

const (
	// Placeholder is the description of projects that declare none.
	Placeholder = "no description"

	maxDescription = 150
	maxDeps        = 10
)

// Result is the metadata derived from one project directory.
type Result struct {
	Types       []string
	Description string
	TechStack   []string
	HasTests    bool
	HasCI       bool
}

// Manifest is what a single manifest file declares.
type Manifest struct {
	Description  string
	Dependencies []string
	// TestScript is set when the manifest declares a conventional test entry point.
	TestScript bool
}

type detector struct {
	file  string
	kind  string
	parse func([]byte) (Manifest, error)
}

var detectors = []detector{
	{file: "package.json", kind: "nodejs", parse: ParsePackageJSON},
	{file: "pyproject.toml", kind: "python-poetry", parse: ParsePyproject},
	{file: "requirements.txt", kind: "python-pip", parse: ParseRequirements},
	{file: "go.mod", kind: "go", parse: ParseGoMod},
	{file: "Cargo.toml", kind: "rust", parse: ParseCargo},
	{file: "pubspec.yaml", kind: "dart", parse: ParsePubspec},
}

var (
	ciPaths  = []string{filepath.Join(".github", "workflows"), ".gitlab-ci.yml", ".travis.yml"}
	testDirs = []string{"test", "tests", "__tests__", "spec"}
)

// Extract inspects the manifests in dir. It never fails; unreadable or
// malformed files are logged and skipped.
func Extract(ctx context.Context, dir string) Result {
	l := log.FromContext(ctx)

	res := Result{
		Types:     []string{},
		TechStack: []string{},
	}

	for _, d := range detectors {
		path := filepath.Join(dir, d.file)
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				l.Debug("skipping unreadable manifest", "path", path, "err", err)
			}
			continue
		}

		m, err := d.parse(data)
		if err != nil {
			l.Printf("Warning: ignoring malformed %s in %s: %v\n", d.file, filepath.Base(dir), err)
			continue
		}

		res.Types = append(res.Types, d.kind)
		if res.Description == "" && m.Description != "" {
			res.Description = m.Description
		}
		res.TechStack = append(res.TechStack, firstN(m.Dependencies, maxDeps)...)
		res.HasTests = res.HasTests || m.TestScript
	}

	if res.Description == "" {
		if content, ok, err := ReadReadme(dir); err != nil {
			l.Debug("skipping unreadable README", "dir", dir, "err", err)
		} else if ok {
			res.Description = ReadmeDescription(content)
		}
	}
	res.Description = Truncate(res.Description, maxDescription)
	if res.Description == "" {
		res.Description = Placeholder
	}

	res.HasCI = anyExists(dir, ciPaths)
	if !res.HasTests {
		res.HasTests = anyExists(dir, testDirs)
	}

	return res
}

// Truncate shortens s to at most n characters (runes).
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func anyExists(dir string, names []string) bool {
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
