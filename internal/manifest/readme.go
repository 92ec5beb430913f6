package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
)

// readmeNames are tried in order by ReadReadme.
var readmeNames = []string{"README.md", "readme.md", "README.markdown", "README"}

// ReadReadme returns the raw README of dir. ok is false when there is none.
func ReadReadme(dir string) (content string, ok bool, err error) {
	for _, name := range readmeNames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(data), true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", false, err
		}
	}
	return "", false, nil
}

// ReadmeDescription derives a one-line description from README markdown.
//
// Blank lines are ignored. Every heading line replaces the description
// with its text (leading '#' removed). The first non-heading line longer
// than ten characters that follows a heading is appended, and scanning
// stops. Lines before the first heading are never used. Front matter is
// skipped. The result is at most 150 characters and may be empty.
func ReadmeDescription(content string) string {
	var (
		desc    string
		heading bool
	)

	for _, line := range strings.Split(stripFrontMatter(content), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			heading = true
			desc = strings.TrimSpace(strings.TrimLeft(line, "#"))
			continue
		}

		if heading && utf8.RuneCountInString(line) > 10 {
			desc = strings.TrimSpace(desc + " " + strings.TrimSpace(line))
			break
		}
	}

	return Truncate(desc, maxDescription)
}

func stripFrontMatter(content string) string {
	var matter map[string]any
	rest, err := frontmatter.Parse(strings.NewReader(content), &matter)
	if err != nil {
		return content
	}
	return string(rest)
}
