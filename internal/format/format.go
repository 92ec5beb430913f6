package format

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// DefaultListFormat prints one project name per line.
const DefaultListFormat = "{{.Name}}"

// RelativeTime formats t relative to the current time.
func RelativeTime(t time.Time) string {
	return RelativeTimeFrom(t, time.Now())
}

// RelativeTimeFrom formats t relative to now: "just now", "30s ago", "5m ago",
// "3h ago", "yesterday", "2d ago", and the plain date from a week on.
func RelativeTimeFrom(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 10*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "yesterday"
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// Template renders values with a user supplied text/template. The sprig
// function map is available along with "ago" (relative time) and "csv"
// (comma joined slice).
type Template struct {
	tmpl *template.Template
}

// ParseTemplate parses text as a list format. A trailing newline is added
// when missing so each value renders on its own line.
func ParseTemplate(text string) (*Template, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultListFormat
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	funcs := sprig.TxtFuncMap()
	funcs["ago"] = RelativeTime
	funcs["csv"] = func(items []string) string { return strings.Join(items, ",") }

	tmpl, err := template.New("format").Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid format %q: %w", strings.TrimSuffix(text, "\n"), err)
	}
	return &Template{tmpl: tmpl}, nil
}

// Execute renders v once.
func (t *Template) Execute(w io.Writer, v any) error {
	return t.tmpl.Execute(w, v)
}
