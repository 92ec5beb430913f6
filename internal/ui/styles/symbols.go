package styles

import "github.com/charmbracelet/x/ansi"

// Symbols holds the marker set for project rows
type Symbols struct {
	Favorite string
	Archived string
	Tests    string
	CI       string
	Git      string
}

var defaultSymbols = Symbols{
	Favorite: "★",
	Archived: "▣",
	Tests:    "✓",
	CI:       "⚙",
	Git:      "±",
}

var nerdfontSymbols = Symbols{
	Favorite: "\uf005", // nf-fa-star
	Archived: "\uf187", // nf-fa-archive
	Tests:    "\uf0c3", // nf-fa-flask
	CI:       "\uf013", // nf-fa-cog
	Git:      "\ue702", // nf-dev-git
}

var (
	useNerdfont    bool
	currentSymbols = defaultSymbols
)

// SetNerdfont enables or disables nerd font symbols
func SetNerdfont(enabled bool) {
	useNerdfont = enabled
	if enabled {
		currentSymbols = nerdfontSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// NerdfontEnabled returns whether nerd font symbols are enabled
func NerdfontEnabled() bool {
	return useNerdfont
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// Markers returns the compact marker column for a project: favorite,
// archived, tests and CI, in that order. Absent markers are omitted.
func Markers(favorite, archived, hasTests, hasCI bool) string {
	var out string
	if favorite {
		out += AccentStyle.Render(currentSymbols.Favorite)
	}
	if archived {
		out += MutedStyle.Render(currentSymbols.Archived)
	}
	if hasTests {
		out += SuccessStyle.Render(currentSymbols.Tests)
	}
	if hasCI {
		out += SuccessStyle.Render(currentSymbols.CI)
	}
	return out
}

// Hyperlink wraps text in an OSC 8 link to url. An empty url returns text.
func Hyperlink(text, url string) string {
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}
