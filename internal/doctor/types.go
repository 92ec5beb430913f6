package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryDocuments represents persisted documents that fail to parse.
	CategoryDocuments IssueCategory = "documents"
	// CategoryColors represents mismatches between categories and colors.
	CategoryColors IssueCategory = "colors"
	// CategoryAssignments represents project assignments referencing
	// unknown tags or projects.
	CategoryAssignments IssueCategory = "assignments"
	// CategorySettings represents unusable settings.
	CategorySettings IssueCategory = "settings"
)

// categoryOrder is the order issues are reported in.
var categoryOrder = []IssueCategory{CategoryDocuments, CategorySettings, CategoryColors, CategoryAssignments}

var categoryNames = map[IssueCategory]string{
	CategoryDocuments:   "Document issues",
	CategorySettings:    "Settings issues",
	CategoryColors:      "Color issues",
	CategoryAssignments: "Assignment issues",
}

// FixAssignColor gives a registered category a palette color.
const FixAssignColor = "assign_color"

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        `json:"key"`                 // tag, project name or file
	Description string        `json:"description"`         // human-readable description
	FixAction   string        `json:"fixAction,omitempty"` // what --fix would do, empty if informational
	Category    IssueCategory `json:"category"`
}

// Fixable reports whether --fix can resolve the issue.
func (i Issue) Fixable() bool {
	return i.FixAction != ""
}

// Report is the outcome of a check run.
type Report struct {
	Projects    int     `json:"projects"`    // projects found by the scan
	Categories  int     `json:"categories"`  // registered categories
	Assignments int     `json:"assignments"` // stored project assignments
	Issues      []Issue `json:"issues"`
}

// Fixable returns the issues --fix can resolve.
func (r Report) Fixable() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Fixable() {
			out = append(out, issue)
		}
	}
	return out
}
