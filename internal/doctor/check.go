package doctor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/raphi011/pdash/internal/settings"
	"github.com/raphi011/pdash/internal/storage"
	"github.com/raphi011/pdash/internal/tags"
)

// Input is the state doctor inspects.
type Input struct {
	DataDir     string
	Available   tags.Available
	Assignments tags.Assignments
	Settings    settings.Settings
	// Projects are the names found by the current scan. Nil skips the
	// orphan assignment check.
	Projects []string
}

// Check inspects in and returns a report. It never modifies anything.
func Check(in Input) Report {
	r := Report{
		Projects:    len(in.Projects),
		Categories:  len(in.Available.Definitions.Categories),
		Assignments: len(in.Assignments),
	}

	r.Issues = append(r.Issues, tagged(CategoryDocuments, checkDocuments(in.DataDir))...)
	r.Issues = append(r.Issues, tagged(CategorySettings, checkSettings(in.Settings))...)
	r.Issues = append(r.Issues, tagged(CategoryColors, checkColors(in.Available))...)
	r.Issues = append(r.Issues, tagged(CategoryAssignments, checkAssignments(in))...)
	return r
}

func tagged(cat IssueCategory, issues []Issue) []Issue {
	for i := range issues {
		issues[i].Category = cat
	}
	return issues
}

// checkDocuments finds persisted documents that exist but do not parse.
// Those are silently replaced by defaults on load and overwritten on the
// next save.
func checkDocuments(dir string) []Issue {
	if dir == "" {
		return nil
	}

	var issues []Issue
	for _, name := range []string{tags.AssignmentsFile, tags.DefinitionsFile, tags.ColorsFile, settings.File} {
		var doc json.RawMessage
		err := storage.LoadJSON(filepath.Join(dir, name), &doc)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		issues = append(issues, Issue{
			Key:         name,
			Description: fmt.Sprintf("unreadable, defaults are in use until the next save: %v", err),
		})
	}
	return issues
}

func checkSettings(st settings.Settings) []Issue {
	path, err := st.ResolvedScanPath()
	if err != nil {
		return []Issue{{Key: "scanPath", Description: err.Error()}}
	}

	info, err := os.Stat(path)
	switch {
	case err != nil:
		return []Issue{{Key: "scanPath", Description: fmt.Sprintf("scan path is not accessible: %s", path)}}
	case !info.IsDir():
		return []Issue{{Key: "scanPath", Description: fmt.Sprintf("scan path is not a directory: %s", path)}}
	}
	return nil
}

// checkColors finds registered categories without a color and colors for
// categories that are no longer registered.
func checkColors(av tags.Available) []Issue {
	var issues []Issue
	for _, tag := range av.Definitions.Categories {
		if _, ok := av.Colors.Categories[tag]; !ok {
			issues = append(issues, Issue{
				Key:         tag,
				Description: "category has no color, the default style is used",
				FixAction:   FixAssignColor,
			})
		}
	}

	for _, tag := range sortedKeys(av.Colors.Categories) {
		if tag != tags.DefaultColorKey && !av.Definitions.HasCategory(tag) {
			issues = append(issues, Issue{
				Key:         tag,
				Description: "color defined for an unregistered category",
			})
		}
	}
	return issues
}

func checkAssignments(in Input) []Issue {
	var issues []Issue
	for _, name := range sortedKeys(in.Assignments) {
		a := in.Assignments[name]
		if a.Progress != "" && !in.Available.Definitions.HasProgress(a.Progress) {
			issues = append(issues, Issue{
				Key:         name,
				Description: fmt.Sprintf("progress %q is not a known value", a.Progress),
			})
		}
		for _, tag := range a.Categories {
			if !in.Available.Definitions.HasCategory(tag) {
				issues = append(issues, Issue{
					Key:         name,
					Description: fmt.Sprintf("category %q is not registered", tag),
				})
			}
		}
		if in.Projects != nil && !slices.Contains(in.Projects, name) {
			issues = append(issues, Issue{
				Key:         name,
				Description: "tags stored for a project that is not in the scan",
			})
		}
	}
	return issues
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
