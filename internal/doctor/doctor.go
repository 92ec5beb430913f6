package doctor

import (
	"context"
	"fmt"

	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/output"
	"github.com/raphi011/pdash/internal/settings"
	"github.com/raphi011/pdash/internal/tags"
)

// ProjectLister returns the names found by the current scan.
type ProjectLister interface {
	Names(ctx context.Context) ([]string, error)
}

// Gather collects the Input for Check from the live stores. A failing scan
// is logged and disables the orphan check.
func Gather(ctx context.Context, mgr *tags.Manager, projects ProjectLister, st settings.Settings) Input {
	in := Input{
		DataDir:     mgr.Store().Dir(),
		Available:   mgr.Available(ctx),
		Assignments: mgr.Store().LoadAssignments(ctx),
		Settings:    st,
	}

	names, err := projects.Names(ctx)
	if err != nil {
		log.FromContext(ctx).Printf("Warning: scan failed, skipping orphan check: %v\n", err)
		return in
	}
	in.Projects = names
	if in.Projects == nil {
		in.Projects = []string{}
	}
	return in
}

// Run checks, prints the report, and applies fixes when fix is set.
func Run(ctx context.Context, mgr *tags.Manager, in Input, fix bool) (Report, error) {
	out := output.FromContext(ctx)

	out.Println("Checking persisted documents...")
	report := Check(in)

	printSummary(out, report)

	if len(report.Issues) == 0 {
		out.Println("\n✓ No issues found")
		return report, nil
	}

	out.Printf("\nFound %d issues:\n", len(report.Issues))
	printIssuesByCategory(out, report.Issues)

	fixable := report.Fixable()
	if len(fixable) == 0 {
		return report, nil
	}
	if !fix {
		out.Printf("\nRun 'pdash doctor --fix' to repair %d of them.\n", len(fixable))
		return report, nil
	}
	return report, fixAll(ctx, mgr, fixable)
}

func printSummary(out *output.Printer, r Report) {
	out.Println()
	out.Printf("  ✓ %d projects scanned\n", r.Projects)
	out.Printf("  ✓ %d categories registered\n", r.Categories)
	out.Printf("  ✓ %d project assignments stored\n", r.Assignments)
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(out *output.Printer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	for _, cat := range categoryOrder {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		out.Printf("\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			marker := "•"
			if issue.Fixable() {
				marker = "⚠"
			}
			out.Printf("  %s %s: %s\n", marker, issue.Key, issue.Description)
		}
	}
}

func fixAll(ctx context.Context, mgr *tags.Manager, issues []Issue) error {
	out := output.FromContext(ctx)
	out.Println("\nFixing...")

	needColors := false
	for _, issue := range issues {
		if issue.FixAction == FixAssignColor {
			needColors = true
		}
	}
	if !needColors {
		return nil
	}

	assigned, err := mgr.AssignMissingColors(ctx)
	if err != nil {
		return fmt.Errorf("assign colors: %w", err)
	}
	for _, tag := range assigned {
		out.Printf("  ✓ Assigned a color to %q\n", tag)
	}
	return nil
}
