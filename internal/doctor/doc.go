// Package doctor checks the persisted dashboard state for inconsistencies.
//
// The checks cover:
//
//   - Documents: tag and settings files that exist but fail to parse and
//     are therefore replaced by defaults on every load.
//
//   - Settings: a scan path that is missing or not a directory.
//
//   - Colors: registered categories without a color, and colors kept for
//     categories that were deleted.
//
//   - Assignments: progress values outside the known set, categories that
//     are not registered, and tags stored for projects the scan no longer
//     finds.
//
// # Usage
//
//	in := doctor.Gather(ctx, mgr, querySvc, st)
//	report, err := doctor.Run(ctx, mgr, in, fix)
//
// Only missing category colors are repaired by --fix; every other issue is
// informational because resolving it needs a user decision.
package doctor
