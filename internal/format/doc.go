// Package format renders project values for terminal output.
//
// # Relative Time
//
// [RelativeTimeFrom] turns last-activity timestamps into short labels such
// as "5m ago" or "yesterday"; anything a week or older is shown as a date.
//
// # List Templates
//
// "pdash list --format" accepts a Go text/template executed once per
// project. The sprig function library is available, plus:
//
//   - ago: relative time of a time.Time
//   - csv: comma joined string slice
//
// Example:
//
//	{{.Name | upper}}  {{.LastModified | ago}}  {{csv .Tags.Categories}}
package format
