// Package ui groups the terminal components of pdash.
//
//   - [github.com/raphi011/pdash/internal/ui/styles]: theme presets and the
//     mapping of dashboard color tokens onto terminal chips
//   - [github.com/raphi011/pdash/internal/ui/static]: non-interactive tables
//     for list output
//   - [github.com/raphi011/pdash/internal/ui/progress]: the scan progress bar
//   - [github.com/raphi011/pdash/internal/ui/prompt]: filterable pickers and
//     confirmations
//   - [github.com/raphi011/pdash/internal/ui/tageditor]: the form behind
//     "pdash tags edit"
//
// Interactive components draw on stderr so stdout stays pipeable.
package ui
