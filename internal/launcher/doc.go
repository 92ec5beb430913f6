// Package launcher opens a project in an external application.
//
// Supported applications:
//
//   - claude, terminal: the configured terminal app at the project path
//   - vscode: the configured editor command with the project path
//   - finder: the platform file manager on the project path
//   - github: the platform opener on the repository web URL
//
// Failures never surface as Go errors. [Launcher.Open] always returns a
// [Result] whose Message explains what went wrong, matching what the
// dashboard shows to the user.
package launcher
