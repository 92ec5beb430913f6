// Package prompt provides simple interactive prompts rendered on stderr.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input
//   - [Select]: Filterable single selection, used to pick a project
package prompt
