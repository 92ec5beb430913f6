// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Failures carry the command's trimmed stderr as the error message, and every
// launch is reported through the context logger when verbose output is on.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, dir, "git", "status"); err != nil {
//	    // err contains stderr output if available
//	}
//
//	// For applications that keep running (editors, terminals, browsers):
//	err := cmd.Start(ctx, path, "code", path)
package cmd
