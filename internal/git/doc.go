// Package git reads repository metadata straight from a project's .git
// directory without invoking the git binary.
//
// Only two facts are needed per project:
//
//   - [RemoteURL]: the first "url = ..." entry in the repository config,
//     regardless of remote name.
//   - [LastActivity]: the timestamp of the newest HEAD reflog entry, falling
//     back to the directory's modification time and finally to now.
//
// A .git file ("gitdir: <path>", as written for linked worktrees and
// submodules) is followed, and a commondir file is honored when looking
// up the shared config.
package git
