package git

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/raphi011/pdash/internal/log"
)

var (
	urlPattern    = regexp.MustCompile(`url\s*=\s*(.+)`)
	reflogPattern = regexp.MustCompile(`>\s+(\d+)`)
)

// Info is the version-control metadata of one project directory.
type Info struct {
	Remote       *string
	LastModified time.Time
}

// Introspect returns the remote URL and last activity time of dir.
// It never fails.
func Introspect(ctx context.Context, dir string) Info {
	var info Info
	if url, ok := RemoteURL(dir); ok {
		info.Remote = &url
	}
	info.LastModified = LastActivity(ctx, dir)
	return info
}

// RemoteURL returns the first remote URL configured for the repository at dir.
func RemoteURL(dir string) (string, bool) {
	gd, ok := gitDir(dir)
	if !ok {
		return "", false
	}

	data, err := os.ReadFile(filepath.Join(commonDir(gd), "config"))
	if err != nil {
		return "", false
	}
	return ParseRemoteURL(string(data))
}

// ParseRemoteURL extracts the first "url = <value>" occurrence from git
// config text.
func ParseRemoteURL(config string) (string, bool) {
	m := urlPattern.FindStringSubmatch(config)
	if m == nil {
		return "", false
	}
	url := strings.TrimSpace(m[1])
	return url, url != ""
}

// LastActivity returns the time of the newest HEAD reflog entry of dir,
// the directory modification time when there is no usable reflog, or the
// current time when dir cannot be inspected at all.
func LastActivity(ctx context.Context, dir string) time.Time {
	if gd, ok := gitDir(dir); ok {
		if data, err := os.ReadFile(filepath.Join(gd, "logs", "HEAD")); err == nil {
			if t, ok := ParseReflogTime(string(data)); ok {
				return t
			}
			log.FromContext(ctx).Debug("unparseable reflog", "dir", dir)
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		log.FromContext(ctx).Debug("stat failed, using current time", "dir", dir, "err", err)
		return time.Now().UTC()
	}
	return info.ModTime().UTC()
}

// ParseReflogTime extracts the Unix timestamp that follows the committer
// identity ("<email> 1700000000 +0100") on the last reflog line.
func ParseReflogTime(reflog string) (time.Time, bool) {
	lines := strings.Split(strings.TrimSpace(reflog), "\n")
	m := reflogPattern.FindStringSubmatch(lines[len(lines)-1])
	if m == nil {
		return time.Time{}, false
	}

	secs, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}

// gitDir resolves the git directory of a working tree: either a .git
// directory or the target of a .git file.
func gitDir(dir string) (string, bool) {
	path := filepath.Join(dir, ".git")
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		return path, true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	target, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return "", false
	}
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return target, true
}

// commonDir returns the directory holding shared state (config) for gd.
func commonDir(gd string) string {
	data, err := os.ReadFile(filepath.Join(gd, "commondir"))
	if err != nil {
		return gd
	}
	common := strings.TrimSpace(string(data))
	if !filepath.IsAbs(common) {
		common = filepath.Join(gd, common)
	}
	return common
}
