package forge

import (
	"net/url"
	"strings"
)

// Detect returns the appropriate Forge implementation based on the remote URL.
// Unknown hosts default to GitHub.
func Detect(remoteURL string) Forge {
	if isGitLab(remoteURL) {
		return &GitLab{}
	}
	return &GitHub{}
}

// BrowseURL converts a git remote URL into the repository's web page.
// Returns false when the remote has no recognizable host or path
// (local paths, file:// remotes, malformed values).
func BrowseURL(remoteURL string) (string, bool) {
	host := canonicalHost(extractHost(remoteURL))
	repoPath := extractRepoPath(remoteURL)
	if host == "" || repoPath == "" {
		return "", false
	}
	return Detect(remoteURL).BrowseURL(host, repoPath), true
}

// extractHost parses the hostname from a git remote URL.
// Handles SSH format (git@host:path) and URL formats (https://, ssh://, git://).
func extractHost(remoteURL string) string {
	// SSH format: git@github.com:user/repo.git
	if strings.HasPrefix(remoteURL, "git@") {
		withoutPrefix := strings.TrimPrefix(remoteURL, "git@")
		if idx := strings.Index(withoutPrefix, ":"); idx > 0 {
			return withoutPrefix[:idx]
		}
		return ""
	}

	for _, scheme := range []string{"http://", "https://", "ssh://", "git://"} {
		if strings.HasPrefix(remoteURL, scheme) {
			if parsed, err := url.Parse(remoteURL); err == nil {
				return parsed.Hostname()
			}
			return ""
		}
	}

	return ""
}

// extractRepoPath returns the owner/repo part of a remote URL without the
// .git suffix. GitLab subgroups are kept.
func extractRepoPath(remoteURL string) string {
	var p string
	switch {
	case strings.HasPrefix(remoteURL, "git@"):
		_, after, ok := strings.Cut(remoteURL, ":")
		if !ok {
			return ""
		}
		p = after
	case strings.Contains(remoteURL, "://"):
		parsed, err := url.Parse(remoteURL)
		if err != nil || parsed.Host == "" {
			return ""
		}
		p = parsed.Path
	default:
		return ""
	}

	p = strings.Trim(p, "/")
	p = strings.TrimSuffix(p, ".git")
	return p
}

// canonicalHost maps SSH config aliases like "github.com-work" back to the
// real host name.
func canonicalHost(host string) string {
	for _, known := range []string{"github.com", "gitlab.com"} {
		if strings.HasPrefix(host, known+"-") {
			return known
		}
	}
	return host
}

// isGitLab checks if a URL points to a GitLab instance
func isGitLab(url string) bool {
	url = strings.ToLower(url)

	// gitlab.com and common self-hosted patterns
	if strings.Contains(url, "gitlab.") {
		return true
	}

	// Some orgs host at company.com/gitlab/
	return strings.Contains(url, "/gitlab/")
}
