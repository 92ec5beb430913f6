package forge

// Forge represents a git hosting service (GitHub, GitLab, etc.)
type Forge interface {
	// BrowseURL returns the web page of the repository at repoPath on host
	BrowseURL(host, repoPath string) string
}

// GitHub implements Forge for github.com and GitHub Enterprise hosts.
type GitHub struct{}

func (g *GitHub) BrowseURL(host, repoPath string) string {
	return "https://" + host + "/" + repoPath
}

// GitLab implements Forge for gitlab.com and self-hosted instances.
// Subgroups stay part of repoPath.
type GitLab struct{}

func (g *GitLab) BrowseURL(host, repoPath string) string {
	return "https://" + host + "/" + repoPath
}
