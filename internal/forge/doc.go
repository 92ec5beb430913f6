// Package forge maps git remote URLs to their hosting service.
//
// It supports GitHub and GitLab and is used to turn a project's origin remote
// into a web URL that can be opened in the browser.
//
// # Platform Detection
//
// Use [Detect] to determine the forge from a remote URL. GitLab is
// recognized by URL patterns (gitlab.com, gitlab.* domains, /gitlab/
// paths); everything else is treated as GitHub.
//
// # Usage
//
//	if u, ok := forge.BrowseURL(project.GitRemote); ok {
//	    // u is https://host/owner/repo
//	}
package forge
