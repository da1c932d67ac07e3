package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseRepoURL extracts owner and repo from the forms people paste into
// the wizard: an HTTPS GitHub URL, an SSH remote, or a bare
// "owner/repo".
func ParseRepoURL(raw string) (owner, repo string, err error) {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "git@") {
		raw = normaliseSSH(raw)
	}

	if !strings.Contains(raw, "://") {
		parts := strings.Split(strings.TrimSuffix(raw, ".git"), "/")
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], nil
		}
		return "", "", fmt.Errorf("expected owner/repo or a GitHub URL, got %q", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}

	host := strings.ToLower(u.Hostname())
	if host != "github.com" && !strings.HasSuffix(host, ".github.com") {
		return "", "", fmt.Errorf("only github.com repositories are supported, got host %q", host)
	}

	path := strings.TrimPrefix(u.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("github URL must have owner and repo: %q", raw)
	}
	return parts[0], parts[1], nil
}

func normaliseSSH(s string) string {
	s = strings.TrimPrefix(s, "git@")
	s = strings.Replace(s, ":", "/", 1)
	return "https://" + s
}
