package config

import "testing"

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		in          string
		owner, repo string
	}{
		{"https://github.com/alice/blog", "alice", "blog"},
		{"https://github.com/alice/blog.git", "alice", "blog"},
		{"git@github.com:alice/blog.git", "alice", "blog"},
		{"alice/blog", "alice", "blog"},
		{"  alice/blog  ", "alice", "blog"},
	}
	for _, tc := range cases {
		owner, repo, err := ParseRepoURL(tc.in)
		if err != nil {
			t.Fatalf("ParseRepoURL(%q): %v", tc.in, err)
		}
		if owner != tc.owner || repo != tc.repo {
			t.Fatalf("ParseRepoURL(%q) = %q/%q, want %q/%q", tc.in, owner, repo, tc.owner, tc.repo)
		}
	}
}

func TestParseRepoURLRejects(t *testing.T) {
	bad := []string{
		"",
		"alice",
		"https://gitlab.com/alice/blog",
		"https://github.com/alice",
	}
	for _, in := range bad {
		if _, _, err := ParseRepoURL(in); err == nil {
			t.Fatalf("ParseRepoURL(%q) should fail", in)
		}
	}
}
