package gh

import "testing"

func TestCDNURL(t *testing.T) {
	cases := []struct {
		owner, repo, branch, path string
		want                      string
	}{
		{"a", "b", "main", "x.png", "https://cdn.jsdelivr.net/gh/a/b@main/x.png"},
		{"a", "b", "", "x.png", "https://cdn.jsdelivr.net/gh/a/b/x.png"},
		{"alice", "blog", "gh-pages", "img/1.jpg", "https://cdn.jsdelivr.net/gh/alice/blog@gh-pages/img/1.jpg"},
	}
	for _, tc := range cases {
		if got := CDNURL(tc.owner, tc.repo, tc.branch, tc.path); got != tc.want {
			t.Fatalf("CDNURL(%q,%q,%q,%q) = %q, want %q",
				tc.owner, tc.repo, tc.branch, tc.path, got, tc.want)
		}
	}
}
