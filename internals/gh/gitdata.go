package gh

import (
	"context"

	"github.com/google/go-github/v60/github"
)

// Ref is a branch pointer, e.g. {Ref: "heads/main", SHA: <commit>}.
type Ref struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// Commit is the subset of a git commit the archiver chains on.
type Commit struct {
	SHA     string `json:"sha"`
	TreeSHA string `json:"treeSha"`
	Message string `json:"message"`
}

// TreeEntry describes one path in a tree to create.
type TreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

// GetRef resolves a qualified ref like "heads/main" to its commit SHA.
func (c *Client) GetRef(ctx context.Context, ref string) (Ref, error) {
	r, _, err := c.gh.Git.GetRef(ctx, c.owner, c.repo, ref)
	if err != nil {
		return Ref{}, Classify(err)
	}
	return Ref{Ref: ref, SHA: r.GetObject().GetSHA()}, nil
}

// UpdateRef points an existing ref at a new commit. Fast-forward only.
func (c *Client) UpdateRef(ctx context.Context, ref, sha string) error {
	upd := &github.Reference{
		Ref:    github.String(ref),
		Object: &github.GitObject{SHA: github.String(sha)},
	}
	if _, _, err := c.gh.Git.UpdateRef(ctx, c.owner, c.repo, upd, false); err != nil {
		return Classify(err)
	}
	return nil
}

func (c *Client) GetCommit(ctx context.Context, sha string) (Commit, error) {
	commit, _, err := c.gh.Git.GetCommit(ctx, c.owner, c.repo, sha)
	if err != nil {
		return Commit{}, Classify(err)
	}
	return Commit{
		SHA:     commit.GetSHA(),
		TreeSHA: commit.GetTree().GetSHA(),
		Message: commit.GetMessage(),
	}, nil
}

// CreateBlob stores content as a blob and returns its SHA. encoding is
// "utf-8" or "base64".
func (c *Client) CreateBlob(ctx context.Context, content, encoding string) (string, error) {
	blob := &github.Blob{
		Content:  github.String(content),
		Encoding: github.String(encoding),
	}
	created, _, err := c.gh.Git.CreateBlob(ctx, c.owner, c.repo, blob)
	if err != nil {
		return "", Classify(err)
	}
	return created.GetSHA(), nil
}

// CreateTree builds a new tree on top of baseTreeSHA with the given
// entries and returns the new tree's SHA.
func (c *Client) CreateTree(ctx context.Context, baseTreeSHA string, entries []TreeEntry) (string, error) {
	ghEntries := make([]*github.TreeEntry, 0, len(entries))
	for _, e := range entries {
		ghEntries = append(ghEntries, &github.TreeEntry{
			Path: github.String(e.Path),
			Mode: github.String(e.Mode),
			Type: github.String(e.Type),
			SHA:  github.String(e.SHA),
		})
	}
	tree, _, err := c.gh.Git.CreateTree(ctx, c.owner, c.repo, baseTreeSHA, ghEntries)
	if err != nil {
		return "", Classify(err)
	}
	return tree.GetSHA(), nil
}

// CreateCommit records a commit with the given tree and parents and
// returns its SHA.
func (c *Client) CreateCommit(ctx context.Context, message, treeSHA string, parents []string) (string, error) {
	parentCommits := make([]*github.Commit, 0, len(parents))
	for _, p := range parents {
		parentCommits = append(parentCommits, &github.Commit{SHA: github.String(p)})
	}
	commit := &github.Commit{
		Message: github.String(message),
		Tree:    &github.Tree{SHA: github.String(treeSHA)},
		Parents: parentCommits,
	}
	created, _, err := c.gh.Git.CreateCommit(ctx, c.owner, c.repo, commit, nil)
	if err != nil {
		return "", Classify(err)
	}
	return created.GetSHA(), nil
}
