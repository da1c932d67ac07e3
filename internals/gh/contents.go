package gh

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/go-github/v60/github"
)

// UploadImage commits a base64-encoded file to the configured branch via
// the contents API and returns the jsDelivr URL it will be served from.
// The URL is synthesized locally; GitHub does not return it.
func (c *Client) UploadImage(ctx context.Context, base64Content, path string) (string, error) {
	content, err := base64.StdEncoding.DecodeString(base64Content)
	if err != nil {
		return "", &Error{Kind: KindUnknown, Message: fmt.Sprintf("decode image content: %v", err)}
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(fmt.Sprintf("docs: upload image %s", path)),
		Content: content,
	}
	if c.branch != "" {
		opts.Branch = github.String(c.branch)
	}
	if _, _, err := c.gh.Repositories.CreateFile(ctx, c.owner, c.repo, path, opts); err != nil {
		return "", Classify(err)
	}
	return CDNURL(c.owner, c.repo, c.branch, path), nil
}

// CDNURL builds the jsDelivr URL for a file committed to the repository.
// The @branch tag is present only when a branch is configured.
func CDNURL(owner, repo, branch, path string) string {
	if branch == "" {
		return fmt.Sprintf("https://cdn.jsdelivr.net/gh/%s/%s/%s", owner, repo, path)
	}
	return fmt.Sprintf("https://cdn.jsdelivr.net/gh/%s/%s@%s/%s", owner, repo, branch, path)
}
