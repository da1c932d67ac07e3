package gh

import (
	"context"

	"github.com/google/go-github/v60/github"

	"github.com/jadenj13/gitpress/internals/post"
)

func (c *Client) ListLabels(ctx context.Context) ([]post.Label, error) {
	opts := &github.ListOptions{PerPage: 100}
	var out []post.Label
	for {
		labels, resp, err := c.gh.Issues.ListLabels(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, Classify(err)
		}
		for _, l := range labels {
			out = append(out, post.LabelFromREST(l))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	if out == nil {
		out = []post.Label{}
	}
	return out, nil
}

// LabelInput carries the writable fields of a label. An empty or invalid
// color falls back to the default.
type LabelInput struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

func (c *Client) CreateLabel(ctx context.Context, input LabelInput) (post.Label, error) {
	req := &github.Label{
		Name:        github.String(input.Name),
		Color:       github.String(post.NormalizeColor(input.Color)),
		Description: input.Description,
	}
	label, _, err := c.gh.Issues.CreateLabel(ctx, c.owner, c.repo, req)
	if err != nil {
		return post.Label{}, Classify(translateConflict(err, input.Name))
	}
	return post.LabelFromREST(label), nil
}

// UpdateLabel edits the label currently named name. NewName is optional.
func (c *Client) UpdateLabel(ctx context.Context, name string, input LabelInput) (post.Label, error) {
	newName := input.Name
	if newName == "" {
		newName = name
	}
	req := &github.Label{
		Name:        github.String(newName),
		Color:       github.String(post.NormalizeColor(input.Color)),
		Description: input.Description,
	}
	label, _, err := c.gh.Issues.EditLabel(ctx, c.owner, c.repo, name, req)
	if err != nil {
		return post.Label{}, Classify(translateConflict(err, newName))
	}
	return post.LabelFromREST(label), nil
}

func (c *Client) DeleteLabel(ctx context.Context, name string) error {
	if _, err := c.gh.Issues.DeleteLabel(ctx, c.owner, c.repo, name); err != nil {
		return Classify(err)
	}
	return nil
}
