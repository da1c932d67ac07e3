package gh

import (
	"context"

	"github.com/google/go-github/v60/github"

	"github.com/jadenj13/gitpress/internals/post"
)

// needsSearch decides which listing code path to use. REST's labels
// parameter filters with AND semantics, so it can only serve zero or one
// label and no title filter; anything richer goes through the GraphQL
// search API, whose label qualifier expresses "any of these labels".
func needsSearch(labels []string, title string) bool {
	return len(labels) >= 2 || title != ""
}

// ListIssues returns one page of open issues authored by the configured
// owner, optionally filtered by labels (OR semantics) and a title term.
// Pages are 1-based.
func (c *Client) ListIssues(ctx context.Context, page int, labels []string, title string) ([]post.Issue, error) {
	if page < 1 {
		page = 1
	}
	if needsSearch(labels, title) {
		return c.gql.searchIssues(ctx, buildSearchQuery(c.owner, c.repo, title, labels), page)
	}

	opts := &github.IssueListByRepoOptions{
		State:   "open",
		Creator: c.owner,
		Labels:  labels,
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: pageSize,
		},
	}
	issues, _, err := c.gh.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
	if err != nil {
		return nil, Classify(err)
	}
	return post.FromRESTList(issues), nil
}

// CountIssues returns the number of open issues matching the filter. The
// unfiltered count comes from the repository's totalCount; filtered
// counts go through the search API.
func (c *Client) CountIssues(ctx context.Context, title string, labels []string) (int, error) {
	if needsSearch(labels, title) || len(labels) == 1 {
		return c.gql.searchCount(ctx, buildSearchQuery(c.owner, c.repo, title, labels))
	}
	return c.gql.openIssueCount(ctx, c.owner, c.repo)
}

// IssueInput carries the writable fields of an issue; labels travel as
// names.
type IssueInput struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

func (c *Client) CreateIssue(ctx context.Context, input IssueInput) (post.Issue, error) {
	req := &github.IssueRequest{
		Title:  github.String(input.Title),
		Body:   github.String(input.Body),
		Labels: &input.Labels,
	}
	issue, _, err := c.gh.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return post.Issue{}, Classify(translateConflict(err, input.Title))
	}
	return post.FromREST(issue), nil
}

func (c *Client) UpdateIssue(ctx context.Context, number int, input IssueInput) (post.Issue, error) {
	req := &github.IssueRequest{
		Title:  github.String(input.Title),
		Body:   github.String(input.Body),
		Labels: &input.Labels,
	}
	issue, _, err := c.gh.Issues.Edit(ctx, c.owner, c.repo, number, req)
	if err != nil {
		return post.Issue{}, Classify(err)
	}
	return post.FromREST(issue), nil
}
