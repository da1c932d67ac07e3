// Package gh wraps the GitHub REST and GraphQL APIs behind typed,
// blog-domain operations. Every method returns the canonical post types
// and classifies failures as *Error; no raw transport error crosses this
// boundary.
package gh

import (
	"context"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// pageSize is the fixed listing page size for both the REST and the
// search code paths.
const pageSize = 10

type Client struct {
	gh     *github.Client
	gql    *graphQLClient
	owner  string
	repo   string
	branch string
}

type Option func(*Client)

// WithBaseURLs points the client at a different API host, e.g. a test
// server. rest must end with a slash.
func WithBaseURLs(rest, graphql string) Option {
	return func(c *Client) {
		c.gh, _ = c.gh.WithEnterpriseURLs(rest, rest)
		c.gql.url = graphql
	}
}

func NewClient(ctx context.Context, token, owner, repo, branch string, opts ...Option) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)
	c := &Client{
		gh:     github.NewClient(httpClient),
		gql:    newGraphQLClient(httpClient),
		owner:  owner,
		repo:   repo,
		branch: branch,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Repo is the subset of repository metadata the editor needs.
type Repo struct {
	Name          string `json:"name"`
	FullName      string `json:"fullName"`
	URL           string `json:"url"`
	DefaultBranch string `json:"defaultBranch"`
	Private       bool   `json:"private"`
}

func (c *Client) GetRepo(ctx context.Context) (Repo, error) {
	r, _, err := c.gh.Repositories.Get(ctx, c.owner, c.repo)
	if err != nil {
		return Repo{}, Classify(err)
	}
	return Repo{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		URL:           r.GetHTMLURL(),
		DefaultBranch: r.GetDefaultBranch(),
		Private:       r.GetPrivate(),
	}, nil
}
