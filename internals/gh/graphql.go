package gh

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jadenj13/gitpress/internals/post"
)

const defaultGraphQLURL = "https://api.github.com/graphql"

// graphQLClient runs the three fixed queries this client needs. Queries
// are constant strings; user input travels only through variables, with
// search terms escaped before they are embedded in the query string
// variable.
type graphQLClient struct {
	httpClient *http.Client
	url        string
}

func newGraphQLClient(httpClient *http.Client) *graphQLClient {
	return &graphQLClient{httpClient: httpClient, url: defaultGraphQLURL}
}

type graphQLError struct {
	Message string `json:"message"`
}

func (g *graphQLClient) do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables,omitempty"`
	}{Query: query, Variables: vars})
	if err != nil {
		return &Error{Kind: KindUnknown, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: KindUnknown, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindGraphQL, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &Error{
			Kind:    KindGraphQL,
			Message: fmt.Sprintf("graphql request failed: %s", resp.Status),
		}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &Error{Kind: KindGraphQL, Message: err.Error()}
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return &Error{Kind: KindGraphQL, Message: strings.Join(msgs, "; ")}
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &Error{Kind: KindGraphQL, Message: err.Error()}
		}
	}
	return nil
}

const searchIssuesQuery = `query($q: String!, $first: Int!, $after: String) {
  search(query: $q, type: ISSUE, first: $first, after: $after) {
    issueCount
    nodes {
      ... on Issue {
        id
        number
        url
        title
        body
        createdAt
        updatedAt
        labels(first: 100) {
          nodes { id name color description }
        }
      }
    }
  }
}`

const countIssuesQuery = `query($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    issues(states: OPEN) { totalCount }
  }
}`

const countSearchQuery = `query($q: String!) {
  search(query: $q, type: ISSUE) { issueCount }
}`

type searchResult struct {
	Search struct {
		IssueCount int               `json:"issueCount"`
		Nodes      []post.SearchNode `json:"nodes"`
	} `json:"search"`
}

func (g *graphQLClient) searchIssues(ctx context.Context, query string, page int) ([]post.Issue, error) {
	vars := map[string]any{"q": query, "first": pageSize}
	if cursor := offsetCursor(page); cursor != "" {
		vars["after"] = cursor
	}
	var res searchResult
	if err := g.do(ctx, searchIssuesQuery, vars, &res); err != nil {
		return nil, err
	}
	issues := make([]post.Issue, 0, len(res.Search.Nodes))
	for _, n := range res.Search.Nodes {
		issues = append(issues, post.FromSearchNode(n))
	}
	return issues, nil
}

func (g *graphQLClient) searchCount(ctx context.Context, query string) (int, error) {
	var res searchResult
	if err := g.do(ctx, countSearchQuery, map[string]any{"q": query}, &res); err != nil {
		return 0, err
	}
	return res.Search.IssueCount, nil
}

func (g *graphQLClient) openIssueCount(ctx context.Context, owner, repo string) (int, error) {
	var res struct {
		Repository struct {
			Issues struct {
				TotalCount int `json:"totalCount"`
			} `json:"issues"`
		} `json:"repository"`
	}
	vars := map[string]any{"owner": owner, "name": repo}
	if err := g.do(ctx, countIssuesQuery, vars, &res); err != nil {
		return 0, err
	}
	return res.Repository.Issues.TotalCount, nil
}

// offsetCursor synthesizes the opaque search cursor preceding the first
// node of the given 1-based page, so the search API can be paginated by
// page number like the REST listing.
func offsetCursor(page int) string {
	offset := (page - 1) * pageSize
	if offset <= 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("cursor:%d", offset)))
}

// buildSearchQuery assembles the issue search query. Multiple labels go
// into a single comma-joined qualifier, which the search API treats as
// "any of these labels" — unlike REST's comma-joined labels parameter,
// which is an AND filter.
func buildSearchQuery(owner, repo, title string, labels []string) string {
	parts := []string{
		fmt.Sprintf("repo:%s/%s", owner, repo),
		"is:issue",
		"state:open",
		fmt.Sprintf("author:%s", owner),
	}
	if len(labels) > 0 {
		quoted := make([]string, 0, len(labels))
		for _, l := range labels {
			quoted = append(quoted, `"`+post.EscapeSearchTerm(l)+`"`)
		}
		parts = append(parts, "label:"+strings.Join(quoted, ","))
	}
	if title != "" {
		parts = append(parts, `"`+post.EscapeSearchTerm(title)+`" in:title`)
	}
	return strings.Join(parts, " ")
}
