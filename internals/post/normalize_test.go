package post

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-github/v60/github"
)

func TestDecodeRESTIssueBareStringLabels(t *testing.T) {
	raw := []byte(`{
		"node_id": "I_abc",
		"number": 7,
		"html_url": "https://github.com/a/b/issues/7",
		"title": "hello",
		"body": null,
		"created_at": "2024-03-01T00:00:00Z",
		"updated_at": "2024-03-02T00:00:00Z",
		"labels": ["bug"]
	}`)

	issue, err := DecodeRESTIssue(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if issue.ID != "I_abc" || issue.Number != 7 {
		t.Fatalf("id/number not mapped: %+v", issue)
	}
	if issue.URL != "https://github.com/a/b/issues/7" {
		t.Fatalf("html_url not mapped to url: %q", issue.URL)
	}
	if issue.Body != "" {
		t.Fatalf("null body should become empty string, got %q", issue.Body)
	}
	if len(issue.Labels) != 1 {
		t.Fatalf("want 1 label, got %d", len(issue.Labels))
	}
	l := issue.Labels[0]
	if l.ID != "bug" || l.Name != "bug" || l.Color != "" || l.Description != nil {
		t.Fatalf("bare-string label normalized wrong: %+v", l)
	}
}

func TestDecodeRESTIssueObjectLabels(t *testing.T) {
	raw := []byte(`{
		"node_id": "I_abc",
		"number": 8,
		"title": "x",
		"labels": [
			"docs",
			{"node_id": "L_1", "name": "bug", "color": "ff0000", "description": "broken"}
		]
	}`)
	issue, err := DecodeRESTIssue(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(issue.Labels) != 2 {
		t.Fatalf("want 2 labels, got %d", len(issue.Labels))
	}
	if issue.Labels[0].ID != "docs" {
		t.Fatalf("string label: %+v", issue.Labels[0])
	}
	full := issue.Labels[1]
	if full.ID != "L_1" || full.Name != "bug" || full.Color != "ff0000" {
		t.Fatalf("object label: %+v", full)
	}
	if full.Description == nil || *full.Description != "broken" {
		t.Fatalf("description lost: %+v", full)
	}
}

func TestFromRESTRenames(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	ghIssue := &github.Issue{
		NodeID:    github.String("I_node"),
		Number:    github.Int(12),
		HTMLURL:   github.String("https://github.com/a/b/issues/12"),
		Title:     github.String("post"),
		CreatedAt: &github.Timestamp{Time: created},
		UpdatedAt: &github.Timestamp{Time: created.Add(time.Hour)},
		Labels: []*github.Label{
			{NodeID: github.String("L_2"), Name: github.String("meta"), Color: github.String("f5fee6")},
		},
	}

	issue := FromREST(ghIssue)
	if issue.ID != "I_node" || issue.URL != "https://github.com/a/b/issues/12" {
		t.Fatalf("renames wrong: %+v", issue)
	}
	if issue.Body != "" {
		t.Fatalf("absent body should be empty, got %q", issue.Body)
	}
	if !issue.CreatedAt.Equal(created) {
		t.Fatalf("createdAt: %v", issue.CreatedAt)
	}
	if len(issue.Labels) != 1 || issue.Labels[0].ID != "L_2" {
		t.Fatalf("labels: %+v", issue.Labels)
	}
}

func TestFromSearchNodeNestedLabels(t *testing.T) {
	raw := []byte(`{
		"id": "I_gql",
		"number": 3,
		"url": "https://github.com/a/b/issues/3",
		"title": "t",
		"body": "b",
		"createdAt": "2024-01-01T00:00:00Z",
		"updatedAt": "2024-01-02T00:00:00Z",
		"labels": {"nodes": [{"id": "L_9", "name": "bug", "color": "ff0000", "description": null}]}
	}`)
	var node SearchNode
	if err := json.Unmarshal(raw, &node); err != nil {
		t.Fatalf("unmarshal node: %v", err)
	}

	issue := FromSearchNode(node)
	if issue.ID != "I_gql" || issue.Number != 3 || issue.Body != "b" {
		t.Fatalf("passthrough fields wrong: %+v", issue)
	}
	if len(issue.Labels) != 1 || issue.Labels[0].ID != "L_9" {
		t.Fatalf("labels not flattened: %+v", issue.Labels)
	}
	if issue.Labels[0].Description != nil {
		t.Fatalf("null description should stay nil")
	}
}
