package post

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/go-github/v60/github"
)

// FromREST converts a go-github issue into the canonical shape. A nil or
// absent body becomes the empty string; REST's node_id/html_url become
// id/url.
func FromREST(is *github.Issue) Issue {
	labels := make([]Label, 0, len(is.Labels))
	for _, l := range is.Labels {
		labels = append(labels, LabelFromREST(l))
	}
	return Issue{
		ID:        is.GetNodeID(),
		Number:    is.GetNumber(),
		URL:       is.GetHTMLURL(),
		Title:     is.GetTitle(),
		Body:      is.GetBody(),
		CreatedAt: is.GetCreatedAt().Time,
		UpdatedAt: is.GetUpdatedAt().Time,
		Labels:    labels,
	}
}

// FromRESTList converts a REST listing page.
func FromRESTList(issues []*github.Issue) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, is := range issues {
		out = append(out, FromREST(is))
	}
	return out
}

// LabelFromREST converts a go-github label. Labels without a node ID fall
// back to the name, which is unique per repository anyway.
func LabelFromREST(l *github.Label) Label {
	id := l.GetNodeID()
	if id == "" {
		id = l.GetName()
	}
	return Label{
		ID:          id,
		Name:        l.GetName(),
		Color:       l.GetColor(),
		Description: l.Description,
	}
}

// LabelFromName builds the degenerate label REST produces when an issue
// carries bare-string labels: no color, no description.
func LabelFromName(name string) Label {
	return Label{ID: name, Name: name, Color: ""}
}

// SearchNode is the GraphQL issue node returned by the search API. Field
// names are already camelCase and pass through unchanged; labels arrive
// nested under labels.nodes.
type SearchNode struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Labels    struct {
		Nodes []Label `json:"nodes"`
	} `json:"labels"`
}

// FromSearchNode flattens a GraphQL search node into the canonical shape.
func FromSearchNode(n SearchNode) Issue {
	labels := n.Labels.Nodes
	if labels == nil {
		labels = []Label{}
	}
	return Issue{
		ID:        n.ID,
		Number:    n.Number,
		URL:       n.URL,
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Labels:    labels,
	}
}

// LabelList decodes a REST label array whose elements may be bare name
// strings or full label objects.
type LabelList []Label

func (ll *LabelList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]Label, 0, len(raw))
	for _, el := range raw {
		if len(el) > 0 && el[0] == '"' {
			var name string
			if err := json.Unmarshal(el, &name); err != nil {
				return err
			}
			out = append(out, LabelFromName(name))
			continue
		}
		var obj struct {
			NodeID      string  `json:"node_id"`
			Name        string  `json:"name"`
			Color       string  `json:"color"`
			Description *string `json:"description"`
		}
		if err := json.Unmarshal(el, &obj); err != nil {
			return err
		}
		id := obj.NodeID
		if id == "" {
			id = obj.Name
		}
		out = append(out, Label{ID: id, Name: obj.Name, Color: obj.Color, Description: obj.Description})
	}
	*ll = out
	return nil
}

// DecodeRESTIssue normalizes a raw REST issue payload, e.g. the issue
// object embedded in a webhook delivery.
func DecodeRESTIssue(data []byte) (Issue, error) {
	var raw struct {
		NodeID    string    `json:"node_id"`
		Number    int       `json:"number"`
		HTMLURL   string    `json:"html_url"`
		Title     string    `json:"title"`
		Body      *string   `json:"body"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
		Labels    LabelList `json:"labels"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Issue{}, fmt.Errorf("decode issue: %w", err)
	}
	body := ""
	if raw.Body != nil {
		body = *raw.Body
	}
	labels := []Label(raw.Labels)
	if labels == nil {
		labels = []Label{}
	}
	return Issue{
		ID:        raw.NodeID,
		Number:    raw.Number,
		URL:       raw.HTMLURL,
		Title:     raw.Title,
		Body:      body,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
		Labels:    labels,
	}, nil
}
