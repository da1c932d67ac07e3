// Package post defines the canonical issue/label model shared by the API
// client, the archiver, and the editor. GitHub's REST and GraphQL APIs
// return structurally different shapes; everything past this package sees
// only these types.
package post

import (
	"regexp"
	"strings"
	"time"
)

// NumberUnsaved marks an issue that has never been persisted remotely.
const NumberUnsaved = -1

// DefaultLabelColor is used when a label is created without a color or
// with one that is not a 6-digit hex value.
const DefaultLabelColor = "f5fee6"

type Issue struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Labels    []Label   `json:"labels"`
}

type Label struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

// NewIssue returns the empty, never-persisted issue the editor starts from.
func NewIssue() Issue {
	return Issue{Number: NumberUnsaved}
}

// Saved reports whether the issue exists remotely.
func (i Issue) Saved() bool { return i.Number > 0 }

// LabelNames returns the label names in order.
func (i Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

// CompareIssue reports whether two issues differ in title, body, or label
// set. Labels compare as a set by ID: order is irrelevant, membership and
// count are not.
func CompareIssue(a, b Issue) bool {
	if a.Title != b.Title || a.Body != b.Body {
		return true
	}
	return !EqualLabels(a.Labels, b.Labels)
}

// EqualLabels reports whether two label slices contain the same labels by
// ID, regardless of order.
func EqualLabels(a, b []Label) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]int, len(a))
	for _, l := range a {
		ids[l.ID]++
	}
	for _, l := range b {
		ids[l.ID]--
		if ids[l.ID] < 0 {
			return false
		}
	}
	return true
}

var colorPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// ValidColor reports whether c is a 6-hex-digit label color (no leading #).
func ValidColor(c string) bool { return colorPattern.MatchString(c) }

// NormalizeColor returns c when it is a valid label color and the default
// otherwise.
func NormalizeColor(c string) string {
	if ValidColor(c) {
		return c
	}
	return DefaultLabelColor
}

var searchEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// EscapeSearchTerm escapes a user-supplied value for embedding inside a
// quoted GitHub search qualifier, so titles or label names containing
// quotes cannot break out of the query.
func EscapeSearchTerm(s string) string {
	return searchEscaper.Replace(s)
}
