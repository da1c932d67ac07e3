package archive

import (
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jadenj13/gitpress/internals/post"
)

type frontMatter struct {
	Title     string   `yaml:"title"`
	Number    int      `yaml:"number"`
	Link      string   `yaml:"link"`
	CreatedAt string   `yaml:"created_at"`
	UpdatedAt string   `yaml:"updated_at"`
	Labels    []string `yaml:"labels,flow"`
}

// Render produces the archived Markdown document: a YAML front-matter
// block followed by the issue body verbatim.
func Render(issue post.Issue) (string, error) {
	fm := frontMatter{
		Title:     issue.Title,
		Number:    issue.Number,
		Link:      issue.URL,
		CreatedAt: issue.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: issue.UpdatedAt.UTC().Format(time.RFC3339),
		Labels:    issue.LabelNames(),
	}
	meta, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("render front matter: %w", err)
	}
	return "---\n" + string(meta) + "---\n\n" + issue.Body + "\n", nil
}

// Path returns the repository path a post archives to. The year comes
// from the issue's creation timestamp.
func Path(issue post.Issue) string {
	created := issue.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return fmt.Sprintf("archives/%d/%d.md", created.Year(), issue.Number)
}
