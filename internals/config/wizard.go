package config

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Verifier checks that the entered token can actually see the
// repository before the wizard persists anything.
type Verifier func(ctx context.Context, s Settings) error

// Wizard collects the four settings interactively.
type Wizard struct {
	in     *bufio.Reader
	out    io.Writer
	verify Verifier
}

func NewWizard(in io.Reader, out io.Writer, verify Verifier) *Wizard {
	return &Wizard{in: bufio.NewReader(in), out: out, verify: verify}
}

// Run prompts for each value, verifies access, and returns the settings.
// Existing values from prev are offered as defaults.
func (w *Wizard) Run(ctx context.Context, prev Settings) (Settings, error) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprintln(w.out, "gitpress setup")
	faint.Fprintln(w.out, "Blog posts are GitHub issues; archives are commits. Four values needed.")
	fmt.Fprintln(w.out)

	token, err := w.prompt("Personal access token (repo scope)", prev.Token, true)
	if err != nil {
		return Settings{}, err
	}

	repoInput, err := w.prompt("Repository (owner/repo or URL)", joinRepo(prev), false)
	if err != nil {
		return Settings{}, err
	}
	owner, repo, err := ParseRepoURL(repoInput)
	if err != nil {
		return Settings{}, err
	}

	branch, err := w.prompt("Archive branch (empty to disable archiving)", prev.Branch, false)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{Token: token, Owner: owner, Repo: repo, Branch: branch}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	if w.verify != nil {
		fmt.Fprintln(w.out)
		faint.Fprintln(w.out, "Checking repository access...")
		if err := w.verify(ctx, s); err != nil {
			return Settings{}, fmt.Errorf("verify settings: %w", err)
		}
		color.New(color.FgGreen).Fprintf(w.out, "Access to %s/%s confirmed.\n", owner, repo)
	}

	return s, nil
}

func (w *Wizard) prompt(label, def string, secret bool) (string, error) {
	shown := def
	if secret && def != "" {
		shown = "********"
	}
	if shown != "" {
		fmt.Fprintf(w.out, "%s [%s]: ", label, shown)
	} else {
		fmt.Fprintf(w.out, "%s: ", label)
	}

	line, err := w.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

func joinRepo(s Settings) string {
	if s.Owner == "" || s.Repo == "" {
		return ""
	}
	return s.Owner + "/" + s.Repo
}
