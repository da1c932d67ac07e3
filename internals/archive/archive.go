// Package archive persists published posts as Markdown files committed
// to the backing repository. Each run builds a commit by hand through
// the Git Data API: ref → commit → blob → tree → commit → ref update.
package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jadenj13/gitpress/internals/gh"
	"github.com/jadenj13/gitpress/internals/post"
)

// Op distinguishes the commit message for a first archive from a
// re-archive.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
)

// ErrRefMoved is returned when the branch advanced between reading the
// head and updating the ref, i.e. another writer won.
var ErrRefMoved = errors.New("branch ref moved during archive")

// GitData is the slice of the API client the sequencer needs. The six
// steps chain on each other's SHAs, so every call depends on the one
// before it.
type GitData interface {
	GetRef(ctx context.Context, ref string) (gh.Ref, error)
	GetCommit(ctx context.Context, sha string) (gh.Commit, error)
	CreateBlob(ctx context.Context, content, encoding string) (string, error)
	CreateTree(ctx context.Context, baseTreeSHA string, entries []gh.TreeEntry) (string, error)
	CreateCommit(ctx context.Context, message, treeSHA string, parents []string) (string, error)
	UpdateRef(ctx context.Context, ref, sha string) error
}

type Archiver struct {
	git    GitData
	branch string
	log    *slog.Logger

	mu sync.Mutex // serializes sequences against the branch
}

func NewArchiver(git GitData, branch string, log *slog.Logger) *Archiver {
	return &Archiver{git: git, branch: branch, log: log}
}

// Archive commits issue as archives/{year}/{number}.md on the configured
// branch. Issues that were never persisted remotely are skipped without
// error. Archiving is best-effort from the caller's point of view: a
// failure here must not fail the create/update that triggered it.
func (a *Archiver) Archive(ctx context.Context, issue post.Issue, op Op) error {
	if !issue.Saved() {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	ref := "heads/" + a.branch

	head, err := a.git.GetRef(ctx, ref)
	if err != nil {
		return fmt.Errorf("get ref %s: %w", ref, err)
	}

	base, err := a.git.GetCommit(ctx, head.SHA)
	if err != nil {
		return fmt.Errorf("get commit %s: %w", head.SHA, err)
	}

	content, err := Render(issue)
	if err != nil {
		return err
	}
	blobSHA, err := a.git.CreateBlob(ctx, content, "utf-8")
	if err != nil {
		return fmt.Errorf("create blob: %w", err)
	}

	path := Path(issue)
	treeSHA, err := a.git.CreateTree(ctx, base.TreeSHA, []gh.TreeEntry{{
		Path: path,
		Mode: "100644",
		Type: "blob",
		SHA:  blobSHA,
	}})
	if err != nil {
		return fmt.Errorf("create tree: %w", err)
	}

	message := fmt.Sprintf("docs: %s issue %d", op, issue.Number)
	commitSHA, err := a.git.CreateCommit(ctx, message, treeSHA, []string{head.SHA})
	if err != nil {
		return fmt.Errorf("create commit: %w", err)
	}

	// Another writer may have advanced the branch while this sequence
	// ran; re-read the ref and refuse to clobber its commit.
	current, err := a.git.GetRef(ctx, ref)
	if err != nil {
		return fmt.Errorf("recheck ref %s: %w", ref, err)
	}
	if current.SHA != head.SHA {
		return fmt.Errorf("%w: head was %s, now %s", ErrRefMoved, head.SHA, current.SHA)
	}

	if err := a.git.UpdateRef(ctx, ref, commitSHA); err != nil {
		return fmt.Errorf("update ref %s: %w", ref, err)
	}

	a.log.Info("archived issue",
		"issue", issue.Number,
		"path", path,
		"commit", commitSHA,
		"op", string(op),
	)
	return nil
}
