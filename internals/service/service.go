// Package service owns the host side of the editor: it binds the RPC
// command surface to the API client and runs the archiver after issue
// writes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jadenj13/gitpress/internals/archive"
	"github.com/jadenj13/gitpress/internals/gh"
	"github.com/jadenj13/gitpress/internals/notify"
	"github.com/jadenj13/gitpress/internals/post"
	"github.com/jadenj13/gitpress/internals/rpc"
)

// API is everything the service needs from the GitHub client.
type API interface {
	GetRepo(ctx context.Context) (gh.Repo, error)
	ListIssues(ctx context.Context, page int, labels []string, title string) ([]post.Issue, error)
	CountIssues(ctx context.Context, title string, labels []string) (int, error)
	CreateIssue(ctx context.Context, input gh.IssueInput) (post.Issue, error)
	UpdateIssue(ctx context.Context, number int, input gh.IssueInput) (post.Issue, error)
	ListLabels(ctx context.Context) ([]post.Label, error)
	CreateLabel(ctx context.Context, input gh.LabelInput) (post.Label, error)
	UpdateLabel(ctx context.Context, name string, input gh.LabelInput) (post.Label, error)
	DeleteLabel(ctx context.Context, name string) error
	UploadImage(ctx context.Context, base64Content, path string) (string, error)
	GetRef(ctx context.Context, ref string) (gh.Ref, error)
	UpdateRef(ctx context.Context, ref, sha string) error
	GetCommit(ctx context.Context, sha string) (gh.Commit, error)
	CreateBlob(ctx context.Context, content, encoding string) (string, error)
	CreateTree(ctx context.Context, baseTreeSHA string, entries []gh.TreeEntry) (string, error)
	CreateCommit(ctx context.Context, message, treeSHA string, parents []string) (string, error)
}

// Archiver persists post snapshots; failures must stay non-fatal.
type Archiver interface {
	Archive(ctx context.Context, issue post.Issue, op archive.Op) error
}

type Service struct {
	api      API
	archiver Archiver
	notifier notify.Notifier
	settings rpc.SettingsResult
	openLink func(url string) error
	log      *slog.Logger
}

type Option func(*Service)

// WithLinkOpener replaces how open_external_link reaches the browser.
func WithLinkOpener(open func(url string) error) Option {
	return func(s *Service) { s.openLink = open }
}

func New(api API, archiver Archiver, notifier notify.Notifier, settings rpc.SettingsResult, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		api:      api,
		archiver: archiver,
		notifier: notifier,
		settings: settings,
		openLink: openBrowser,
		log:      log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register binds every command to the registry. A duplicate registration
// anywhere aborts with that error.
func (s *Service) Register(reg *rpc.Registry) error {
	type empty = struct{}

	regs := []error{
		rpc.Handle(reg, rpc.CmdGetRepo, func(ctx context.Context, _ empty) (gh.Repo, error) {
			return s.api.GetRepo(ctx)
		}),
		rpc.Handle(reg, rpc.CmdGetIssues, func(ctx context.Context, p rpc.PageParams) ([]post.Issue, error) {
			return s.api.ListIssues(ctx, p.Page, nil, "")
		}),
		rpc.Handle(reg, rpc.CmdGetIssuesWithFilter, func(ctx context.Context, p rpc.FilterParams) ([]post.Issue, error) {
			return s.api.ListIssues(ctx, p.Page, p.Labels, p.Title)
		}),
		rpc.Handle(reg, rpc.CmdGetIssueCount, func(ctx context.Context, _ empty) (rpc.CountResult, error) {
			n, err := s.api.CountIssues(ctx, "", nil)
			return rpc.CountResult{Count: n}, err
		}),
		rpc.Handle(reg, rpc.CmdGetIssueCountWithFilter, func(ctx context.Context, p rpc.CountParams) (rpc.CountResult, error) {
			n, err := s.api.CountIssues(ctx, p.Title, p.Labels)
			return rpc.CountResult{Count: n}, err
		}),
		rpc.Handle(reg, rpc.CmdCreateIssue, func(ctx context.Context, p gh.IssueInput) (post.Issue, error) {
			issue, err := s.api.CreateIssue(ctx, p)
			if err != nil {
				return post.Issue{}, err
			}
			s.archiveAndWarn(ctx, issue, archive.OpCreate)
			return issue, nil
		}),
		rpc.Handle(reg, rpc.CmdUpdateIssue, func(ctx context.Context, p rpc.UpdateIssueParams) (post.Issue, error) {
			issue, err := s.api.UpdateIssue(ctx, p.Number, gh.IssueInput{
				Title:  p.Title,
				Body:   p.Body,
				Labels: p.Labels,
			})
			if err != nil {
				return post.Issue{}, err
			}
			s.archiveAndWarn(ctx, issue, archive.OpUpdate)
			return issue, nil
		}),
		rpc.Handle(reg, rpc.CmdGetLabels, func(ctx context.Context, _ empty) ([]post.Label, error) {
			return s.api.ListLabels(ctx)
		}),
		rpc.Handle(reg, rpc.CmdCreateLabel, func(ctx context.Context, p gh.LabelInput) (post.Label, error) {
			return s.api.CreateLabel(ctx, p)
		}),
		rpc.Handle(reg, rpc.CmdUpdateLabel, func(ctx context.Context, p rpc.UpdateLabelParams) (post.Label, error) {
			return s.api.UpdateLabel(ctx, p.Name, p.Label)
		}),
		rpc.Handle(reg, rpc.CmdDeleteLabel, func(ctx context.Context, p rpc.NameParams) (empty, error) {
			return empty{}, s.api.DeleteLabel(ctx, p.Name)
		}),
		rpc.Handle(reg, rpc.CmdGetRef, func(ctx context.Context, p rpc.RefParams) (gh.Ref, error) {
			return s.api.GetRef(ctx, p.Ref)
		}),
		rpc.Handle(reg, rpc.CmdUpdateRef, func(ctx context.Context, p rpc.UpdateRefParams) (empty, error) {
			return empty{}, s.api.UpdateRef(ctx, p.Ref, p.SHA)
		}),
		rpc.Handle(reg, rpc.CmdGetCommit, func(ctx context.Context, p rpc.SHAParams) (gh.Commit, error) {
			return s.api.GetCommit(ctx, p.SHA)
		}),
		rpc.Handle(reg, rpc.CmdCreateBlob, func(ctx context.Context, p rpc.CreateBlobParams) (rpc.SHAResult, error) {
			sha, err := s.api.CreateBlob(ctx, p.Content, p.Encoding)
			return rpc.SHAResult{SHA: sha}, err
		}),
		rpc.Handle(reg, rpc.CmdCreateTree, func(ctx context.Context, p rpc.CreateTreeParams) (rpc.SHAResult, error) {
			sha, err := s.api.CreateTree(ctx, p.BaseTree, p.Entries)
			return rpc.SHAResult{SHA: sha}, err
		}),
		rpc.Handle(reg, rpc.CmdCreateCommit, func(ctx context.Context, p rpc.CreateCommitParams) (rpc.SHAResult, error) {
			sha, err := s.api.CreateCommit(ctx, p.Message, p.Tree, p.Parents)
			return rpc.SHAResult{SHA: sha}, err
		}),
		rpc.Handle(reg, rpc.CmdGetSettings, func(ctx context.Context, _ empty) (rpc.SettingsResult, error) {
			return s.settings, nil
		}),
		rpc.Handle(reg, rpc.CmdUploadImage, func(ctx context.Context, p rpc.UploadImageParams) (rpc.UploadImageResult, error) {
			url, err := s.api.UploadImage(ctx, p.Content, p.Path)
			return rpc.UploadImageResult{URL: url}, err
		}),
		rpc.Handle(reg, rpc.CmdOpenExternalLink, func(ctx context.Context, p rpc.LinkParams) (empty, error) {
			if err := s.openLink(p.URL); err != nil {
				return empty{}, fmt.Errorf("open link: %w", err)
			}
			return empty{}, nil
		}),
	}

	for _, err := range regs {
		if err != nil {
			return err
		}
	}
	return nil
}

// archiveAndWarn runs the sequencer after a successful issue write. The
// write already succeeded, so an archive failure only produces a warning
// toast.
func (s *Service) archiveAndWarn(ctx context.Context, issue post.Issue, op archive.Op) {
	if err := s.archiver.Archive(ctx, issue, op); err != nil {
		s.log.Warn("archive failed", "issue", issue.Number, "err", err)
		s.notifier.Error(ctx, "Issue Archive Failed")
	}
}
