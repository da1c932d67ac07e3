package service

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/jadenj13/gitpress/internals/archive"
	"github.com/jadenj13/gitpress/internals/gh"
	"github.com/jadenj13/gitpress/internals/post"
	"github.com/jadenj13/gitpress/internals/rpc"
)

type fakeAPI struct {
	API // panic on anything not overridden

	mu        sync.Mutex
	listCalls []rpc.FilterParams
	created   []gh.IssueInput
	updated   []rpc.UpdateIssueParams
}

func (f *fakeAPI) ListIssues(ctx context.Context, page int, labels []string, title string) ([]post.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, rpc.FilterParams{Page: page, Labels: labels, Title: title})
	return []post.Issue{}, nil
}

func (f *fakeAPI) CreateIssue(ctx context.Context, input gh.IssueInput) (post.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, input)
	return post.Issue{ID: "I_1", Number: 9, Title: input.Title, Body: input.Body}, nil
}

func (f *fakeAPI) UpdateIssue(ctx context.Context, number int, input gh.IssueInput) (post.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, rpc.UpdateIssueParams{Number: number, Title: input.Title})
	return post.Issue{ID: "I_1", Number: number, Title: input.Title, Body: input.Body}, nil
}

type fakeArchiver struct {
	mu    sync.Mutex
	calls []archive.Op
	err   error
}

func (f *fakeArchiver) Archive(ctx context.Context, issue post.Issue, op archive.Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	return f.err
}

func (f *fakeArchiver) ops() []archive.Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]archive.Op(nil), f.calls...)
}

type fakeNotifier struct {
	mu     sync.Mutex
	errors []string
}

func (f *fakeNotifier) Success(ctx context.Context, message string) {}

func (f *fakeNotifier) Error(ctx context.Context, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, message)
}

func (f *fakeNotifier) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.errors...)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

func startService(t *testing.T, api *fakeAPI, arch *fakeArchiver, n *fakeNotifier) *rpc.Caller {
	t.Helper()

	svc := New(api, arch, n, rpc.SettingsResult{Owner: "a", Repo: "b", Branch: "main"}, testLogger())
	reg := rpc.NewRegistry()
	if err := svc.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	hostSide, viewSide := net.Pipe()
	server := rpc.NewServer(reg, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = server.Serve(ctx, hostSide)
	}()

	caller := rpc.NewCaller(ctx, viewSide, nil)
	t.Cleanup(func() {
		caller.Close()
		hostSide.Close()
		cancel()
		<-done
	})
	return caller
}

func TestRegisterWholeSurfaceOnce(t *testing.T) {
	svc := New(&fakeAPI{}, &fakeArchiver{}, &fakeNotifier{}, rpc.SettingsResult{}, testLogger())
	reg := rpc.NewRegistry()
	if err := svc.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Registering twice on the same registry collides on every command.
	if err := svc.Register(reg); err == nil {
		t.Fatalf("second registration should fail")
	}
}

func TestGetIssuesPassthrough(t *testing.T) {
	api := &fakeAPI{}
	caller := startService(t, api, &fakeArchiver{}, &fakeNotifier{})

	ctx := context.Background()
	if _, err := rpc.Call[[]post.Issue](ctx, caller, rpc.CmdGetIssues, rpc.PageParams{Page: 2}); err != nil {
		t.Fatalf("get_issues: %v", err)
	}
	if _, err := rpc.Call[[]post.Issue](ctx, caller, rpc.CmdGetIssuesWithFilter, rpc.FilterParams{
		Page: 1, Labels: []string{"bug", "docs"}, Title: "x",
	}); err != nil {
		t.Fatalf("get_issues_with_filter: %v", err)
	}

	if len(api.listCalls) != 2 {
		t.Fatalf("list calls = %d", len(api.listCalls))
	}
	if api.listCalls[0].Page != 2 || api.listCalls[0].Labels != nil || api.listCalls[0].Title != "" {
		t.Fatalf("unfiltered call = %+v", api.listCalls[0])
	}
	if len(api.listCalls[1].Labels) != 2 || api.listCalls[1].Title != "x" {
		t.Fatalf("filtered call = %+v", api.listCalls[1])
	}
}

func TestCreateIssueArchives(t *testing.T) {
	api := &fakeAPI{}
	arch := &fakeArchiver{}
	caller := startService(t, api, arch, &fakeNotifier{})

	issue, err := rpc.Call[post.Issue](context.Background(), caller, rpc.CmdCreateIssue, gh.IssueInput{
		Title: "t", Body: "b",
	})
	if err != nil {
		t.Fatalf("create_issue: %v", err)
	}
	if issue.Number != 9 {
		t.Fatalf("issue = %+v", issue)
	}
	if ops := arch.ops(); len(ops) != 1 || ops[0] != archive.OpCreate {
		t.Fatalf("archive ops = %v", ops)
	}
}

func TestArchiveFailureIsNonFatal(t *testing.T) {
	api := &fakeAPI{}
	arch := &fakeArchiver{err: errors.New("ref moved")}
	notifier := &fakeNotifier{}
	caller := startService(t, api, arch, notifier)

	issue, err := rpc.Call[post.Issue](context.Background(), caller, rpc.CmdUpdateIssue, rpc.UpdateIssueParams{
		Number: 9, Title: "t", Body: "b",
	})
	if err != nil {
		t.Fatalf("update must succeed even when archiving fails, got %v", err)
	}
	if issue.Number != 9 {
		t.Fatalf("issue = %+v", issue)
	}

	deadline := time.Now().Add(time.Second)
	for len(notifier.messages()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	msgs := notifier.messages()
	if len(msgs) != 1 || msgs[0] != "Issue Archive Failed" {
		t.Fatalf("warning toast = %v", msgs)
	}
}

func TestGetSettingsRedactsToken(t *testing.T) {
	caller := startService(t, &fakeAPI{}, &fakeArchiver{}, &fakeNotifier{})

	settings, err := rpc.Call[rpc.SettingsResult](context.Background(), caller, rpc.CmdGetSettings, struct{}{})
	if err != nil {
		t.Fatalf("get_settings: %v", err)
	}
	if settings.Owner != "a" || settings.Repo != "b" || settings.Branch != "main" {
		t.Fatalf("settings = %+v", settings)
	}
}
