// Package editor tracks the post being written: the working issue, the
// last persisted snapshot, and the derived dirty/submit flags.
package editor

import (
	"sync"

	"github.com/jadenj13/gitpress/internals/post"
)

// State is an immutable snapshot of the editor. Every mutation produces
// a new State; subscribers never observe a half-applied update.
type State struct {
	Issue     post.Issue `json:"issue"`
	Snapshot  post.Issue `json:"snapshot"`
	Changed   bool       `json:"changed"`
	CanSubmit bool       `json:"canSubmit"`
}

// Store serializes mutations and recomputes the derived flags on each
// one. Mutations apply in issuance order against the previous state.
type Store struct {
	mu    sync.Mutex
	state State
	subs  []func(State)
}

func NewStore() *Store {
	return &Store{state: initialState()}
}

func initialState() State {
	empty := post.NewIssue()
	return State{Issue: empty, Snapshot: empty}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every new snapshot, in order. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs[idx] = nil
	}
}

// SetIssue loads an issue into the editor, replacing both the working
// copy and the snapshot. The editor starts clean.
func (s *Store) SetIssue(issue post.Issue) {
	s.mutate(func(st State) State {
		st.Issue = issue
		st.Snapshot = issue
		return st
	})
}

func (s *Store) SetTitle(title string) {
	s.mutate(func(st State) State {
		st.Issue.Title = title
		return st
	})
}

func (s *Store) SetBody(body string) {
	s.mutate(func(st State) State {
		st.Issue.Body = body
		return st
	})
}

// AddLabel attaches a label; labels are a set by ID, so adding an
// attached label is a no-op.
func (s *Store) AddLabel(label post.Label) {
	s.mutate(func(st State) State {
		for _, l := range st.Issue.Labels {
			if l.ID == label.ID {
				return st
			}
		}
		labels := make([]post.Label, len(st.Issue.Labels), len(st.Issue.Labels)+1)
		copy(labels, st.Issue.Labels)
		st.Issue.Labels = append(labels, label)
		return st
	})
}

func (s *Store) RemoveLabel(id string) {
	s.mutate(func(st State) State {
		labels := make([]post.Label, 0, len(st.Issue.Labels))
		for _, l := range st.Issue.Labels {
			if l.ID != id {
				labels = append(labels, l)
			}
		}
		st.Issue.Labels = labels
		return st
	})
}

// Reset restores the empty-issue initial state.
func (s *Store) Reset() {
	s.mutate(func(State) State {
		return initialState()
	})
}

func (s *Store) mutate(fn func(State) State) {
	s.mu.Lock()
	st := fn(s.state)
	st.Changed = post.CompareIssue(st.Issue, st.Snapshot)
	st.CanSubmit = st.Issue.Title != "" && st.Issue.Body != ""
	s.state = st
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		if fn != nil {
			fn(st)
		}
	}
}
