// Package hook keeps on-repo archives in sync with edits made directly
// on github.com, outside the editor: a webhook listener re-archives an
// issue whenever GitHub reports it edited.
package hook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jadenj13/gitpress/internals/archive"
	"github.com/jadenj13/gitpress/internals/post"
)

// Archiver matches archive.Archiver.
type Archiver interface {
	Archive(ctx context.Context, issue post.Issue, op archive.Op) error
}

type Server struct {
	archiver Archiver
	secret   string
	log      *slog.Logger
}

func NewServer(archiver Archiver, secret string, log *slog.Logger) *Server {
	return &Server{archiver: archiver, secret: secret, log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook/github", s.handleGitHub)
	return mux
}

type webhookPayload struct {
	Action string          `json:"action"`
	Issue  json.RawMessage `json:"issue"`
}

func (s *Server) handleGitHub(w http.ResponseWriter, r *http.Request) {
	body, err := s.readAndVerify(r)
	if err != nil {
		s.log.Warn("webhook verify failed", "err", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("x-github-event") != "issues" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	if payload.Action != "edited" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	issue, err := post.DecodeRESTIssue(payload.Issue)
	if err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	go func() {
		ctx := context.Background()
		if err := s.archiver.Archive(ctx, issue, archive.OpUpdate); err != nil {
			s.log.Error("re-archive failed", "issue", issue.Number, "err", err)
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) readAndVerify(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if s.secret == "" {
		return body, nil // verification disabled
	}
	sig := r.Header.Get("x-hub-signature-256")
	if !verifyHMAC(body, s.secret, sig) {
		return nil, fmt.Errorf("signature mismatch")
	}
	return body, nil
}

func verifyHMAC(body []byte, secret, sig string) bool {
	sig = strings.TrimPrefix(sig, "sha256=")
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(sig))
}
