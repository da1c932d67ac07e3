package gh

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
)

// Kind classifies an API failure for display purposes.
type Kind string

const (
	KindGraphQL Kind = "GRAPHQL"
	KindREST    Kind = "REST"
	KindUnknown Kind = "UNKNOWN"
)

// Error is the only error type this package lets escape. It is
// serializable as-is, so the RPC layer can ship it to the webview.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Classify converts an arbitrary error into *Error. HTTP failures are
// REST unless the failed request URL contains /graphql; anything without
// a request context is UNKNOWN.
func Classify(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		kind := KindREST
		if ghErr.Response != nil && ghErr.Response.Request != nil &&
			strings.Contains(ghErr.Response.Request.URL.Path, "/graphql") {
			kind = KindGraphQL
		}
		return &Error{Kind: kind, Message: ghErr.Message, Detail: err.Error()}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		kind := KindREST
		if strings.Contains(urlErr.URL, "/graphql") {
			kind = KindGraphQL
		}
		return &Error{Kind: kind, Message: urlErr.Err.Error(), Detail: err.Error()}
	}

	return &Error{Kind: KindUnknown, Message: err.Error()}
}

// translateConflict rewrites duplicate-name failures into a message that
// names the conflicting value. GitHub reports these only through the
// error text, so this is a substring match by necessity.
func translateConflict(err error, value string) error {
	msg := err.Error()
	if strings.Contains(msg, "already_exists") || strings.Contains(msg, "already exists") {
		e := Classify(err)
		return &Error{
			Kind:    e.Kind,
			Message: fmt.Sprintf("%q already exists", value),
			Detail:  msg,
		}
	}
	return err
}
