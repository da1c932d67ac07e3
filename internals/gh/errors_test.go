package gh

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-github/v60/github"
)

func httpErrorResponse(path, message string) *github.ErrorResponse {
	req, _ := http.NewRequest(http.MethodPost, "https://api.github.com"+path, nil)
	return &github.ErrorResponse{
		Response: &http.Response{Request: req, StatusCode: http.StatusUnprocessableEntity},
		Message:  message,
	}
}

func TestClassifyREST(t *testing.T) {
	err := Classify(httpErrorResponse("/repos/a/b/labels", "Validation Failed"))
	if err.Kind != KindREST {
		t.Fatalf("kind = %s, want REST", err.Kind)
	}
	if err.Message != "Validation Failed" {
		t.Fatalf("message = %q", err.Message)
	}
}

func TestClassifyGraphQLByURL(t *testing.T) {
	err := Classify(httpErrorResponse("/graphql", "boom"))
	if err.Kind != KindGraphQL {
		t.Fatalf("kind = %s, want GRAPHQL", err.Kind)
	}

	uerr := &url.Error{Op: "Post", URL: "https://api.github.com/graphql", Err: errors.New("timeout")}
	if got := Classify(uerr); got.Kind != KindGraphQL {
		t.Fatalf("url.Error kind = %s, want GRAPHQL", got.Kind)
	}
}

func TestClassifyUnknown(t *testing.T) {
	err := Classify(errors.New("something odd"))
	if err.Kind != KindUnknown {
		t.Fatalf("kind = %s, want UNKNOWN", err.Kind)
	}
	if err.Message != "something odd" {
		t.Fatalf("message = %q", err.Message)
	}
}

func TestClassifyPassesThroughTypedErrors(t *testing.T) {
	orig := &Error{Kind: KindGraphQL, Message: "already classified"}
	wrapped := fmt.Errorf("call failed: %w", orig)
	if got := Classify(wrapped); got != orig {
		t.Fatalf("typed error should pass through unchanged, got %+v", got)
	}
}

func TestTranslateConflict(t *testing.T) {
	err := translateConflict(httpErrorResponse("/repos/a/b/labels", "already_exists"), "bug")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *Error, got %T", err)
	}
	if apiErr.Message != `"bug" already exists` {
		t.Fatalf("message = %q", apiErr.Message)
	}

	// Unrelated errors pass through untouched.
	plain := errors.New("rate limited")
	if got := translateConflict(plain, "bug"); got != plain {
		t.Fatalf("unrelated error rewritten: %v", got)
	}
}
