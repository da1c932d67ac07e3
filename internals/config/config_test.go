package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := Settings{Token: "tok", Owner: "alice", Repo: "blog", Branch: "main"}
	if err := in.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != in {
		t.Fatalf("round trip: %+v != %+v", out, in)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := Settings{Token: "tok", Owner: "alice", Repo: "blog", Branch: "main"}
	if err := in.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Setenv("GITPRESS_BRANCH", "archive")
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Branch != "archive" {
		t.Fatalf("env override lost: %+v", out)
	}
	if out.Token != "tok" {
		t.Fatalf("file value lost: %+v", out)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("want ErrNotConfigured, got %v", err)
	}
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("GITPRESS_TOKEN", "tok")
	t.Setenv("GITPRESS_OWNER", "alice")
	t.Setenv("GITPRESS_REPO", "blog")

	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("environment-only config should load: %v", err)
	}
	if s.Owner != "alice" || s.Branch != "" {
		t.Fatalf("settings = %+v", s)
	}
}
