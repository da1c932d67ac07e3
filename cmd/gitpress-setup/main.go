package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jadenj13/gitpress/internals/config"
	"github.com/jadenj13/gitpress/internals/gh"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	path := os.Getenv("GITPRESS_CONFIG")
	if path == "" {
		path = config.DefaultPath()
	}

	// Best effort: a broken existing file just means no defaults.
	prev, _ := config.Load(path)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wizard := config.NewWizard(os.Stdin, os.Stdout, verifyAccess)
	settings, err := wizard.Run(ctx, prev)
	if err != nil {
		log.Error("setup failed", "err", err)
		os.Exit(1)
	}

	if err := settings.Save(path); err != nil {
		log.Error("save settings", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Settings written to %s\n", path)
}

// verifyAccess fetches the repository metadata with the entered token so
// typos fail here instead of on the first post.
func verifyAccess(ctx context.Context, s config.Settings) error {
	client := gh.NewClient(ctx, s.Token, s.Owner, s.Repo, s.Branch)
	if _, err := client.GetRepo(ctx); err != nil {
		return err
	}
	return nil
}
