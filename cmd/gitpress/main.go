package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jadenj13/gitpress/internals/archive"
	"github.com/jadenj13/gitpress/internals/config"
	"github.com/jadenj13/gitpress/internals/gh"
	"github.com/jadenj13/gitpress/internals/hook"
	"github.com/jadenj13/gitpress/internals/notify"
	"github.com/jadenj13/gitpress/internals/rpc"
	"github.com/jadenj13/gitpress/internals/service"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	settings, err := config.Load(os.Getenv("GITPRESS_CONFIG"))
	if err != nil {
		log.Error("load settings", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gh.NewClient(ctx, settings.Token, settings.Owner, settings.Repo, settings.Branch)
	archiver := archive.NewArchiver(client, settings.Branch, log)

	registry := rpc.NewRegistry()
	server := rpc.NewServer(registry, log)

	notifiers := notify.Multi{notify.NewToaster(server)}
	if botToken := os.Getenv("SLACK_BOT_TOKEN"); botToken != "" {
		channel := os.Getenv("SLACK_CHANNEL_ID")
		notifiers = append(notifiers, notify.NewSlackNotifier(botToken, channel, log))
	}

	svc := service.New(client, archiver, notifiers, rpc.SettingsResult{
		Owner:  settings.Owner,
		Repo:   settings.Repo,
		Branch: settings.Branch,
	}, log)
	if err := svc.Register(registry); err != nil {
		log.Error("register handlers", "err", err)
		os.Exit(1)
	}

	// The webhook listener is optional; without it, posts edited on
	// github.com directly are re-archived on the next editor save only.
	if addr := os.Getenv("GITPRESS_WEBHOOK_ADDR"); addr != "" {
		secret := os.Getenv("GITPRESS_WEBHOOK_SECRET")
		hooks := hook.NewServer(archiver, secret, log)
		srv := &http.Server{
			Addr:         addr,
			Handler:      hooks.Handler(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			log.Info("webhook listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("webhook server error", "err", err)
			}
		}()
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			srv.Shutdown(shutCtx)
		}()
	}

	log.Info("gitpress host starting", "repo", settings.Owner+"/"+settings.Repo, "branch", settings.Branch)
	if err := server.Serve(ctx, stdio{}); err != nil {
		log.Error("rpc server exited with error", "err", err)
		os.Exit(1)
	}
}

// stdio is the duplex stream the webview bridge runs over.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return nil }

var _ io.ReadWriteCloser = stdio{}
