package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"github.com/owasp-blt/showcase/config"
	"github.com/owasp-blt/showcase/contests"
	"github.com/owasp-blt/showcase/metrics"
	"github.com/owasp-blt/showcase/renderers"
	"github.com/owasp-blt/showcase/sources"
)

func main() {
	config.LoadConfig()

	opts := slog.HandlerOptions{Level: config.Config.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts)).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	contestList, err := contests.Load(config.Config.ContestsPath)
	if err != nil {
		logger.Error("failed to load contests", "error", err)
		os.Exit(1)
	}

	client := sources.NewGithubClient(
		logger,
		&http.Client{Timeout: 30 * time.Second},
		config.Config.GithubAPIURL,
		config.Config.Repository,
		config.Config.GithubToken,
	)
	renderer := renderers.NewPageRenderer(config.Config.Repository, config.Config.OutputPath, config.Config.RankMode)
	recorder := metrics.NewRecorder()
	builder := NewBuilder(logger, client, renderer, recorder, contestList)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("building showcase",
		"repo", config.Config.Repository,
		"output", config.Config.OutputPath,
		"contests", len(contestList),
		"authenticated", config.Config.GithubToken != "")

	if err := builder.Build(ctx); err != nil {
		logger.Error("build failed", "error", err)
		os.Exit(1)
	}

	if config.Config.PushgatewayURL != "" {
		if err := recorder.Push(config.Config.PushgatewayURL); err != nil {
			logger.Error("failed to push build metrics", "error", err)
		}
	}
}
