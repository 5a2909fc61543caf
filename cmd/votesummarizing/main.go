package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/vncsmyrnk/pollgate/internal/adapters/clock"
	"github.com/vncsmyrnk/pollgate/internal/adapters/repository"
	"github.com/vncsmyrnk/pollgate/internal/config"
	"github.com/vncsmyrnk/pollgate/internal/core/services"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load("votesummarizing", os.Args[1:])
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	summaryService := services.NewSummaryService(repo, clock.NewSystemClock())

	logger.Info("starting vote summarization job")

	summaries, err := summaryService.SummarizeAllPolls(ctx)
	if err != nil {
		logger.Error("error summarizing votes", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summaries); err != nil {
		logger.Error("failed to write summaries", "error", err)
		os.Exit(1)
	}

	logger.Info("vote summarization completed", "polls", len(summaries))
}
