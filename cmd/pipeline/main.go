package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
	"github.com/nguyentantai21042004/paper-flow/internal/processor"
	"github.com/nguyentantai21042004/paper-flow/internal/watcher"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	watch := flag.Bool("watch", false, "watch the inbox directory for PDFs instead of fetching the feed once")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Paper Video Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Language: %s, TTS: %s, Mode: %s", cfg.Summary.Language, cfg.TTS.Backend, cfg.Video.Mode)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)

	proc, err := processor.Build(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}

	if *watch {
		if err := runWatch(ctx, cfg, proc, log); err != nil {
			log.Error(ctx, "Watcher error: %v", err)
			os.Exit(1)
		}
		return
	}

	os.Exit(runOnce(ctx, proc, log))
}

// runOnce processes the newest feed paper and returns the exit code.
func runOnce(ctx context.Context, proc processor.Processor, log logger.Logger) int {
	result, err := proc.Process(ctx)
	if err != nil {
		var stageErr *processor.StageError
		if errors.As(err, &stageErr) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", stageErr.Stage, stageErr.Err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return 1
	}

	switch result.Outcome {
	case models.OutcomeNoPapers:
		log.Info(ctx, "No papers found")
	case models.OutcomeSuccess:
		log.Info(ctx, "Video: %s (%.1fs)", result.Video.Path, result.Video.TotalDuration)
		if result.ReportPath != "" {
			log.Info(ctx, "Report: %s", result.ReportPath)
		}
	}
	return 0
}

func runWatch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) error {
	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	inbox := processor.NewInboxHandler(cfg, proc, log)
	w, err := watcher.New(cfg.Paths.Inbox, inbox.Handle, log)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info(ctx, "Pipeline stopped")
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	for _, dir := range []string{cfg.Paths.Inbox, cfg.Paths.Temp, cfg.Paths.Output} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
