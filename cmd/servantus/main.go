// Copyright 2025 CoolAir Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/coolair/servantus"
	"github.com/coolair/servantus/config"
	"github.com/coolair/servantus/core"
	"github.com/coolair/servantus/enrich"
	"github.com/coolair/servantus/metrics"
	"github.com/coolair/servantus/server"
	storebadger "github.com/coolair/servantus/store/badger"
)

func main() {
	app := &cli.App{
		Name:  "servantus",
		Usage: "Retrieval-augmented support assistant for the CoolAir store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API and the periodic enrichment scheduler",
				Action: serveCommand,
			},
			{
				Name:   "enrich",
				Usage:  "Run one enrichment pass over the stored events and exit",
				Action: enrichCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-items",
						Usage: "Maximum number of events to process (0 uses the configured default)",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Insert demo dialog events for local development",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "count",
						Usage: "Number of question/answer pairs to insert",
						Value: 10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	app, err := servantus.NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(cfg.EnrichIntervalSeconds) * time.Second
	scheduler, err := enrich.NewScheduler(app.Pipeline(), interval, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	mux := http.NewServeMux()
	api := server.New(app.Orchestrator(), app.Pipeline(), app.Reports(), metrics.New(), slog.Default())
	api.Register(mux)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}
	return nil
}

func enrichCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	app, err := servantus.NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.Pipeline().Run(context.Background(), c.Int("max-items"))
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Scanned:   %d\n", result.Scanned)
	fmt.Fprintf(os.Stderr, "Processed: %d\n", result.Processed)
	fmt.Fprintf(os.Stderr, "Records:   %d\n", result.Records)
	return nil
}

func seedCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.StoreInMemory && cfg.StorePath == "" {
		return fmt.Errorf("store_path is required")
	}

	events, err := storebadger.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open event store: %w", err)
	}
	defer events.Close()

	questions := []string{
		"Який кондиціонер підійде для кімнати 20 м²?",
		"Do you offer free delivery?",
		"Скільки коштує встановлення?",
		"Is there a warranty on Model A?",
		"Чи є у вас інверторні моделі?",
	}
	answers := []string{
		"Для кімнати 20 м² підійде модель потужністю 2.5 кВт.",
		"Yes, delivery is free for orders above 500.",
		"Встановлення коштує від 1500 гривень.",
		"Model A comes with a two-year warranty.",
		"Так, у нас є кілька інверторних моделей.",
	}

	ctx := context.Background()
	count := c.Int("count")
	for i := 0; i < count; i++ {
		dialogID := core.NewID()
		userID := fmt.Sprintf("demo-user-%d", i%3+1)
		question := questions[i%len(questions)]
		answer := answers[i%len(answers)]

		if _, err := events.Create(ctx, &core.Event{
			DialogID: dialogID,
			UserID:   userID,
			Step:     core.StepQuestion,
			Content:  question,
			Meta:     core.Meta{Lang: core.DefaultQuestionLang},
		}); err != nil {
			return fmt.Errorf("failed to seed question: %w", err)
		}
		if _, err := events.Create(ctx, &core.Event{
			DialogID: dialogID,
			UserID:   userID,
			Step:     core.StepAnswer,
			Content:  answer,
			Meta:     core.Meta{Lang: core.DefaultAnswerLang},
		}); err != nil {
			return fmt.Errorf("failed to seed answer: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Seeded %d question/answer pairs\n", count)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
