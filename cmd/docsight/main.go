// Copyright 2026 The docsight Authors
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
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/docsight/docsight"
	"github.com/docsight/docsight/ai"
	"github.com/docsight/docsight/config"
	"github.com/docsight/docsight/httpapi"
	"github.com/docsight/docsight/pipeline"
	"github.com/docsight/docsight/session"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Missing .env is fine; secrets can come from the real environment.
	godotenv.Load()

	app := &cli.App{
		Name:  "docsight",
		Usage: "Session-scoped question answering over uploaded documents",
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
				Usage:  "Run the HTTP server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML config file",
						Value:   "config.yaml",
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address, overrides the config file",
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
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.AI.EmbeddingHost),
		ai.WithGeneratorHost(cfg.AI.GeneratorHost),
		ai.WithEmbeddingModel(cfg.AI.EmbeddingModel),
		ai.WithGeneratorModel(cfg.AI.GeneratorModel),
		ai.WithAPIKey(cfg.AI.APIKey()),
		ai.WithRequestTimeout(time.Duration(cfg.AI.TimeoutSecs)*time.Second),
	)

	assistant, err := docsight.New(
		docsight.WithAIConfig(aiConfig),
		docsight.WithPipelineOptions(
			pipeline.WithChunking(cfg.Chunking.Size, cfg.Chunking.Overlap),
			pipeline.WithTopK(cfg.Query.TopK),
			pipeline.WithMaxHistoryTurns(cfg.Query.MaxHistoryTurns),
		),
		docsight.WithSessionOptions(
			session.WithCapacity(cfg.Session.Capacity),
			session.WithTTL(time.Duration(cfg.Session.IdleTTLSecs)*time.Second),
		),
	)
	if err != nil {
		return err
	}
	defer assistant.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	httpapi.NewHandler(assistant.Pipeline()).Register(e)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("server listening", "addr", cfg.Server.Addr)
		if err := e.Start(cfg.Server.Addr); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return group.Wait()
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
