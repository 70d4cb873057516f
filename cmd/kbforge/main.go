// Copyright 2025 The kbforge Authors
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
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kbforge/kbforge"
	"github.com/kbforge/kbforge/ai"
	"github.com/kbforge/kbforge/ai/openai"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/httpapi"
	"github.com/kbforge/kbforge/reembed"
	"github.com/kbforge/kbforge/search"
	"github.com/kbforge/kbforge/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "kbforge",
		Usage: "Team knowledge base with hybrid lexical and semantic retrieval",
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
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: append(workspaceFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search the knowledge base from the command line",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: append(workspaceFlags(),
					&cli.Uint64Flag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User ID to search as",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Search mode (lexical or semantic)",
						Value:   "lexical",
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Ask a question answered from the authorized corpus",
				ArgsUsage: "QUESTION...",
				Action:    askCommand,
				Flags: append(workspaceFlags(),
					&cli.Uint64Flag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User ID to ask as",
						Required: true,
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all documents with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "embedding-dim",
						Usage: "Embedding dimension",
						Value: core.DefaultEmbeddingDim,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func workspaceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   "./kbforge_db",
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "generator-model",
			Usage: "Generator model name",
			Value: "qwen2.5:3b",
		},
		&cli.IntFlag{
			Name:  "embedding-dim",
			Usage: "Embedding dimension",
			Value: core.DefaultEmbeddingDim,
		},
	}
}

func openWorkspace(c *cli.Context) (*kbforge.Workspace, *ai.Config, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
		ai.WithEmbeddingDim(c.Int("embedding-dim")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	ws, err := kbforge.OpenWorkspace(c.String("db"), kbforge.WithAIConfig(aiConfig))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	return ws, aiConfig, nil
}

func serveCommand(c *cli.Context) error {
	ws, aiConfig, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	searchCfg := search.DefaultConfig()
	searchCfg.EmbeddingDim = aiConfig.EmbeddingDim
	searcher, err := ws.NewSearcher(search.WithConfig(searchCfg))
	if err != nil {
		return err
	}

	answerer, err := ws.NewAnswerer()
	if err != nil {
		return err
	}

	docService, err := ws.NewDocumentService()
	if err != nil {
		return err
	}
	defer docService.Release()

	teamService, err := ws.NewTeamService()
	if err != nil {
		return err
	}

	server := httpapi.NewServer(searcher, answerer, docService, teamService)

	errc := make(chan error, 1)
	go func() {
		errc <- server.Start(c.String("addr"))
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case sig := <-sigc:
		slog.Info("shutting down", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("query is required")
	}

	mode, err := search.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	ws, aiConfig, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	searchCfg := search.DefaultConfig()
	searchCfg.EmbeddingDim = aiConfig.EmbeddingDim
	searcher, err := ws.NewSearcher(search.WithConfig(searchCfg))
	if err != nil {
		return err
	}

	query := strings.Join(c.Args().Slice(), " ")
	results, err := searcher.Search(context.Background(), query, mode, core.ID(c.Uint64("user")))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: %q (%d)[%0.3f]\n", i, hit.Document.Title, hit.Document.Id, hit.Score)
		if hit.Document.Summary != "" {
			fmt.Printf("   %s\n", hit.Document.Summary)
		}
	}
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("question is required")
	}

	ws, _, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	answerer, err := ws.NewAnswerer()
	if err != nil {
		return err
	}

	question := strings.Join(c.Args().Slice(), " ")
	ans, err := answerer.Ask(context.Background(), question, core.ID(c.Uint64("user")))
	if err != nil {
		return err
	}

	fmt.Println(ans.Answer)
	if !ans.Grounded {
		fmt.Fprintln(os.Stderr, "(answer not grounded in the authorized corpus)")
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	dbPath := c.String("db")
	if dbPath == "" {
		return fmt.Errorf("database path is required")
	}

	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithEmbeddingDim(c.Int("embedding-dim")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		EmbeddingDim:   aiConfig.EmbeddingDim,
	}

	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}
	if reembedConfig.EmbeddingDim <= 0 {
		return fmt.Errorf("embedding-dim must be greater than 0")
	}

	reembedder := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

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
