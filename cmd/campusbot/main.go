// Copyright 2025 Poiesic Systems
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
	"strings"

	campusbot "github.com/poiesic/campusbot"
	"github.com/poiesic/campusbot/ai"
	"github.com/poiesic/campusbot/chat"
	"github.com/poiesic/campusbot/config"
	"github.com/poiesic/campusbot/core"
	"github.com/poiesic/campusbot/ingest"
	"github.com/poiesic/campusbot/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "campusbot",
		Usage: "University assistant with document retrieval and lead collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Start an interactive assistant session on the console",
				Action: chatCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./campusbot-db",
					},
					&cli.StringFlag{
						Name:  "transcript",
						Usage: "Append question/answer pairs to this file",
					},
					&cli.StringFlag{
						Name:  "persona",
						Usage: "Read the system persona from this file instead of the default",
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Ingest a document into a collection",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./campusbot-db",
					},
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Target collection (syllabus, admission, food_menu, bus_details)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "path",
						Aliases:  []string{"p"},
						Usage:    "Document to ingest (.txt, .md, or .csv)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Clear the collection before ingesting",
					},
				},
			},
			{
				Name:   "leads",
				Usage:  "List the leads collected across sessions",
				Action: leadsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./campusbot-db",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiConfigFromEnv maps the environment configuration onto the AI config.
func aiConfigFromEnv(cfg *config.Config) *ai.Config {
	return ai.NewConfig(
		ai.WithAPIKey(cfg.GroqAPIKey),
		ai.WithEmbeddingHost(cfg.EmbeddingHost),
		ai.WithEmbeddingModel(cfg.EmbeddingModel),
		ai.WithChatHost(cfg.ChatHost),
		ai.WithChatModel(cfg.ChatModel),
	)
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	assistantOpts := []campusbot.AssistantOption{campusbot.WithAIConfig(aiConfigFromEnv(cfg))}
	if path := c.String("persona"); path != "" {
		persona, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read persona file: %w", err)
		}
		assistantOpts = append(assistantOpts, campusbot.WithPersona(strings.TrimSpace(string(persona))))
	}

	assistant, err := campusbot.NewAssistant(c.String("db"), assistantOpts...)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	var sessionOpts []chat.Option
	if path := c.String("transcript"); path != "" {
		transcript, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open transcript file: %w", err)
		}
		defer transcript.Close()
		sessionOpts = append(sessionOpts, chat.WithTranscript(transcript))
	}

	session, err := assistant.NewSession(sessionOpts...)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return session.Run(ctx, os.Stdin, os.Stdout)
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	collection := core.Collection(c.String("collection"))
	if err := core.ValidateCollection(collection); err != nil {
		return fmt.Errorf("invalid collection %q: must be one of %v", collection, core.Collections())
	}

	assistant, err := campusbot.NewAssistant(c.String("db"), campusbot.WithAIConfig(aiConfigFromEnv(cfg)))
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	if c.Bool("replace") {
		if err := assistant.ChunkRepository().DeleteCollection(ctx, collection); err != nil {
			return fmt.Errorf("failed to clear collection: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Cleared collection %s\n", collection)
	}

	pipeline, err := assistant.NewIngestionPipeline(ingest.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	count, err := pipeline.IngestFile(ctx, collection, c.String("path"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d chunks from %s into %s\n", count, c.String("path"), collection)
	return nil
}

func leadsCommand(c *cli.Context) error {
	ctx := context.Background()

	// Listing leads needs no AI services, just the store.
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo := badger.NewLeadRepository(backend)
	defer repo.Close()

	records, err := repo.ListLeads(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leads: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No leads collected yet.")
		return nil
	}

	fmt.Printf("Collected leads (%d):\n", len(records))
	for _, lead := range records {
		fmt.Printf("- session=%s name=%q reg=%q phone=%q email=%q dept=%q year=%q collected=%s\n",
			lead.SessionId, lead.Name, lead.RegistrationNumber, lead.Phone,
			lead.Email, lead.Department, lead.Year,
			lead.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
