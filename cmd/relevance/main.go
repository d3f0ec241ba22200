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
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/relevance"
	"github.com/poiesic/relevance/config"
	"github.com/poiesic/relevance/core"
	"github.com/poiesic/relevance/server"
)

const version = "0.1.0"

var (
	relevantStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	irrelevantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "relevance",
		Usage:   "Score how relevant one text is to another",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: ./relevance.yaml or ~/.config/relevance/config.yaml)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "score",
				Usage:  "Score a primary text against a secondary text",
				Action: scoreCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "primary",
						Aliases: []string{"p"},
						Usage:   "Primary text",
					},
					&cli.StringFlag{
						Name:    "secondary",
						Aliases: []string{"s"},
						Usage:   "Secondary text",
					},
					&cli.PathFlag{
						Name:  "primary-file",
						Usage: "Read the primary text from a file",
					},
					&cli.PathFlag{
						Name:  "secondary-file",
						Usage: "Read the secondary text from a file",
					},
					&cli.StringFlag{
						Name:  "pipeline",
						Usage: "Scoring pipeline (lexical, entity-topic, semantic); defaults to the configured pipeline",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (text, table, json)",
						Value:   "text",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the relevance HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (defaults to the configured address)",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the relevance tool over MCP on stdio",
				Action: mcpCommand,
			},
		},
	}
}

func scoreCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	primary, err := readText(c.String("primary"), c.Path("primary-file"))
	if err != nil {
		return fmt.Errorf("failed to read primary text: %w", err)
	}
	secondary, err := readText(c.String("secondary"), c.Path("secondary-file"))
	if err != nil {
		return fmt.Errorf("failed to read secondary text: %w", err)
	}

	pipeline, err := resolvePipeline(cfg, c.String("pipeline"))
	if err != nil {
		return err
	}

	format := strings.ToLower(c.String("format"))
	switch format {
	case "text", "table", "json":
	default:
		return fmt.Errorf("invalid format %q: must be one of text, table, json", format)
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	assessment, err := engine.Calculate(c.Context, pipeline, primary, secondary)
	if err != nil {
		return err
	}

	out := c.App.Writer
	switch format {
	case "json":
		return writeJSON(out, assessment)
	case "table":
		return writeTable(out, pipeline, assessment)
	default:
		return writeText(out, pipeline, assessment)
	}
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	pipeline, err := cfg.DefaultPipeline()
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	handler, err := server.NewHandler(engine,
		server.WithLogger(slog.Default()),
		server.WithDefaultPipeline(pipeline),
		server.WithVersion(version),
	)
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	addr := c.String("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx, addr, handler, slog.Default())
}

func mcpCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	pipeline, err := cfg.DefaultPipeline()
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	srv, err := server.NewMCPServer(engine,
		server.WithLogger(slog.Default()),
		server.WithDefaultPipeline(pipeline),
		server.WithVersion(version),
	)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ServeStdio(ctx, srv, slog.Default())
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return cfg, nil
	}
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.Debug("loaded config", "path", path)
	return cfg, nil
}

// newEngine builds an engine from config. The API key is read from the
// environment variable the config names; without it the semantic pipeline
// is unavailable but the others still work.
func newEngine(cfg *config.AppConfig) (*relevance.Engine, error) {
	apiKey := os.Getenv(cfg.Embedder.APIKeyEnv)
	engine, err := relevance.NewEngine(
		relevance.WithLogger(slog.Default()),
		relevance.WithAIConfig(cfg.AIConfig(apiKey)),
		relevance.WithPoolSize(cfg.Scoring.PoolSize),
		relevance.WithEmbeddingTimeout(cfg.EmbeddingTimeout()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return engine, nil
}

func resolvePipeline(cfg *config.AppConfig, name string) (core.Pipeline, error) {
	if name == "" {
		return cfg.DefaultPipeline()
	}
	return core.ParsePipeline(name)
}

// readText returns the inline text, or the file contents when a path is set.
func readText(inline, path string) (string, error) {
	if path == "" {
		return inline, nil
	}
	if inline != "" {
		return "", fmt.Errorf("text and file are mutually exclusive")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeJSON(w io.Writer, assessment *core.Assessment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(assessment)
}

func verdict(result core.RelevanceResult) string {
	if result.IsRelevant {
		return relevantStyle.Render("RELEVANT")
	}
	return irrelevantStyle.Render("NOT RELEVANT")
}

func writeText(w io.Writer, pipeline core.Pipeline, assessment *core.Assessment) error {
	r := assessment.Result
	if _, err := fmt.Fprintf(w, "%s %s\n", verdict(r), dimStyle.Render(fmt.Sprintf("(%s, score %.3f)", pipeline, r.Score))); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, r.Explanation)
	return err
}

func writeTable(w io.Writer, pipeline core.Pipeline, assessment *core.Assessment) error {
	r := assessment.Result
	if _, err := fmt.Fprintf(w, "%s %s\n", verdict(r), dimStyle.Render(string(pipeline))); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Component", "Score")
	for _, name := range componentOrder {
		v, ok := r.Components[name]
		if !ok {
			continue
		}
		if err := table.Append(name, fmt.Sprintf("%.3f", v)); err != nil {
			return err
		}
	}
	if err := table.Append("total", fmt.Sprintf("%.3f", r.Score)); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, r.Explanation)
	return err
}

var componentOrder = []string{
	core.ComponentKeywordOverlap,
	core.ComponentEntityOverlap,
	core.ComponentTopicSimilarity,
	core.ComponentSemanticSimilarity,
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

var _ server.Calculator = (*relevance.Engine)(nil)
