package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pavelanni/trivium/internal/generator"
	"github.com/pavelanni/trivium/internal/handler"
	"github.com/pavelanni/trivium/internal/llm"
	"github.com/pavelanni/trivium/internal/news"
	"github.com/pavelanni/trivium/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "trivium",
		Short: "Trivia game server powered by LLMs",
	}

	serve := serveCmd()
	root.AddCommand(serve)

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `trivium --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP trivia server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":4000", "HTTP listen address")
	f.String("db", "", "SQLite database path (empty = in-memory stores)")
	f.String("redis-addr", "", "Redis address for shared fingerprint history (empty = disabled)")
	f.String("provider-order", strings.Join(llm.DefaultOrder, ","), "Ranked provider order (comma-separated)")
	f.String("openai-key", "", "OpenAI API key")
	f.String("openai-model", "", "OpenAI model name")
	f.String("openai-base-url", "", "OpenAI-compatible API base URL")
	f.String("gemini-key", "", "Gemini API key")
	f.String("gemini-model", "", "Gemini model name")
	f.String("anthropic-key", "", "Anthropic API key")
	f.String("anthropic-model", "", "Anthropic model name")
	f.String("news-key", "", "News API key for current-events grounding (optional)")
	f.IntP("per-category", "n", 2, "Questions generated per selected category")
	f.Int("max-attempts", 6, "Attempt ceiling for per-category generation")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("TRIVIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("trivium")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/trivium")
	v.AddConfigPath("/etc/trivium")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	ctx := context.Background()

	// Build the ranked provider chain from whatever keys are configured.
	llmCfg := llm.Config{
		Order: splitOrder(v.GetString("provider-order")),
		OpenAI: llm.OpenAIConfig{
			APIKey:  v.GetString("openai-key"),
			Model:   v.GetString("openai-model"),
			BaseURL: v.GetString("openai-base-url"),
		},
		Gemini: llm.GeminiConfig{
			APIKey: v.GetString("gemini-key"),
			Model:  v.GetString("gemini-model"),
		},
		Anthropic: llm.AnthropicConfig{
			APIKey: v.GetString("anthropic-key"),
			Model:  v.GetString("anthropic-model"),
		},
	}
	chain, err := llmCfg.NewChain(ctx)
	if err != nil {
		return fmt.Errorf("create provider chain: %w", err)
	}

	newsClient := news.New(v.GetString("news-key"))
	if newsClient == nil {
		slog.Info("news key not set, current-events grounding disabled")
	}

	// Stores: in-memory by default, sqlite when --db is set, with an
	// optional redis fingerprint backend on top.
	var games store.GameStore = store.NewMemoryGames()
	var fingerprints store.FingerprintStore = store.NewMemoryFingerprints()
	if dbPath := v.GetString("db"); dbPath != "" {
		db, err := store.NewSQLite(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		games = db
		fingerprints = db
		slog.Info("using sqlite store", "path", dbPath)
	}
	if redisAddr := v.GetString("redis-addr"); redisAddr != "" {
		rf, err := store.NewRedisFingerprints(ctx, redisAddr)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rf.Close()
		fingerprints = rf
		slog.Info("using redis fingerprint store", "addr", redisAddr)
	}

	gen := generator.New(chain, newsClient, v.GetInt("max-attempts"))
	h := handler.New(games, fingerprints, gen, v.GetInt("per-category"))

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Route("/api", func(api chi.Router) {
		h.Routes(api)
	})

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"providers", chain.Names(),
		"per_category", v.GetInt("per-category"),
		"max_attempts", v.GetInt("max-attempts"),
	)
	return http.ListenAndServe(addr, r)
}

func splitOrder(order string) []string {
	var out []string
	for _, name := range strings.Split(order, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
