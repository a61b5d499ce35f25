package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quizmark/quizmark/internal/handler"
	appI18n "github.com/quizmark/quizmark/internal/i18n"
	"github.com/quizmark/quizmark/internal/markdown"
	"github.com/quizmark/quizmark/internal/parser"
	"github.com/quizmark/quizmark/internal/quiz"
	"github.com/quizmark/quizmark/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quizmark",
		Short: "Interactive quizzes from markdown question documents",
	}

	serve := serveCmd()
	root.AddCommand(serve, playCmd(), lintCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `quizmark --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve parsed question sets over HTTP",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.IntP("count", "n", quiz.DefaultCount, "Max questions per set")
	f.StringSliceP("questions", "q", nil, "Question document locations (repeatable)")
	f.StringP("locale", "l", "en", "UI language (en, ru)")
	f.String("theme", "", "Presentation theme hint passed through to the widget")
	f.Bool("strip-raw", true, "Strip templating passthrough markers before parsing")
	f.String("cache-db", "", "SQLite path for the document cache (empty = no cache)")
	f.Duration("cache-ttl", 15*time.Minute, "Document cache freshness window")
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

	v.SetEnvPrefix("QUIZMARK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("quizmark")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/quizmark")
	v.AddConfigPath("/etc/quizmark")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// quizConfig assembles the controller configuration shared by serve and play.
// The `questions` flag (or config key) is the flat source list; a `groups`
// config map takes precedence when present.
func quizConfig(v *viper.Viper) (quiz.Config, error) {
	cfg := quiz.Config{
		Count:    v.GetInt("count"),
		Sources:  v.GetStringSlice("questions"),
		Groups:   v.GetStringMapStringSlice("groups"),
		StripRaw: v.GetBool("strip-raw"),
	}
	if len(cfg.Sources) == 0 && len(cfg.Groups) == 0 {
		return cfg, fmt.Errorf("no question sources configured (set --questions or a groups map)")
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	locale := v.GetString("locale")
	langOverrides := v.GetStringMapString("lang")
	if err := appI18n.Init(locale, langOverrides); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	renderer := markdown.New()

	var httpFetcher quiz.Fetcher = &quiz.HTTPFetcher{Client: &http.Client{Timeout: 30 * time.Second}}
	if path := v.GetString("cache-db"); path != "" {
		cache, err := store.New(path)
		if err != nil {
			return fmt.Errorf("open document cache: %w", err)
		}
		defer cache.Close()
		if n, err := cache.Purge(7 * 24 * time.Hour); err != nil {
			slog.Warn("cache purge failed", "error", err)
		} else if n > 0 {
			slog.Info("purged stale cache entries", "count", n)
		}
		httpFetcher = &quiz.CachedFetcher{Next: httpFetcher, Cache: cache, TTL: v.GetDuration("cache-ttl")}
	}
	fetcher := quiz.SchemeFetcher{HTTP: httpFetcher, File: quiz.FileFetcher{}}

	cfg, err := quizConfig(v)
	if err != nil {
		return err
	}
	ctrl := quiz.NewController(cfg, fetcher, parser.New(renderer), quiz.NewShuffler())

	h := handler.New(ctrl, renderer, quiz.NewShuffler(), handler.Config{
		Theme: v.GetString("theme"),
		Lang:  langOverrides,
	})

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(locale))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"count", cfg.Count,
		"sources", len(cfg.Sources),
		"groups", len(cfg.Groups),
		"locale", locale,
		"theme", v.GetString("theme"),
	)
	return http.ListenAndServe(addr, r)
}
