package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"vidquiz/internal/cache"
	"vidquiz/internal/config"
	"vidquiz/internal/httpapi"
	"vidquiz/internal/llm"
	"vidquiz/internal/pipeline"
	"vidquiz/internal/quiz"
	"vidquiz/internal/transcript"
	"vidquiz/internal/youtube"
)

func main() {
	configPath := flag.String("config", os.Getenv("VIDQUIZ_CONFIG"), "path to TOML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if cfg.OpenAI.APIKey == "" {
		logger.Error("OPENAI_API_KEY environment variable (or openai.api_key) is required")
		os.Exit(1)
	}

	store, cleanup, err := newStore(cfg)
	if err != nil {
		logger.Error("open cache store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	provider := youtube.NewClient(cfg.YouTube.BaseURL, cfg.YouTubeTimeout())
	loader := transcript.NewLoader(store, provider)
	backend := llm.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	orchestrator := pipeline.New(loader, backend, logger, cfg.OpenAI.MaxTranscriptChars)
	quizzes := quiz.NewService(orchestrator.GenerateQuestions, store, cfg.AnswerTTL(), cfg.Quiz.MaxQuestions)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewRouter(orchestrator, quizzes),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
	}

	logger.Info("vidquiz-service listening", "addr", cfg.Server.Addr, "cache_backend", cfg.Cache.Backend)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newStore(cfg config.Config) (cache.Store, func(), error) {
	if cfg.Cache.Backend == "memory" {
		return cache.NewMemory(), func() {}, nil
	}
	store, err := cache.NewSQLite(cfg.Cache.Path)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}
