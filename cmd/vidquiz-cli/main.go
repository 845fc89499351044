package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"vidquiz/internal/cache"
	"vidquiz/internal/cli"
	"vidquiz/internal/config"
	"vidquiz/internal/llm"
	"vidquiz/internal/pipeline"
	"vidquiz/internal/quiz"
	"vidquiz/internal/transcript"
	"vidquiz/internal/youtube"
)

func main() {
	configPath := flag.String("config", os.Getenv("VIDQUIZ_CONFIG"), "path to TOML config file")
	videoURL := flag.String("url", "", "video URL or id (required)")
	difficultyFlag := flag.String("difficulty", "medium", "quiz difficulty: easy, medium or hard")
	count := flag.Int("n", 5, "number of questions")
	summary := flag.Bool("summary", false, "print a transcript summary instead of running a quiz")
	ask := flag.String("ask", "", "answer a question about the video instead of running a quiz")
	flag.Parse()

	if *videoURL == "" {
		fmt.Fprintln(os.Stderr, "usage: vidquiz-cli -url <video url> [-difficulty medium] [-n 5]")
		os.Exit(2)
	}

	// Keep quiz output clean; only surface warnings and errors.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if cfg.OpenAI.APIKey == "" {
		fatal(fmt.Errorf("OPENAI_API_KEY environment variable (or openai.api_key) is required"))
	}

	difficulty, err := quiz.ParseDifficulty(*difficultyFlag)
	if err != nil {
		fatal(err)
	}

	store, cleanup, err := newStore(cfg)
	if err != nil {
		fatal(err)
	}
	defer cleanup()

	provider := youtube.NewClient(cfg.YouTube.BaseURL, cfg.YouTubeTimeout())
	loader := transcript.NewLoader(store, provider)
	backend := llm.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	orchestrator := pipeline.New(loader, backend, logger, cfg.OpenAI.MaxTranscriptChars)

	app := &cli.App{
		Orchestrator: orchestrator,
		Quizzes:      quiz.NewService(orchestrator.GenerateQuestions, store, cfg.AnswerTTL(), cfg.Quiz.MaxQuestions),
	}

	if *summary {
		if err := app.RunSummary(context.Background(), *videoURL, os.Stdout); err != nil {
			fatal(err)
		}
		return
	}
	if *ask != "" {
		if err := app.RunAsk(context.Background(), *videoURL, *ask, os.Stdout); err != nil {
			fatal(err)
		}
		return
	}

	if err := app.RunQuiz(context.Background(), *videoURL, difficulty, *count, os.Stdin, os.Stdout); err != nil {
		fatal(err)
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

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
