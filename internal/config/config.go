package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Server contains listener configuration.
type Server struct {
	Addr                     string `toml:"addr"`
	ReadHeaderTimeoutSeconds int    `toml:"read_header_timeout_seconds"`
}

// Cache selects and configures the key-value store backing the
// transcript cache and the quiz secrecy store.
type Cache struct {
	Backend string `toml:"backend"` // "memory" or "sqlite"
	Path    string `toml:"path"`    // sqlite database file
}

// YouTube configures the transcript provider client.
type YouTube struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// OpenAI configures the generation backend.
type OpenAI struct {
	APIKey             string `toml:"api_key"`
	Model              string `toml:"model"`
	MaxTranscriptChars int    `toml:"max_transcript_chars"`
}

// Quiz configures the quiz lifecycle.
type Quiz struct {
	AnswerTTLMinutes int `toml:"answer_ttl_minutes"`
	MaxQuestions     int `toml:"max_questions"`
}

type Config struct {
	Server  Server  `toml:"server"`
	Cache   Cache   `toml:"cache"`
	YouTube YouTube `toml:"youtube"`
	OpenAI  OpenAI  `toml:"openai"`
	Quiz    Quiz    `toml:"quiz"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:                     ":8080",
			ReadHeaderTimeoutSeconds: 5,
		},
		Cache: Cache{
			Backend: "sqlite",
			Path:    "vidquiz.db",
		},
		YouTube: YouTube{
			TimeoutSeconds: 15,
		},
		OpenAI: OpenAI{
			Model:              "gpt-4o",
			MaxTranscriptChars: 48000,
		},
		Quiz: Quiz{
			AnswerTTLMinutes: 60,
			MaxQuestions:     20,
		},
	}
}

// Load reads the TOML file at path on top of the defaults, then applies
// environment overrides and validates. A missing file is not an error;
// the defaults plus environment are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		c.Server.Addr = v
	}
}

func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "memory":
	case "sqlite":
		if c.Cache.Path == "" {
			return errors.New("config: cache.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("config: unknown cache.backend %q (want memory or sqlite)", c.Cache.Backend)
	}

	if c.Server.Addr == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Quiz.AnswerTTLMinutes <= 0 {
		return errors.New("config: quiz.answer_ttl_minutes must be positive")
	}
	if c.Quiz.MaxQuestions <= 0 {
		return errors.New("config: quiz.max_questions must be positive")
	}
	return nil
}

func (c Config) AnswerTTL() time.Duration {
	return time.Duration(c.Quiz.AnswerTTLMinutes) * time.Minute
}

func (c Config) YouTubeTimeout() time.Duration {
	return time.Duration(c.YouTube.TimeoutSeconds) * time.Second
}

func (c Config) ReadHeaderTimeout() time.Duration {
	return time.Duration(c.Server.ReadHeaderTimeoutSeconds) * time.Second
}
