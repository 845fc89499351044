package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Cache.Backend != "sqlite" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vidquiz.toml")
	content := `
[server]
addr = ":9999"

[cache]
backend = "memory"

[quiz]
answer_ttl_minutes = 30
max_questions = 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("backend = %q", cfg.Cache.Backend)
	}
	if cfg.AnswerTTL() != 30*time.Minute {
		t.Fatalf("AnswerTTL = %v", cfg.AnswerTTL())
	}
	// Untouched sections keep their defaults.
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("model default lost: %q", cfg.OpenAI.Model)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ADDR", ":7070")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("api key override lost")
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("addr override lost: %q", cfg.Server.Addr)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Cache.Backend = "redis" }},
		{"sqlite without path", func(c *Config) { c.Cache.Path = "" }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"zero ttl", func(c *Config) { c.Quiz.AnswerTTLMinutes = 0 }},
		{"zero max questions", func(c *Config) { c.Quiz.MaxQuestions = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("[server\naddr=:"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
