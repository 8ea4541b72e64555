package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	// Auth for /api routes; empty disables it.
	APIKey string

	// Corpus layout
	DatasetDir         string
	PreprocessedDocDir string

	// Instance construction
	Tokenizer         string
	TokenizerFile     string
	StripMarkup       bool
	MaxTokens         int
	MentionTextField  string
	MentionLabelField string

	// 0 draws a random seed per process.
	ShuffleSeed uint64

	LogLevel slog.Level
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("API_KEY"),

		DatasetDir:         os.Getenv("DATASET_DIR"),
		PreprocessedDocDir: os.Getenv("PREPROCESSED_DOC_DIR"),

		Tokenizer:         envOr("TOKENIZER", "whitespace"),
		TokenizerFile:     os.Getenv("TOKENIZER_FILE"),
		StripMarkup:       envBool("STRIP_MARKUP", false),
		MaxTokens:         envInt("MAX_TOKENS", 0),
		MentionTextField:  envOr("MENTION_TEXT_FIELD", "text"),
		MentionLabelField: os.Getenv("MENTION_LABEL_FIELD"),

		ShuffleSeed: envUint64("SHUFFLE_SEED", 0),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.MaxTokens < 0 {
		cfg.MaxTokens = 0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DatasetDir == "" {
		return fmt.Errorf("DATASET_DIR is required")
	}
	if c.PreprocessedDocDir == "" {
		return fmt.Errorf("PREPROCESSED_DOC_DIR is required")
	}
	if c.MentionTextField == "" {
		return fmt.Errorf("MENTION_TEXT_FIELD must not be empty")
	}
	if strings.EqualFold(c.Tokenizer, "wordpiece") && c.TokenizerFile == "" {
		return fmt.Errorf("TOKENIZER_FILE is required for the wordpiece tokenizer")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envUint64(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
	}
	return fallback
}
