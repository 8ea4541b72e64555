package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "TOKENIZER", "MAX_TOKENS", "MENTION_TEXT_FIELD", "SHUFFLE_SEED", "LOG_LEVEL", "STRIP_MARKUP"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "whitespace", cfg.Tokenizer)
	assert.Equal(t, "text", cfg.MentionTextField)
	assert.Zero(t, cfg.MaxTokens)
	assert.Zero(t, cfg.ShuffleSeed)
	assert.False(t, cfg.StripMarkup)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATASET_DIR", "/data/bc5cdr/")
	t.Setenv("PREPROCESSED_DOC_DIR", "/data/preprocessed")
	t.Setenv("MAX_TOKENS", "64")
	t.Setenv("SHUFFLE_SEED", "1234")
	t.Setenv("STRIP_MARKUP", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MENTION_LABEL_FIELD", "cui")

	cfg := Load()
	assert.Equal(t, "/data/bc5cdr/", cfg.DatasetDir)
	assert.Equal(t, "/data/preprocessed", cfg.PreprocessedDocDir)
	assert.Equal(t, 64, cfg.MaxTokens)
	assert.Equal(t, uint64(1234), cfg.ShuffleSeed)
	assert.True(t, cfg.StripMarkup)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "cui", cfg.MentionLabelField)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_TOKENS", "lots")
	t.Setenv("SHUFFLE_SEED", "-3")
	t.Setenv("LOG_LEVEL", "chatty")
	cfg := Load()
	assert.Zero(t, cfg.MaxTokens)
	assert.Zero(t, cfg.ShuffleSeed)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	base := Config{DatasetDir: "d", PreprocessedDocDir: "p", MentionTextField: "text", Tokenizer: "whitespace"}
	require.NoError(t, base.Validate())

	cases := map[string]func(c *Config){
		"no dataset dir":       func(c *Config) { c.DatasetDir = "" },
		"no preprocessed dir":  func(c *Config) { c.PreprocessedDocDir = "" },
		"no text field":        func(c *Config) { c.MentionTextField = "" },
		"wordpiece needs file": func(c *Config) { c.Tokenizer = "WordPiece" },
	}
	for name, mutate := range cases {
		c := base
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}
