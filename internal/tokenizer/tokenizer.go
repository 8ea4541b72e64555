package tokenizer

import (
	"fmt"
	"strings"
)

// Tokenizer splits mention context into tokens.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Config selects and configures a Tokenizer.
type Config struct {
	Name        string // "whitespace" or "wordpiece"
	File        string // pretrained tokenizer.json, wordpiece only
	StripMarkup bool
}

// New builds the tokenizer named in cfg. An empty name means whitespace.
func New(cfg Config) (Tokenizer, error) {
	var tok Tokenizer
	switch strings.ToLower(cfg.Name) {
	case "", "whitespace":
		tok = Whitespace{}
	case "wordpiece":
		wp, err := NewWordPiece(cfg.File)
		if err != nil {
			return nil, err
		}
		tok = wp
	default:
		return nil, fmt.Errorf("unsupported tokenizer: %s", cfg.Name)
	}
	if cfg.StripMarkup {
		tok = Markup{Next: tok}
	}
	return tok, nil
}

// Whitespace splits on runs of Unicode white space.
type Whitespace struct{}

func (Whitespace) Tokenize(text string) ([]string, error) {
	return strings.Fields(text), nil
}

// Truncate keeps at most n tokens. n <= 0 keeps everything.
func Truncate(tokens []string, n int) []string {
	if n <= 0 || len(tokens) <= n {
		return tokens
	}
	return tokens[:n]
}
