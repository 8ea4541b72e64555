package tokenizer

import (
	"errors"
	"fmt"

	hftok "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// WordPiece wraps a pretrained HuggingFace tokenizer (BERT vocab).
type WordPiece struct {
	tk *hftok.Tokenizer
}

// NewWordPiece loads a tokenizer.json file.
func NewWordPiece(path string) (*WordPiece, error) {
	if path == "" {
		return nil, errors.New("wordpiece tokenizer requires a tokenizer file")
	}
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", path, err)
	}
	return &WordPiece{tk: tk}, nil
}

// Tokenize encodes text without special tokens; [CLS]/[SEP] are the model's concern.
func (w *WordPiece) Tokenize(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	en, err := w.tk.EncodeSingle(text, false)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return en.GetTokens(), nil
}
