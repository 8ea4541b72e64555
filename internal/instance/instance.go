// Package instance turns indexed mentions into model-ready instances.
package instance

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgallion1/mentionset/internal/corpus"
	"github.com/dgallion1/mentionset/internal/tokenizer"
)

// ErrMissingField means a mention record lacks a configured field.
var ErrMissingField = errors.New("mention field missing")

// Instance is one training or evaluation example.
type Instance struct {
	MentionID int          `json:"mention_id"`
	Split     corpus.Split `json:"split"`
	Tokens    []string     `json:"tokens"`
	Label     string       `json:"label"`
}

// Builder maps an opaque mention record to an Instance. It is the single
// place that knows the preprocessor's mention schema.
type Builder interface {
	Build(id int, split corpus.Split, m corpus.Mention) (Instance, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(id int, split corpus.Split, m corpus.Mention) (Instance, error)

func (f BuilderFunc) Build(id int, split corpus.Split, m corpus.Mention) (Instance, error) {
	return f(id, split, m)
}

// FieldBuilder reads context text and gold label from two named string
// fields of a JSON object record.
type FieldBuilder struct {
	TextField  string
	LabelField string // empty: instances carry no label
	Tokenizer  tokenizer.Tokenizer
	MaxTokens  int
}

func (b *FieldBuilder) Build(id int, split corpus.Split, m corpus.Mention) (Instance, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(m, &fields); err != nil {
		return Instance{}, fmt.Errorf("mention %d: %w", id, err)
	}

	text, err := stringField(fields, b.TextField)
	if err != nil {
		return Instance{}, fmt.Errorf("mention %d: %w", id, err)
	}
	var label string
	if b.LabelField != "" {
		if label, err = stringField(fields, b.LabelField); err != nil {
			return Instance{}, fmt.Errorf("mention %d: %w", id, err)
		}
	}

	tok := b.Tokenizer
	if tok == nil {
		tok = tokenizer.Whitespace{}
	}
	tokens, err := tok.Tokenize(text)
	if err != nil {
		return Instance{}, fmt.Errorf("mention %d: tokenize: %w", id, err)
	}

	return Instance{
		MentionID: id,
		Split:     split,
		Tokens:    tokenizer.Truncate(tokens, b.MaxTokens),
		Label:     label,
	}, nil
}

func stringField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return "", fmt.Errorf("%w: %q", ErrMissingField, name)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %q: %w", name, err)
	}
	return s, nil
}
