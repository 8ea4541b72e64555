package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/mentionset/internal/corpus"
	"github.com/dgallion1/mentionset/internal/splits"
)

// ErrMissingLines means a preprocessed document has no "lines" array.
var ErrMissingLines = errors.New("preprocessed document has no lines")

// ErrTrailingData means a second JSON value follows the document.
var ErrTrailingData = errors.New("unexpected data after document")

// Parser converts a preprocessed document into its mention records.
type Parser interface {
	Parse(r io.Reader, pmid corpus.PMID) (corpus.Document, error)
}

// JSONParser reads the JSON documents written by the preprocessing stage.
// Only the top-level "lines" field is read.
type JSONParser struct{}

type preprocessed struct {
	Lines *[]corpus.Mention `json:"lines"`
}

func (p *JSONParser) Parse(r io.Reader, pmid corpus.PMID) (corpus.Document, error) {
	var doc preprocessed
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return corpus.Document{}, fmt.Errorf("parse %s: %w", pmid, err)
	}
	// A document is exactly one JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = ErrTrailingData
		}
		return corpus.Document{}, fmt.Errorf("parse %s: %w", pmid, err)
	}
	if doc.Lines == nil {
		return corpus.Document{}, fmt.Errorf("parse %s: %w", pmid, ErrMissingLines)
	}
	return corpus.Document{PMID: pmid, Mentions: *doc.Lines}, nil
}

// Loader opens preprocessed documents from a directory.
type Loader struct {
	Dir    string
	Parser Parser
}

// NewLoader returns a Loader reading <dir>/<pmid>.json with the JSON parser.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir, Parser: &JSONParser{}}
}

// Load reads and parses the document for pmid.
func (l *Loader) Load(pmid corpus.PMID) (corpus.Document, error) {
	f, err := os.Open(splits.DocumentPath(l.Dir, pmid))
	if err != nil {
		return corpus.Document{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return l.Parser.Parse(f, pmid)
}
