package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownSplit is returned for any split selector other than train, dev or test.
var ErrUnknownSplit = errors.New("unknown split")

// Split names one partition of the corpus.
type Split string

const (
	Train Split = "train"
	Dev   Split = "dev"
	Test  Split = "test"
)

// Splits lists every split in indexing order.
var Splits = []Split{Train, Dev, Test}

// ParseSplit validates a split selector.
func ParseSplit(s string) (Split, error) {
	switch Split(s) {
	case Train, Dev, Test:
		return Split(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSplit, s)
	}
}

// ManifestSuffix is the file-name suffix used by the PubTator pmid manifests.
func (s Split) ManifestSuffix() string {
	if s == Train {
		return "trng"
	}
	return string(s)
}

// PMID identifies one source document.
type PMID string

// Mention is one annotated span as it appears in a preprocessed document.
// The record is kept verbatim; its schema belongs to the upstream preprocessor.
type Mention json.RawMessage

// MarshalJSON writes the record back out unchanged.
func (m Mention) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return m, nil
}

// UnmarshalJSON keeps a copy of the raw record.
func (m *Mention) UnmarshalJSON(data []byte) error {
	*m = append((*m)[:0], data...)
	return nil
}

// Document is a preprocessed document reduced to its mention records.
type Document struct {
	PMID     PMID
	Mentions []Mention
}
