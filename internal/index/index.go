// Package index assigns mention ids over a corpus.
//
// All mentions live in a single append-only arena; a mention's id is its
// offset in that arena. Train documents are indexed first, then dev, then
// test, each in manifest order, so ids increase with document order and with
// position inside a document. The split lists never overlap and together
// cover every arena offset.
package index

import (
	"errors"
	"fmt"

	"github.com/dgallion1/mentionset/internal/corpus"
)

// ErrMentionNotFound means an id does not address the arena.
var ErrMentionNotFound = errors.New("mention id not in index")

// LoadFunc returns the document for a pmid.
type LoadFunc func(pmid corpus.PMID) (corpus.Document, error)

// Source is anything that can list the pmids of a split.
type Source interface {
	PMIDs(split corpus.Split) []corpus.PMID
}

// Index is the mention arena plus its per-split id lists.
// It is read-only once Build returns.
type Index struct {
	mentions []corpus.Mention
	sources  []corpus.PMID
	ids      map[corpus.Split][]int
	docs     map[corpus.Split]int
}

// Build loads every document of every split and indexes its mentions.
// The first load error aborts the build.
func Build(src Source, load LoadFunc) (*Index, error) {
	idx := &Index{
		ids:  make(map[corpus.Split][]int, len(corpus.Splits)),
		docs: make(map[corpus.Split]int, len(corpus.Splits)),
	}
	for _, split := range corpus.Splits {
		ids := []int{}
		for _, pmid := range src.PMIDs(split) {
			doc, err := load(pmid)
			if err != nil {
				return nil, fmt.Errorf("index %s document %s: %w", split, pmid, err)
			}
			for _, m := range doc.Mentions {
				ids = append(ids, idx.append(m, pmid))
			}
			idx.docs[split]++
		}
		idx.ids[split] = ids
	}
	return idx, nil
}

func (idx *Index) append(m corpus.Mention, pmid corpus.PMID) int {
	id := len(idx.mentions)
	idx.mentions = append(idx.mentions, m)
	idx.sources = append(idx.sources, pmid)
	return id
}

// Len returns the number of indexed mentions.
func (idx *Index) Len() int {
	return len(idx.mentions)
}

// IDs returns a copy of the id list for a split.
func (idx *Index) IDs(split corpus.Split) ([]int, error) {
	ids, ok := idx.ids[split]
	if !ok {
		return nil, fmt.Errorf("%w: %q", corpus.ErrUnknownSplit, split)
	}
	out := make([]int, len(ids))
	copy(out, ids)
	return out, nil
}

// Count returns how many mentions a split holds.
func (idx *Index) Count(split corpus.Split) int {
	return len(idx.ids[split])
}

// Documents returns how many documents were indexed for a split.
func (idx *Index) Documents(split corpus.Split) int {
	return idx.docs[split]
}

// Mention returns the record stored under id.
func (idx *Index) Mention(id int) (corpus.Mention, error) {
	if id < 0 || id >= len(idx.mentions) {
		return nil, fmt.Errorf("%w: %d", ErrMentionNotFound, id)
	}
	return idx.mentions[id], nil
}

// Source returns the pmid the mention was read from.
func (idx *Index) Source(id int) (corpus.PMID, error) {
	if id < 0 || id >= len(idx.sources) {
		return "", fmt.Errorf("%w: %d", ErrMentionNotFound, id)
	}
	return idx.sources[id], nil
}

// SplitOf returns the split an id belongs to.
func (idx *Index) SplitOf(id int) (corpus.Split, error) {
	if id < 0 || id >= len(idx.mentions) {
		return "", fmt.Errorf("%w: %d", ErrMentionNotFound, id)
	}
	// Split ranges are contiguous in arena order.
	lo := 0
	for _, split := range corpus.Splits {
		hi := lo + len(idx.ids[split])
		if id < hi {
			return split, nil
		}
		lo = hi
	}
	return "", fmt.Errorf("%w: %d", ErrMentionNotFound, id)
}
