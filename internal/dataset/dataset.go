// Package dataset loads a mention corpus once and serves instances from it.
package dataset

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/dgallion1/mentionset/internal/config"
	"github.com/dgallion1/mentionset/internal/corpus"
	"github.com/dgallion1/mentionset/internal/index"
	"github.com/dgallion1/mentionset/internal/instance"
	"github.com/dgallion1/mentionset/internal/metrics"
	"github.com/dgallion1/mentionset/internal/parser"
	"github.com/dgallion1/mentionset/internal/splits"
	"github.com/dgallion1/mentionset/internal/tokenizer"
)

// Options configures a Reader.
type Options struct {
	DatasetDir      string
	PreprocessedDir string
	Builder         instance.Builder
	Seed            uint64
	Metrics         *metrics.Metrics
	Log             *slog.Logger
}

// SplitStats summarizes one split after loading.
type SplitStats struct {
	Split    corpus.Split `json:"split"`
	Manifest int          `json:"manifest_pmids"`
	Kept     int          `json:"kept_pmids"`
	Skipped  int          `json:"skipped_pmids"`
	Mentions int          `json:"mentions"`
}

// Reader is a loaded corpus. Everything but the training shuffle is fixed
// after Open returns.
type Reader struct {
	state    state
	log      *slog.Logger
	metrics  *metrics.Metrics
	resolved splits.Resolved
	idx      *index.Index
	producer *instance.Producer
}

// Open resolves the splits, indexes every mention, and returns a ready Reader.
// Any manifest, read or parse failure is returned unmodified in the chain.
func Open(opts Options) (*Reader, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	r := &Reader{log: log, metrics: opts.Metrics}
	r.state.set(StatusUninitialized)

	if err := r.load(opts); err != nil {
		r.state.fail(err)
		r.log.Error("corpus load failed", "error", err)
		return nil, err
	}
	return r, nil
}

// OpenConfig builds the tokenizer and field builder described by cfg and opens the corpus.
func OpenConfig(cfg config.Config, m *metrics.Metrics, log *slog.Logger) (*Reader, error) {
	tok, err := tokenizer.New(tokenizer.Config{
		Name:        cfg.Tokenizer,
		File:        cfg.TokenizerFile,
		StripMarkup: cfg.StripMarkup,
	})
	if err != nil {
		return nil, err
	}
	return Open(Options{
		DatasetDir:      cfg.DatasetDir,
		PreprocessedDir: cfg.PreprocessedDocDir,
		Builder: &instance.FieldBuilder{
			TextField:  cfg.MentionTextField,
			LabelField: cfg.MentionLabelField,
			Tokenizer:  tok,
			MaxTokens:  cfg.MaxTokens,
		},
		Seed:    cfg.ShuffleSeed,
		Metrics: m,
		Log:     log,
	})
}

func (r *Reader) load(opts Options) error {
	start := time.Now()
	log := r.log.With("dataset_dir", opts.DatasetDir, "preprocessed_doc_dir", opts.PreprocessedDir)

	r.state.set(StatusLoadingManifests)
	manifest, err := splits.ReadAll(opts.DatasetDir)
	if err != nil {
		return err
	}

	r.state.set(StatusFiltering)
	r.resolved = splits.FilterAll(opts.PreprocessedDir, manifest)
	for _, split := range corpus.Splits {
		if skipped := r.resolved.Skipped[split]; len(skipped) > 0 {
			log.Debug("skipped pmids without preprocessed document", "split", split, "count", len(skipped))
		}
	}

	r.state.set(StatusIndexing)
	loader := parser.NewLoader(opts.PreprocessedDir)
	r.idx, err = index.Build(r.resolved, loader.Load)
	if err != nil {
		return err
	}

	builder := opts.Builder
	if builder == nil {
		builder = &instance.FieldBuilder{TextField: "text"}
	}
	r.producer = instance.NewProducer(r.idx, builder, opts.Seed)

	for _, st := range r.Stats() {
		r.metrics.ObserveSplit(string(st.Split), st.Kept, st.Skipped, st.Mentions)
		log.Info("split indexed", "split", st.Split, "pmids", st.Kept, "skipped", st.Skipped, "mentions", st.Mentions)
	}
	elapsed := time.Since(start)
	r.metrics.ObserveLoad(elapsed)

	r.state.set(StatusReady)
	log.Info("corpus ready", "mentions", r.idx.Len(), "duration_ms", elapsed.Milliseconds())
	return nil
}

// Status returns the current load state.
func (r *Reader) Status() StatusSnapshot {
	return r.state.snapshot()
}

// Stats returns per-split counts in train, dev, test order.
func (r *Reader) Stats() []SplitStats {
	out := make([]SplitStats, 0, len(corpus.Splits))
	for _, split := range corpus.Splits {
		out = append(out, SplitStats{
			Split:    split,
			Manifest: len(r.resolved.Manifest[split]),
			Kept:     r.idx.Documents(split),
			Skipped:  len(r.resolved.Skipped[split]),
			Mentions: r.idx.Count(split),
		})
	}
	return out
}

// PMIDs returns the kept pmids of a split.
func (r *Reader) PMIDs(split corpus.Split) ([]corpus.PMID, error) {
	if _, err := corpus.ParseSplit(string(split)); err != nil {
		return nil, err
	}
	return append([]corpus.PMID(nil), r.resolved.Kept[split]...), nil
}

// Skipped returns the pmids of a split that had no preprocessed document.
func (r *Reader) Skipped(split corpus.Split) []corpus.PMID {
	return append([]corpus.PMID(nil), r.resolved.Skipped[split]...)
}

// IDs returns the mention ids of a split in index order.
func (r *Reader) IDs(split corpus.Split) ([]int, error) {
	return r.idx.IDs(split)
}

// Len returns the number of indexed mentions.
func (r *Reader) Len() int {
	return r.idx.Len()
}

// Mention returns a mention record and the pmid it came from.
func (r *Reader) Mention(id int) (corpus.Mention, corpus.PMID, error) {
	m, err := r.idx.Mention(id)
	if err != nil {
		return nil, "", err
	}
	pmid, err := r.idx.Source(id)
	if err != nil {
		return nil, "", err
	}
	return m, pmid, nil
}

// SplitOf returns the split a mention id belongs to.
func (r *Reader) SplitOf(id int) (corpus.Split, error) {
	return r.idx.SplitOf(id)
}

// Read yields the instances of split. See instance.Producer.Read.
func (r *Reader) Read(ctx context.Context, split corpus.Split) iter.Seq2[instance.Instance, error] {
	return func(yield func(instance.Instance, error) bool) {
		for inst, err := range r.producer.Read(ctx, split) {
			if err == nil {
				r.metrics.IncInstances(string(split))
			}
			if !yield(inst, err) {
				return
			}
		}
	}
}

// ReadSplit parses a selector and reads it.
func (r *Reader) ReadSplit(ctx context.Context, name string) (iter.Seq2[instance.Instance, error], error) {
	split, err := corpus.ParseSplit(name)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return r.Read(ctx, split), nil
}
