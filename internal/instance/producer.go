package instance

import (
	"context"
	"iter"
	"math/rand/v2"
	"sync"

	"github.com/dgallion1/mentionset/internal/corpus"
	"github.com/dgallion1/mentionset/internal/index"
)

// Index is the read side of the mention arena the producer needs.
type Index interface {
	IDs(split corpus.Split) ([]int, error)
	Mention(id int) (corpus.Mention, error)
}

// Producer yields instances for a split.
type Producer struct {
	idx     Index
	builder Builder

	mu  sync.Mutex
	rng *rand.Rand
}

// NewProducer returns a Producer. seed 0 draws a random seed.
func NewProducer(idx Index, builder Builder, seed uint64) *Producer {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Producer{
		idx:     idx,
		builder: builder,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Order returns the ids a Read of split will visit. The training split is
// shuffled afresh on every call; dev and test keep manifest order.
func (p *Producer) Order(split corpus.Split) ([]int, error) {
	s, err := corpus.ParseSplit(string(split))
	if err != nil {
		return nil, err
	}
	ids, err := p.idx.IDs(s)
	if err != nil {
		return nil, err
	}
	if s == corpus.Train {
		p.mu.Lock()
		p.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		p.mu.Unlock()
	}
	return ids, nil
}

// Read lazily builds one instance per mention of split. Iteration stops at
// the first error, which is yielded once. An id the index does not hold is
// reported as index.ErrMentionNotFound.
func (p *Producer) Read(ctx context.Context, split corpus.Split) iter.Seq2[Instance, error] {
	return func(yield func(Instance, error) bool) {
		ids, err := p.Order(split)
		if err != nil {
			yield(Instance{}, err)
			return
		}
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				yield(Instance{}, err)
				return
			}
			m, err := p.idx.Mention(id)
			if err != nil {
				yield(Instance{}, err)
				return
			}
			inst, err := p.builder.Build(id, split, m)
			if err != nil {
				yield(Instance{}, err)
				return
			}
			if !yield(inst, nil) {
				return
			}
		}
	}
}

var _ Index = (*index.Index)(nil)
