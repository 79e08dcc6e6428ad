package quiz

import (
	"math/rand/v2"

	"github.com/tensebunny/tensebunny/internal/catalog"
)

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sample returns count distinct questions drawn from pool. Questions that
// share an ID are treated as the same question and only the first is
// kept. The pool is permuted with a Fisher-Yates shuffle and the first
// count entries are taken; count is clamped to [0, distinct pool size].
// A nil r uses the global generator.
func Sample(pool []catalog.Question, count int, r *rand.Rand) []catalog.Question {
	distinct := dedupe(pool)
	count = max(0, min(count, len(distinct)))
	if count == 0 {
		return nil
	}

	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}
	shuffle(len(distinct), func(i, j int) {
		distinct[i], distinct[j] = distinct[j], distinct[i]
	})
	return distinct[:count]
}

func dedupe(pool []catalog.Question) []catalog.Question {
	seen := make(map[int]struct{}, len(pool))
	out := make([]catalog.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; ok {
			continue
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}
	return out
}
