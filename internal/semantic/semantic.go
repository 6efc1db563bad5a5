// Package semantic scores meaning-level similarity via dense sentence
// embeddings. It is only engaged when the caller's capability flag
// permits it.
package semantic

import (
	"context"
	"math"
	"sync"

	"plagcheck/internal/domain"
)

// Scorer embeds texts and compares them with cosine similarity.
// Embeddings are cached for the scorer's lifetime, which callers scope
// to a single check or batch operation so the cache cannot go stale
// across corpus changes.
type Scorer struct {
	embedder domain.Embedder

	mu    sync.Mutex
	cache map[string][]float64
}

// NewScorer wraps an embedder with a request-scoped embedding cache.
func NewScorer(embedder domain.Embedder) *Scorer {
	return &Scorer{embedder: embedder, cache: make(map[string][]float64)}
}

// Score embeds both texts (through the cache) and returns their cosine
// similarity clipped to [0,1]: negative cosines are not meaningfully
// "more dissimilar" for this domain and truncate to 0.
func (s *Scorer) Score(ctx context.Context, query, candidate string) (float64, error) {
	qv, err := s.embed(ctx, query)
	if err != nil {
		return 0, err
	}
	cv, err := s.embed(ctx, candidate)
	if err != nil {
		return 0, err
	}
	return ClippedCosine(qv, cv), nil
}

// Embed returns the cached embedding of text, invoking the underlying
// embedder at most once per distinct input.
func (s *Scorer) Embed(ctx context.Context, text string) ([]float64, error) {
	return s.embed(ctx, text)
}

func (s *Scorer) embed(ctx context.Context, text string) ([]float64, error) {
	s.mu.Lock()
	if v, ok := s.cache[text]; ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	v, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cache[text] = v
	s.mu.Unlock()
	return v, nil
}

// Cosine returns the raw cosine similarity of two vectors, 0 when
// either has no magnitude or the dimensions disagree.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// ClippedCosine truncates Cosine to the [0,1] range.
func ClippedCosine(a, b []float64) float64 {
	c := Cosine(a, b)
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
