package domain

import "context"

// CorpusStore is the read side of the reference corpus. FetchCandidates
// must be side-effect free; it may be called once per sentence.
type CorpusStore interface {
	FetchCandidates(ctx context.Context, queryHint string) ([]CorpusEntry, error)
}

// CorpusWriter is the write contract used by the corpus growth workflow
// upstream of scoring. Implementations own validation and deduplication.
type CorpusWriter interface {
	AddEntries(ctx context.Context, entries []CorpusEntry) (int, error)
}

// Embedder converts free text into a dense vector representation.
// Embed must be deterministic for identical input. Implementations may
// require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Checker defines the scoring operations exposed by the application core.
type Checker interface {
	CheckDocument(ctx context.Context, doc Document, semantic bool) (*DocumentReport, error)
	CheckBatch(ctx context.Context, docs []Document, semantic bool) (*BatchResult, error)
}
