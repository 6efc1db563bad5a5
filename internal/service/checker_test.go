package service

import (
	"context"
	"errors"
	"testing"

	"plagcheck/internal/config"
	"plagcheck/internal/corpus/memory"
	"plagcheck/internal/domain"
)

func testScoring() config.ScoringConfig {
	return config.ScoringConfig{
		SemanticWeight:    0.6,
		LexicalWeight:     0.4,
		MatchThreshold:    0.5,
		TopK:              20,
		WindowTokens:      5,
		MinSentenceWords:  5,
		MinSentenceChars:  15,
		SequenceThreshold: 0.75,
		FlagThreshold:     0.7,
		Workers:           4,
	}
}

// stubEmbedder returns a fixed vector per known text and a default
// otherwise, so semantic scores are predictable.
type stubEmbedder struct {
	vectors map[string][]float64
}

func (s *stubEmbedder) Name() string               { return "stub" }
func (s *stubEmbedder) Prepare([]string) error     { return nil }
func (s *stubEmbedder) Dimension() int             { return 3 }
func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float64{1, 0, 0}, nil
}

type failingEmbedder struct{}

func (failingEmbedder) Name() string           { return "failing" }
func (failingEmbedder) Prepare([]string) error { return nil }
func (failingEmbedder) Dimension() int         { return 3 }
func (failingEmbedder) Embed(context.Context, string) ([]float64, error) {
	return nil, errors.New("model unreachable")
}

func seedCorpus(t *testing.T, entries ...domain.CorpusEntry) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	if _, err := store.AddEntries(context.Background(), entries); err != nil {
		t.Fatalf("seed corpus: %v", err)
	}
	return store
}

func TestCheckDocument_ExactSentenceMatch(t *testing.T) {
	store := seedCorpus(t, domain.CorpusEntry{
		ID:         "src1",
		Text:       "Filler opening remarks. The quick brown fox jumps over the lazy dog. Filler closing remarks.",
		SourceType: domain.SourceAcademic,
		Title:      "Fox Studies",
	})
	c := NewChecker(testScoring(), store, nil, nil)

	doc := domain.Document{Name: "essay.txt", Content: "The quick brown fox jumps over the lazy dog."}
	rep, err := c.CheckDocument(context.Background(), doc, false)
	if err != nil {
		t.Fatalf("CheckDocument: %v", err)
	}
	if len(rep.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(rep.Matches))
	}
	m := rep.Matches[0]
	if m.FusedScore != 1.0 {
		t.Errorf("FusedScore = %v, want 1.0 for verbatim sentence", m.FusedScore)
	}
	if m.CorpusID != "src1" || m.SourceTitle != "Fox Studies" {
		t.Errorf("match source = %s/%s, want src1/Fox Studies", m.CorpusID, m.SourceTitle)
	}
	if rep.PlagiarismRatio != 1.0 {
		t.Errorf("PlagiarismRatio = %v, want 1.0", rep.PlagiarismRatio)
	}
	if !rep.Flagged {
		t.Error("report should be flagged above the flag threshold")
	}
}

func TestCheckDocument_NoTokenOverlap(t *testing.T) {
	store := seedCorpus(t, domain.CorpusEntry{
		ID:   "src1",
		Text: "economic policy discussion covering interest rates inflation banking regulation",
	})
	c := NewChecker(testScoring(), store, nil, nil)

	doc := domain.Document{Name: "essay.txt", Content: "Purple elephants dance wildly beneath shimmering moonlight skies tonight."}
	rep, err := c.CheckDocument(context.Background(), doc, false)
	if err != nil {
		t.Fatalf("CheckDocument: %v", err)
	}
	if len(rep.Matches) != 0 {
		t.Errorf("got %d matches, want 0", len(rep.Matches))
	}
	if rep.SentenceCount != 1 {
		t.Errorf("SentenceCount = %d, want 1 (unmatched sentences still count)", rep.SentenceCount)
	}
	if rep.PlagiarismRatio != 0 {
		t.Errorf("PlagiarismRatio = %v, want 0", rep.PlagiarismRatio)
	}
}

func TestCheckDocument_EmptyCorpus(t *testing.T) {
	c := NewChecker(testScoring(), memory.NewStore(), nil, nil)
	doc := domain.Document{Name: "essay.txt", Content: "A perfectly ordinary sentence with enough words to score."}
	rep, err := c.CheckDocument(context.Background(), doc, false)
	if err != nil {
		t.Fatalf("CheckDocument over empty corpus: %v", err)
	}
	if len(rep.Matches) != 0 || rep.PlagiarismRatio != 0 {
		t.Errorf("empty corpus: matches=%d ratio=%v, want 0/0", len(rep.Matches), rep.PlagiarismRatio)
	}
}

func TestCheckDocument_EmptyDocument(t *testing.T) {
	c := NewChecker(testScoring(), memory.NewStore(), nil, nil)
	_, err := c.CheckDocument(context.Background(), domain.Document{Name: "empty.txt", Content: "   "}, false)
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("err = %v, want ErrEmptyDocument", err)
	}
}

func TestCheckDocument_SemanticNotPermitted(t *testing.T) {
	c := NewChecker(testScoring(), memory.NewStore(), nil, nil)
	doc := domain.Document{Name: "essay.txt", Content: "A perfectly ordinary sentence with enough words to score."}
	_, err := c.CheckDocument(context.Background(), doc, true)
	if !errors.Is(err, domain.ErrSemanticNotPermitted) {
		t.Errorf("err = %v, want ErrSemanticNotPermitted", err)
	}
}

func TestCheckDocument_HybridMode(t *testing.T) {
	sentence := "The striped cat chased several small birds around the garden."
	store := seedCorpus(t, domain.CorpusEntry{
		ID:    "src1",
		Text:  "A feline pursued a few little birds all over the yard and cats often chase garden birds.",
		Title: "Cat Report",
	})
	emb := &stubEmbedder{vectors: map[string][]float64{}}
	c := NewChecker(testScoring(), store, emb, nil)

	rep, err := c.CheckDocument(context.Background(), domain.Document{Name: "essay.txt", Content: sentence}, true)
	if err != nil {
		t.Fatalf("CheckDocument hybrid: %v", err)
	}
	// Identical stub vectors give semantic score 1.0; fused must be at
	// least the semantic weight and within range.
	if len(rep.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(rep.Matches))
	}
	m := rep.Matches[0]
	if m.SemanticScore != 1.0 {
		t.Errorf("SemanticScore = %v, want 1.0 from identical stub vectors", m.SemanticScore)
	}
	if m.FusedScore < 0.6 || m.FusedScore > 1.0 {
		t.Errorf("FusedScore = %v, want in [0.6, 1.0]", m.FusedScore)
	}
}

func TestCheckDocument_EmbeddingFailureDegrades(t *testing.T) {
	store := seedCorpus(t, domain.CorpusEntry{
		ID:   "src1",
		Text: "Filler opening. The quick brown fox jumps over the lazy dog. Filler closing.",
	})
	c := NewChecker(testScoring(), store, failingEmbedder{}, nil)

	doc := domain.Document{Name: "essay.txt", Content: "The quick brown fox jumps over the lazy dog."}
	rep, err := c.CheckDocument(context.Background(), doc, true)
	if err != nil {
		t.Fatalf("CheckDocument should not fail on embedding errors: %v", err)
	}
	if len(rep.Matches) != 0 {
		t.Errorf("got %d matches, want 0 (failed sentences degrade to unmatched)", len(rep.Matches))
	}
	if rep.SentenceCount != 1 {
		t.Errorf("SentenceCount = %d, want 1", rep.SentenceCount)
	}
}

func TestCheckBatch_PairCount(t *testing.T) {
	c := NewChecker(testScoring(), memory.NewStore(), nil, nil)
	docs := []domain.Document{
		{ID: "d1", Name: "one.txt", Content: "The first document talks about foxes jumping over dogs."},
		{ID: "d2", Name: "two.txt", Content: "The second document talks about foxes jumping over dogs."},
		{ID: "d3", Name: "three.txt", Content: "A completely different third document about marine biology research."},
	}
	res, err := c.CheckBatch(context.Background(), docs, false)
	if err != nil {
		t.Fatalf("CheckBatch: %v", err)
	}
	if len(res.Reports) != 3 {
		t.Errorf("got %d reports, want 3", len(res.Reports))
	}
	if len(res.Comparison) != 3 {
		t.Fatalf("got %d pairwise entries, want 3 (3 choose 2)", len(res.Comparison))
	}
	seen := make(map[[2]string]bool)
	for _, p := range res.Comparison {
		if p.DocA == p.DocB {
			t.Errorf("pair compares a document to itself: %s", p.DocA)
		}
		if p.Similarity < 0 || p.Similarity > 1 {
			t.Errorf("pair %s/%s similarity %v out of [0,1]", p.DocA, p.DocB, p.Similarity)
		}
		seen[[2]string{p.DocA, p.DocB}] = true
	}
	if len(seen) != 3 {
		t.Errorf("pairs are not distinct: %v", res.Comparison)
	}
}

func TestCheckBatch_NearIdenticalDocumentsScoreHigh(t *testing.T) {
	c := NewChecker(testScoring(), memory.NewStore(), nil, nil)
	docs := []domain.Document{
		{ID: "d1", Name: "one.txt", Content: "The quick brown fox jumps over the lazy dog while the farmer watches."},
		{ID: "d2", Name: "two.txt", Content: "The quick brown fox jumps over the lazy dog while the farmer watches."},
	}
	res, err := c.CheckBatch(context.Background(), docs, false)
	if err != nil {
		t.Fatalf("CheckBatch: %v", err)
	}
	if len(res.Comparison) != 1 {
		t.Fatalf("got %d pairs, want 1", len(res.Comparison))
	}
	if got := res.Comparison[0].Similarity; got != 1.0 {
		t.Errorf("identical documents similarity = %v, want 1.0", got)
	}
}

func TestCheckBatch_NoDocuments(t *testing.T) {
	c := NewChecker(testScoring(), memory.NewStore(), nil, nil)
	if _, err := c.CheckBatch(context.Background(), nil, false); !errors.Is(err, domain.ErrNoDocuments) {
		t.Errorf("err = %v, want ErrNoDocuments", err)
	}
}

func TestCheckDocument_CancelledContextPartialResults(t *testing.T) {
	store := seedCorpus(t, domain.CorpusEntry{
		ID:   "src1",
		Text: "Filler opening. The quick brown fox jumps over the lazy dog. Filler closing.",
	})
	c := NewChecker(testScoring(), store, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := domain.Document{Name: "essay.txt", Content: "The quick brown fox jumps over the lazy dog."}
	rep, err := c.CheckDocument(ctx, doc, false)
	if err != nil {
		t.Fatalf("cancelled check should still return a report: %v", err)
	}
	if len(rep.Matches) != 0 {
		t.Errorf("cancelled check matches = %d, want 0", len(rep.Matches))
	}
}
