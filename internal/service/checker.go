// Package service orchestrates the hybrid similarity pipeline:
// segmentation, candidate retrieval, lexical and semantic scoring,
// fusion and report building.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"plagcheck/internal/config"
	"plagcheck/internal/domain"
	"plagcheck/internal/fusion"
	"plagcheck/internal/keywords"
	"plagcheck/internal/lexical"
	"plagcheck/internal/report"
	"plagcheck/internal/retrieve"
	"plagcheck/internal/segment"
	"plagcheck/internal/semantic"
)

const maxQueryKeywords = 5

// Checker implements domain.Checker. It holds no per-request state:
// every scoring run builds its own scorer caches, scoped to that run.
type Checker struct {
	scoring  config.ScoringConfig
	corpus   domain.CorpusStore
	embedder domain.Embedder
	seg      *segment.Segmenter
	fuser    *fusion.Fuser
	reports  *report.Builder
	logger   *slog.Logger
}

// NewChecker wires the pipeline. embedder may be nil, in which case
// semantic analysis is unavailable regardless of the capability flag.
func NewChecker(scoring config.ScoringConfig, corpus domain.CorpusStore, embedder domain.Embedder, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		scoring:  scoring,
		corpus:   corpus,
		embedder: embedder,
		seg:      segment.New(scoring.MinSentenceWords, scoring.MinSentenceChars),
		fuser:    fusion.New(scoring.SemanticWeight, scoring.LexicalWeight, scoring.MatchThreshold),
		reports:  report.NewBuilder(scoring.FlagThreshold),
		logger:   logger,
	}
}

// CheckDocument scores one document against the reference corpus.
// semantic requests hybrid mode; it fails when no embedder is wired.
// Per-sentence retrieval or embedding failures degrade that sentence
// to unmatched instead of failing the document.
func (c *Checker) CheckDocument(ctx context.Context, doc domain.Document, semanticMode bool) (*domain.DocumentReport, error) {
	start := time.Now()
	if strings.TrimSpace(doc.Content) == "" {
		return nil, domain.ErrEmptyDocument
	}
	if semanticMode && c.embedder == nil {
		return nil, domain.ErrSemanticNotPermitted
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	sentences := c.seg.Meaningful(doc.Content)
	if len(sentences) == 0 {
		return c.reports.Build(doc, 0, nil, time.Since(start)), nil
	}

	hint := keywords.QueryHint(doc.Content, maxQueryKeywords)
	entries, err := c.corpus.FetchCandidates(ctx, hint)
	if err != nil {
		// Unreachable corpus degrades to an unmatched report.
		c.logger.Warn("corpus fetch failed", "document", doc.Name, "error", err)
		entries = nil
	}
	matches := c.scoreSentences(ctx, sentences, entries, semanticMode)

	ordered := make([]domain.SentenceMatch, 0, len(matches))
	for _, m := range matches {
		if m != nil {
			ordered = append(ordered, *m)
		}
	}
	return c.reports.Build(doc, len(sentences), ordered, time.Since(start)), nil
}

// scoreSentences scores every sentence against its shortlist in
// parallel. Each sentence reduces over all of its candidates before
// selecting a winner; sentences are otherwise independent.
func (c *Checker) scoreSentences(ctx context.Context, sentences []domain.Sentence, entries []domain.CorpusEntry, semanticMode bool) []*domain.SentenceMatch {
	results := make([]*domain.SentenceMatch, len(sentences))
	if len(entries) == 0 {
		return results
	}

	queries := make([]string, len(sentences))
	for i, s := range sentences {
		queries[i] = s.Text
	}
	lex := lexical.NewScorer(c.scoring.WindowTokens, queries, entries)
	retr := retrieve.New(entries, c.scoring.TopK)
	byID := make(map[string]domain.CorpusEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	var sem *semantic.Scorer
	if semanticMode {
		sem = semantic.NewScorer(c.embedder)
	}

	var g errgroup.Group
	g.SetLimit(c.scoring.Workers)
	for i := range sentences {
		sent := sentences[i]
		g.Go(func() error {
			// A request timeout stops launching new scorings; the
			// sentence stays unmatched and partial results survive.
			if ctx.Err() != nil {
				return nil
			}
			results[sent.Index] = c.scoreSentence(ctx, sent, lex, retr, byID, sem)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (c *Checker) scoreSentence(ctx context.Context, sent domain.Sentence, lex *lexical.Scorer, retr *retrieve.Retriever, byID map[string]domain.CorpusEntry, sem *semantic.Scorer) *domain.SentenceMatch {
	shortlist := retr.Shortlist(sent.Text)
	if len(shortlist) == 0 {
		return nil
	}
	q := lex.NewQuery(sent.Text)

	if sem != nil {
		if _, err := sem.Embed(ctx, sent.Text); err != nil {
			c.logger.Warn("sentence embedding failed, leaving unmatched", "sentence", sent.Index, "error", err)
			return nil
		}
	}

	candidates := make([]domain.MatchCandidate, 0, len(shortlist))
	for _, entry := range shortlist {
		if ctx.Err() != nil {
			break
		}
		mc := domain.MatchCandidate{SentenceIndex: sent.Index, CorpusID: entry.ID}
		mc.Lexical = lex.Score(q, entry.ID)
		mc.LexicalScore = lexical.Combine(mc.Lexical)
		if sem != nil {
			score, err := sem.Score(ctx, sent.Text, entry.Text)
			if err != nil {
				c.logger.Warn("candidate embedding failed, skipping candidate", "sentence", sent.Index, "corpus_id", entry.ID, "error", err)
				continue
			}
			mc.SemanticScore = score
			mc.HasSemantic = true
		}
		c.fuser.Fuse(&mc)
		candidates = append(candidates, mc)
	}

	win, ok := c.fuser.Select(candidates)
	if !ok {
		return nil
	}
	entry := byID[win.CorpusID]
	return &domain.SentenceMatch{
		SentenceIndex: sent.Index,
		SentenceText:  strings.TrimSpace(sent.Text),
		CorpusID:      entry.ID,
		SourceType:    entry.SourceType,
		SourceTitle:   entry.Title,
		SourceURL:     entry.URL,
		LexicalScore:  win.LexicalScore,
		SemanticScore: win.SemanticScore,
		FusedScore:    win.FusedScore,
	}
}

// CheckBatch checks every document against the corpus and computes the
// upper-triangular similarity matrix between all pairs at document
// granularity: no segmentation, no shortlisting, direct scoring.
func (c *Checker) CheckBatch(ctx context.Context, docs []domain.Document, semanticMode bool) (*domain.BatchResult, error) {
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}
	if semanticMode && c.embedder == nil {
		return nil, domain.ErrSemanticNotPermitted
	}
	for i := range docs {
		if docs[i].ID == "" {
			docs[i].ID = uuid.NewString()
		}
	}

	out := &domain.BatchResult{}
	for _, doc := range docs {
		rep, err := c.CheckDocument(ctx, doc, semanticMode)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", doc.Name, err)
		}
		out.Reports = append(out.Reports, *rep)
	}
	comparison, err := c.comparePairs(ctx, docs, semanticMode)
	if err != nil {
		return nil, err
	}
	out.Comparison = comparison
	return out, nil
}

func (c *Checker) comparePairs(ctx context.Context, docs []domain.Document, semanticMode bool) ([]domain.PairwiseSimilarity, error) {
	if len(docs) < 2 {
		return []domain.PairwiseSimilarity{}, nil
	}
	texts := make([]string, len(docs))
	entries := make([]domain.CorpusEntry, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
		entries[i] = domain.CorpusEntry{ID: d.ID, Text: d.Content, Title: d.Name, SourceType: domain.SourceInternal}
	}
	lex := lexical.NewScorer(c.scoring.WindowTokens, texts, entries)
	queries := make([]*lexical.Query, len(docs))
	for i := range docs {
		queries[i] = lex.NewQuery(docs[i].Content)
	}
	var sem *semantic.Scorer
	if semanticMode {
		sem = semantic.NewScorer(c.embedder)
	}

	type pair struct{ a, b int }
	pairs := make([]pair, 0, len(docs)*(len(docs)-1)/2)
	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}
	results := make([]domain.PairwiseSimilarity, len(pairs))

	var g errgroup.Group
	g.SetLimit(c.scoring.Workers)
	for idx := range pairs {
		idx := idx
		p := pairs[idx]
		g.Go(func() error {
			results[idx] = c.comparePair(ctx, docs[p.a], docs[p.b], queries[p.a], queries[p.b], lex, sem)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

// comparePair fuses a symmetric lexical score (field-wise max of both
// directions, so similarity(a,b) == similarity(b,a) by construction)
// with the document-level semantic cosine.
func (c *Checker) comparePair(ctx context.Context, a, b domain.Document, qa, qb *lexical.Query, lex *lexical.Scorer, sem *semantic.Scorer) domain.PairwiseSimilarity {
	ls := maxScores(lex.Score(qa, b.ID), lex.Score(qb, a.ID))
	mc := domain.MatchCandidate{CorpusID: b.ID, Lexical: ls, LexicalScore: lexical.Combine(ls)}

	if sem != nil && ctx.Err() == nil {
		score, err := sem.Score(ctx, a.Content, b.Content)
		if err != nil {
			c.logger.Warn("pair embedding failed, using lexical only", "doc_a", a.ID, "doc_b", b.ID, "error", err)
		} else {
			mc.SemanticScore = score
			mc.HasSemantic = true
		}
	}
	c.fuser.Fuse(&mc)
	return domain.PairwiseSimilarity{DocA: a.ID, DocB: b.ID, Similarity: mc.FusedScore}
}

func maxScores(a, b domain.LexicalScores) domain.LexicalScores {
	pick := func(x, y float64) float64 {
		if x > y {
			return x
		}
		return y
	}
	return domain.LexicalScores{
		ExactContainment: pick(a.ExactContainment, b.ExactContainment),
		Sequence:         pick(a.Sequence, b.Sequence),
		TFIDFCosine:      pick(a.TFIDFCosine, b.TFIDFCosine),
		WindowOverlap:    pick(a.WindowOverlap, b.WindowOverlap),
		LCS:              pick(a.LCS, b.LCS),
		EditDistance:     pick(a.EditDistance, b.EditDistance),
		Containment:      pick(a.Containment, b.Containment),
		Jaccard:          pick(a.Jaccard, b.Jaccard),
		Fingerprint:      pick(a.Fingerprint, b.Fingerprint),
	}
}
