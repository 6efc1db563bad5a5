// Package lexical scores textual overlap between a query sentence (or
// whole document) and candidate texts with a battery of sub-signals.
// Different signal types catch different plagiarism styles, so the
// scalar lexical score is the maximum of the strong signals rather
// than an average.
package lexical

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"plagcheck/internal/analyzer"
	"plagcheck/internal/domain"
	"plagcheck/internal/fingerprint"
)

// candidate holds the precomputed artifacts of one corpus entry.
// Built once per scoring run, read-only afterwards.
type candidate struct {
	normalized string
	tokenSet   map[string]struct{}
	prints     fingerprint.Set
	vector     []float64
}

// Scorer computes lexical sub-scores against a fixed candidate pool.
// Construction precomputes per-candidate token sets, fingerprints and
// TF-IDF vectors; Score is safe for concurrent use afterwards.
type Scorer struct {
	windowTokens int
	vec          *vectorizer
	candidates   map[string]*candidate
}

// NewScorer fits the TF-IDF vocabulary over queries and candidate texts
// and precomputes candidate artifacts.
func NewScorer(windowTokens int, queries []string, entries []domain.CorpusEntry) *Scorer {
	if windowTokens <= 0 {
		windowTokens = 5
	}
	pool := make([]string, 0, len(queries)+len(entries))
	for _, q := range queries {
		pool = append(pool, q)
	}
	for _, e := range entries {
		pool = append(pool, e.Text)
	}
	s := &Scorer{
		windowTokens: windowTokens,
		vec:          newVectorizer(pool),
		candidates:   make(map[string]*candidate, len(entries)),
	}
	for _, e := range entries {
		s.candidates[e.ID] = &candidate{
			normalized: analyzer.Normalize(e.Text),
			tokenSet:   analyzer.TokenSet(e.Text),
			prints:     fingerprint.Build(e.Text, windowTokens),
			vector:     s.vec.Vector(e.Text),
		}
	}
	return s
}

// Query carries the precomputed artifacts of one query text so a
// sentence is analyzed once however many candidates it is scored
// against.
type Query struct {
	normalized string
	tokens     []string
	prints     fingerprint.Set
	vector     []float64
}

// NewQuery prepares a query text for scoring.
func (s *Scorer) NewQuery(text string) *Query {
	return &Query{
		normalized: analyzer.Normalize(text),
		tokens:     analyzer.Tokenize(text),
		prints:     fingerprint.Build(text, s.windowTokens),
		vector:     s.vec.Vector(text),
	}
}

// Score computes all lexical sub-scores of q against the candidate
// registered under corpusID. Unknown IDs score zero across the board.
func (s *Scorer) Score(q *Query, corpusID string) domain.LexicalScores {
	c, ok := s.candidates[corpusID]
	if !ok {
		return domain.LexicalScores{}
	}
	var ls domain.LexicalScores

	if q.normalized != "" && strings.Contains(c.normalized, q.normalized) {
		ls.ExactContainment = 1.0
	}
	ls.Sequence = sequenceRatio(q.normalized, c.normalized)
	ls.TFIDFCosine = clamp01(cosine(q.vector, c.vector))
	ls.WindowOverlap = s.windowOverlap(q.tokens, c.tokenSet)
	ls.LCS = lcsRatio(q.normalized, c.normalized)
	ls.EditDistance = editSimilarity(q.normalized, c.normalized)
	ls.Containment, ls.Jaccard = setOverlap(q.tokens, c.tokenSet)
	ls.Fingerprint = fingerprint.Similarity(q.prints, c.prints)
	return ls
}

// Combine reduces the sub-scores to the scalar lexical score: the
// maximum of exact containment, sequence similarity, TF-IDF cosine,
// windowed fallback and LCS ratio. A sentence counts as lexically
// matched if any strong signal fires.
func Combine(ls domain.LexicalScores) float64 {
	max := ls.ExactContainment
	for _, v := range [...]float64{ls.Sequence, ls.TFIDFCosine, ls.WindowOverlap, ls.LCS} {
		if v > max {
			max = v
		}
	}
	return clamp01(max)
}

// windowOverlap slides a fixed-size token window across the query and
// returns the best overlap ratio of any window with the candidate's
// token set. Recovers locally reordered phrasing that a single-pass
// vector comparison misses.
func (s *Scorer) windowOverlap(queryTokens []string, candSet map[string]struct{}) float64 {
	if len(queryTokens) == 0 || len(candSet) == 0 {
		return 0
	}
	k := s.windowTokens
	if len(queryTokens) < k {
		k = len(queryTokens)
	}
	best := 0.0
	for i := 0; i+k <= len(queryTokens); i++ {
		hits := 0
		for _, tok := range queryTokens[i : i+k] {
			if _, ok := candSet[tok]; ok {
				hits++
			}
		}
		if r := float64(hits) / float64(k); r > best {
			best = r
		}
	}
	return best
}

func editSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	max := len([]rune(a))
	if lb := len([]rune(b)); lb > max {
		max = lb
	}
	if max == 0 {
		return 1.0
	}
	return clamp01(1.0 - float64(dist)/float64(max))
}

// setOverlap returns containment (|q∩c| / |q|, asymmetric) and Jaccard
// (|q∩c| / |q∪c|, symmetric) over token sets.
func setOverlap(queryTokens []string, candSet map[string]struct{}) (containment, jaccard float64) {
	qset := make(map[string]struct{}, len(queryTokens))
	for _, t := range queryTokens {
		qset[t] = struct{}{}
	}
	if len(qset) == 0 || len(candSet) == 0 {
		return 0, 0
	}
	inter := 0
	for t := range qset {
		if _, ok := candSet[t]; ok {
			inter++
		}
	}
	union := len(qset) + len(candSet) - inter
	return float64(inter) / float64(len(qset)), float64(inter) / float64(union)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
