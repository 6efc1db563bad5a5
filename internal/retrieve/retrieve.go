// Package retrieve shortlists corpus entries worth full scoring,
// keeping the pipeline sub-quadratic: entries are ranked by a cheap
// token-containment proxy and only the top K proceed to the expensive
// scorers.
package retrieve

import (
	"sort"

	"plagcheck/internal/analyzer"
	"plagcheck/internal/domain"
)

// Retriever ranks a fixed corpus snapshot. Per-entry term sets are
// precomputed at construction and read-only afterwards, so Shortlist is
// safe for concurrent use.
type Retriever struct {
	topK     int
	entries  []domain.CorpusEntry
	termSets []map[string]struct{}
}

// New builds a retriever over the entries in their insertion order.
func New(entries []domain.CorpusEntry, topK int) *Retriever {
	if topK <= 0 {
		topK = 20
	}
	r := &Retriever{
		topK:     topK,
		entries:  entries,
		termSets: make([]map[string]struct{}, len(entries)),
	}
	for i, e := range entries {
		r.termSets[i] = analyzer.TermSet(e.Text)
	}
	return r
}

// Shortlist returns the top-K entries most likely to match the query
// sentence, ranked by term-set containment. Ties keep corpus insertion
// order. A corpus smaller than K passes through whole; an empty corpus
// yields an empty shortlist.
func (r *Retriever) Shortlist(query string) []domain.CorpusEntry {
	if len(r.entries) == 0 {
		return nil
	}
	qset := analyzer.TermSet(query)
	type ranked struct {
		idx   int
		score float64
	}
	scores := make([]ranked, len(r.entries))
	for i := range r.entries {
		scores[i] = ranked{i, containment(qset, r.termSets[i])}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	k := r.topK
	if k > len(scores) {
		k = len(scores)
	}
	out := make([]domain.CorpusEntry, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, r.entries[scores[i].idx])
	}
	return out
}

// containment is |q∩c| / |q|: how much of the query sentence the entry
// covers. Directionally right for a short sentence against a large
// source text.
func containment(qset, cset map[string]struct{}) float64 {
	if len(qset) == 0 || len(cset) == 0 {
		return 0
	}
	inter := 0
	for t := range qset {
		if _, ok := cset[t]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(qset))
}
