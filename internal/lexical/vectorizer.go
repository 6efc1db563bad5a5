package lexical

import (
	"math"
	"sort"

	"plagcheck/internal/analyzer"
)

// vectorizer is a TF-IDF vectorizer fitted over the candidate pool of a
// single scoring run. The vocabulary and IDF table are immutable after
// construction, so Vector is safe for concurrent use.
type vectorizer struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
}

// newVectorizer builds the vocabulary and smoothed IDF values from the
// provided pool of texts.
func newVectorizer(pool []string) *vectorizer {
	df := make(map[string]int)
	for _, text := range pool {
		seen := make(map[string]struct{})
		for _, term := range analyzer.Terms(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &vectorizer{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		dimension:  len(terms),
	}
	n := float64(len(pool))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return v
}

// Vector computes the L2-normalized TF-IDF vector of text over the
// fitted vocabulary. Out-of-vocabulary terms contribute nothing.
func (v *vectorizer) Vector(text string) []float64 {
	vec := make([]float64, v.dimension)
	tf := make(map[int]int)
	total := 0
	for _, term := range analyzer.Terms(text) {
		if idx, ok := v.vocabulary[term]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * v.idf[idx]
	}
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// cosine of two equal-length vectors; normalized inputs make this a
// plain dot product, but the norms are recomputed to stay safe on
// arbitrary input.
func cosine(a, b []float64) float64 {
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
