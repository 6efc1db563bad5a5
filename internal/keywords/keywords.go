// Package keywords extracts the most frequent meaningful terms of a
// document. The result seeds the corpus retrieval query hint.
package keywords

import (
	"sort"
	"strings"
	"unicode"

	"plagcheck/internal/analyzer"
)

// Extract returns up to max keywords: the most frequent alphabetic,
// non-stopword tokens longer than three characters. Frequency ties
// resolve alphabetically so the result is deterministic.
func Extract(text string, max int) []string {
	if max <= 0 {
		max = 5
	}
	freq := map[string]int{}
	for _, tok := range analyzer.Tokenize(text) {
		if len([]rune(tok)) <= 3 || !alphabetic(tok) {
			continue
		}
		if analyzer.IsStopword(tok) {
			continue
		}
		freq[tok]++
	}
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if max > len(words) {
		max = len(words)
	}
	return words[:max]
}

// QueryHint joins the document's keywords into a retrieval hint,
// falling back to a prefix of the text when no keywords survive.
func QueryHint(text string, maxKeywords int) string {
	kws := Extract(text, maxKeywords)
	if len(kws) > 0 {
		return strings.Join(kws, " ")
	}
	trimmed := strings.TrimSpace(text)
	if r := []rune(trimmed); len(r) > 100 {
		return string(r[:100])
	}
	return trimmed
}

func alphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
