// Package analyzer provides the shared text normalization and
// tokenization pipeline used by the lexical and retrieval stages:
// lowercase, punctuation stripping, stopword removal and stemming.
package analyzer

import (
	"regexp"
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

var (
	wordPattern       = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, replaces punctuation with spaces and
// collapses runs of whitespace. Two texts that differ only in casing,
// punctuation or spacing normalize to the same string.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if isWordRune(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))
}

// Tokenize splits text into lowercase word tokens.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// Terms tokenizes text and applies stopword filtering and stemming,
// producing index terms for set-based comparison.
func Terms(text string) []string {
	tokens := Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := stopwords[tok]; ok {
			continue
		}
		if len(tok) < 2 {
			continue
		}
		out = append(out, snowballeng.Stem(tok, false))
	}
	return out
}

// TermSet returns the unique index terms of text.
func TermSet(text string) map[string]struct{} {
	terms := Terms(text)
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

// TokenSet returns the unique raw tokens of text, stopwords included.
// Used where exact wording matters more than topical overlap.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// IsStopword reports whether the lowercase token is a stopword.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\''
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
