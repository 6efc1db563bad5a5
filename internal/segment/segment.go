// Package segment splits normalized document text into ordered
// sentences with stable indices and byte offsets.
package segment

import (
	"regexp"
	"strings"

	"plagcheck/internal/analyzer"
	"plagcheck/internal/domain"
)

var splitter = regexp.MustCompile(`[^.!?]+[.!?]+|[^.!?]+$`)

// Segmenter splits text into sentences. MinWords and MinChars control
// which sentences the Meaningful filter keeps for scoring.
type Segmenter struct {
	minWords int
	minChars int
}

func New(minWords, minChars int) *Segmenter {
	if minWords <= 0 {
		minWords = 5
	}
	if minChars <= 0 {
		minChars = 15
	}
	return &Segmenter{minWords: minWords, minChars: minChars}
}

// Segment returns the full ordered sentence sequence. Spans are
// contiguous and cover the whole input, so re-joining text[Start:End]
// over all sentences reconstructs the input exactly. A document with no
// extractable sentences yields an empty sequence.
func (s *Segmenter) Segment(text string) []domain.Sentence {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	locs := splitter.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []domain.Sentence{{Index: 0, Text: text, Start: 0, End: len(text)}}
	}

	// Force contiguous coverage: the first span starts at 0, every span
	// extends to the start of the next, the last one ends at len(text).
	spans := make([][2]int, 0, len(locs))
	for i, loc := range locs {
		start, end := loc[0], loc[1]
		if i == 0 {
			start = 0
		}
		if i+1 < len(locs) {
			end = locs[i+1][0]
		} else {
			end = len(text)
		}
		spans = append(spans, [2]int{start, end})
	}

	// Drop whitespace-only spans by merging them into a neighbor, then
	// reassign indices densely.
	sentences := make([]domain.Sentence, 0, len(spans))
	for _, sp := range spans {
		piece := text[sp[0]:sp[1]]
		if strings.TrimSpace(piece) == "" {
			if n := len(sentences); n > 0 {
				sentences[n-1].End = sp[1]
				sentences[n-1].Text = text[sentences[n-1].Start:sp[1]]
			}
			continue
		}
		if len(sentences) == 0 && sp[0] > 0 {
			sp[0] = 0
		}
		sentences = append(sentences, domain.Sentence{
			Index: len(sentences),
			Text:  text[sp[0]:sp[1]],
			Start: sp[0],
			End:   sp[1],
		})
	}
	return sentences
}

// Meaningful returns the sentences worth scoring: at least minWords
// tokens and minChars characters once trimmed. Indices are reassigned
// densely; offsets still point into the original text.
func (s *Segmenter) Meaningful(text string) []domain.Sentence {
	all := s.Segment(text)
	out := make([]domain.Sentence, 0, len(all))
	for _, sent := range all {
		trimmed := strings.TrimSpace(sent.Text)
		if len(trimmed) < s.minChars {
			continue
		}
		if len(analyzer.Tokenize(trimmed)) < s.minWords {
			continue
		}
		sent.Index = len(out)
		out = append(out, sent)
	}
	return out
}
