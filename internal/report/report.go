// Package report aggregates per-sentence matches into the
// document-level report handed to the serving layer.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"plagcheck/internal/analyzer"
	"plagcheck/internal/domain"
)

// Builder assembles document reports. FlagThreshold is the highest
// fused similarity above which a document is flagged for review.
type Builder struct {
	flagThreshold float64
}

func NewBuilder(flagThreshold float64) *Builder {
	if flagThreshold <= 0 {
		flagThreshold = 0.7
	}
	return &Builder{flagThreshold: flagThreshold}
}

// Build produces the report for one document. matches holds one entry
// per sentence that cleared the threshold; sentenceCount is the full
// denominator including unmatched sentences. Each sentence's winning
// match stands independently; overlapping matches against the same
// source are not merged.
func (b *Builder) Build(doc domain.Document, sentenceCount int, matches []domain.SentenceMatch, elapsed time.Duration) *domain.DocumentReport {
	rep := &domain.DocumentReport{
		ID:            uuid.NewString(),
		DocumentID:    doc.ID,
		Name:          doc.Name,
		Content:       doc.Content,
		Matches:       matches,
		SentenceCount: sentenceCount,
		WordCount:     len(analyzer.Tokenize(doc.Content)),
		TimeSpent:     formatElapsed(elapsed),
	}
	if rep.Matches == nil {
		rep.Matches = []domain.SentenceMatch{}
	}
	if sentenceCount > 0 {
		rep.PlagiarismRatio = float64(len(matches)) / float64(sentenceCount)
	}
	seen := make(map[string]struct{})
	for _, m := range matches {
		if m.FusedScore > rep.HighestSimilarity {
			rep.HighestSimilarity = m.FusedScore
		}
		if _, ok := seen[m.SourceTitle]; !ok && m.SourceTitle != "" {
			seen[m.SourceTitle] = struct{}{}
			rep.Sources = append(rep.Sources, m.SourceTitle)
		}
	}
	rep.Flagged = rep.HighestSimilarity > b.flagThreshold
	return rep
}

func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	mins, secs := total/60, total%60
	hours, mins := mins/60, mins%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
