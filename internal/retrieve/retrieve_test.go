package retrieve

import (
	"testing"

	"plagcheck/internal/domain"
)

func entry(id, text string) domain.CorpusEntry {
	return domain.CorpusEntry{ID: id, Text: text, SourceType: domain.SourceInternal}
}

func TestShortlist_EmptyCorpus(t *testing.T) {
	r := New(nil, 20)
	if got := r.Shortlist("anything worth searching for"); len(got) != 0 {
		t.Errorf("Shortlist over empty corpus = %v, want empty", got)
	}
}

func TestShortlist_SmallerThanK(t *testing.T) {
	entries := []domain.CorpusEntry{
		entry("a", "some reference text about animals"),
		entry("b", "another reference about weather patterns"),
	}
	r := New(entries, 20)
	if got := r.Shortlist("animals in the wild"); len(got) != 2 {
		t.Errorf("Shortlist = %d entries, want all 2", len(got))
	}
}

func TestShortlist_RanksByOverlap(t *testing.T) {
	entries := []domain.CorpusEntry{
		entry("off-topic", "economic policy discussion about interest rates and inflation"),
		entry("on-topic", "the quick brown fox jumps over the lazy dog in many stories"),
	}
	r := New(entries, 1)
	got := r.Shortlist("quick brown fox jumps lazily")
	if len(got) != 1 {
		t.Fatalf("Shortlist = %d entries, want 1", len(got))
	}
	if got[0].ID != "on-topic" {
		t.Errorf("top candidate = %s, want on-topic", got[0].ID)
	}
}

func TestShortlist_StableTieBreak(t *testing.T) {
	// Both entries cover the query equally; insertion order must hold.
	entries := []domain.CorpusEntry{
		entry("first", "wolves hunt together in packs across the tundra"),
		entry("second", "wolves hunt together in packs across the steppe"),
	}
	r := New(entries, 2)
	got := r.Shortlist("wolves hunt together every night")
	if len(got) != 2 {
		t.Fatalf("Shortlist = %d entries, want 2", len(got))
	}
	if got[0].ID != "first" || got[1].ID != "second" {
		t.Errorf("tie order = [%s, %s], want insertion order", got[0].ID, got[1].ID)
	}
}

func TestShortlist_CapsAtK(t *testing.T) {
	var entries []domain.CorpusEntry
	for i := 0; i < 30; i++ {
		entries = append(entries, entry(string(rune('a'+i)), "shared vocabulary entry about foxes and dogs"))
	}
	r := New(entries, 20)
	if got := r.Shortlist("foxes and dogs playing"); len(got) != 20 {
		t.Errorf("Shortlist = %d entries, want capped at 20", len(got))
	}
}
