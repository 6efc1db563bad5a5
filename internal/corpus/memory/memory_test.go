package memory

import (
	"context"
	"testing"

	"plagcheck/internal/domain"
)

func TestAddEntriesAndFetch(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	added, err := s.AddEntries(ctx, []domain.CorpusEntry{
		{ID: "a", Text: "first entry", SourceType: domain.SourceAcademic},
		{ID: "", Text: "missing id"},
		{ID: "c", Text: ""},
		{ID: "d", Text: "second entry", SourceType: domain.SourceWeb},
	})
	if err != nil {
		t.Fatalf("AddEntries: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2 (invalid entries skipped)", added)
	}

	got, err := s.FetchCandidates(ctx, "anything")
	if err != nil {
		t.Fatalf("FetchCandidates: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "d" {
		t.Errorf("FetchCandidates = %+v, want [a d] in insertion order", got)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestFetchCandidates_ReturnsSnapshot(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	if _, err := s.AddEntries(ctx, []domain.CorpusEntry{{ID: "a", Text: "t"}}); err != nil {
		t.Fatal(err)
	}
	snap, err := s.FetchCandidates(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	snap[0].ID = "mutated"
	again, err := s.FetchCandidates(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if again[0].ID != "a" {
		t.Error("caller mutation leaked into the store")
	}
}

func TestFetchCandidates_Empty(t *testing.T) {
	s := NewStore()
	got, err := s.FetchCandidates(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchCandidates: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty store returned %d entries", len(got))
	}
}
