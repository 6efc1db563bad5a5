package fingerprint

import "testing"

func TestSimilarity_IdenticalText(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog and keeps running through the field"
	a := Build(text, 5)
	b := Build(text, 5)
	if got := Similarity(a, b); got != 1.0 {
		t.Errorf("Similarity(same, same) = %v, want 1.0", got)
	}
}

func TestSimilarity_DisjointVocabulary(t *testing.T) {
	a := Build("alpha beta gamma delta epsilon zeta eta theta iota kappa", 5)
	b := Build("one two three four five six seven eight nine ten", 5)
	if got := Similarity(a, b); got != 0.0 {
		t.Errorf("Similarity(disjoint) = %v, want 0.0", got)
	}
}

func TestSimilarity_BothEmpty(t *testing.T) {
	a := Build("", 5)
	b := Build("", 5)
	if got := Similarity(a, b); got != 1.0 {
		t.Errorf("Similarity(empty, empty) = %v, want 1.0", got)
	}
}

func TestSimilarity_OneEmpty(t *testing.T) {
	a := Build("", 5)
	b := Build("some words here to fingerprint properly", 5)
	if got := Similarity(a, b); got != 0.0 {
		t.Errorf("Similarity(empty, nonempty) = %v, want 0.0", got)
	}
	if got := Similarity(b, a); got != 0.0 {
		t.Errorf("Similarity(nonempty, empty) = %v, want 0.0", got)
	}
}

func TestSimilarity_SharedRun(t *testing.T) {
	// Both texts share a contiguous run well above the guarantee
	// threshold, so at least one fingerprint must be shared.
	shared := "the quick brown fox jumps over the lazy sleeping dog tonight"
	a := Build("unrelated prefix words here "+shared, 5)
	b := Build(shared+" unrelated suffix words there", 5)
	if got := Similarity(a, b); got <= 0.0 {
		t.Errorf("Similarity(shared run) = %v, want > 0", got)
	}
}

func TestBuild_ShortText(t *testing.T) {
	// Fewer tokens than the k-gram size still yields a fingerprint so
	// short identical texts can match.
	a := Build("two words", 5)
	if a.Len() != 1 {
		t.Errorf("Build short text Len = %d, want 1", a.Len())
	}
	b := Build("two words", 5)
	if got := Similarity(a, b); got != 1.0 {
		t.Errorf("Similarity(short identical) = %v, want 1.0", got)
	}
}
