package segment

import (
	"strings"
	"testing"
)

func TestSegment_OffsetRoundTrip(t *testing.T) {
	texts := []string{
		"First sentence here. Second sentence follows! Third one asks a question? Trailing fragment without punctuation",
		"One sentence only.",
		"No terminal punctuation at all",
		"  Leading whitespace. And some more.  ",
		"Weird...ellipsis. Another sentence.",
	}
	seg := New(5, 15)
	for _, text := range texts {
		sentences := seg.Segment(text)
		var b strings.Builder
		for _, s := range sentences {
			b.WriteString(text[s.Start:s.End])
		}
		if b.String() != text {
			t.Errorf("round trip failed for %q: got %q", text, b.String())
		}
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	seg := New(5, 15)
	if got := seg.Segment(""); got != nil {
		t.Errorf("Segment(empty) = %v, want nil", got)
	}
	if got := seg.Segment("   \n\t "); got != nil {
		t.Errorf("Segment(whitespace) = %v, want nil", got)
	}
}

func TestSegment_DenseOrderedIndices(t *testing.T) {
	seg := New(5, 15)
	sentences := seg.Segment("Alpha is first. Beta is second. Gamma is third.")
	if len(sentences) != 3 {
		t.Fatalf("got %d sentences, want 3", len(sentences))
	}
	for i, s := range sentences {
		if s.Index != i {
			t.Errorf("sentence %d has index %d", i, s.Index)
		}
		if s.Start >= s.End {
			t.Errorf("sentence %d has invalid span [%d,%d)", i, s.Start, s.End)
		}
		if i > 0 && s.Start < sentences[i-1].End {
			t.Errorf("sentence %d overlaps previous", i)
		}
	}
}

func TestMeaningful_FiltersShortSentences(t *testing.T) {
	seg := New(5, 15)
	text := "Yes. The quick brown fox jumps over the lazy dog. No way. Another long sentence with plenty of meaningful words inside."
	got := seg.Meaningful(text)
	if len(got) != 2 {
		t.Fatalf("got %d meaningful sentences, want 2", len(got))
	}
	if got[0].Index != 0 || got[1].Index != 1 {
		t.Errorf("meaningful indices not dense: %d, %d", got[0].Index, got[1].Index)
	}
	if !strings.Contains(got[0].Text, "quick brown fox") {
		t.Errorf("unexpected first meaningful sentence: %q", got[0].Text)
	}
}

func TestSegment_NoSentences(t *testing.T) {
	seg := New(5, 15)
	if got := seg.Meaningful("Hi. Ok. No."); len(got) != 0 {
		t.Errorf("Meaningful(short fragments) = %v, want empty", got)
	}
}
