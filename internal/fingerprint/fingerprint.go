// Package fingerprint implements winnowing: texts are reduced to sets
// of hashed token k-grams, keeping one minimal hash per sliding window.
// Any contiguous run of tokens shared by two texts that is at least as
// long as the guarantee threshold produces at least one shared
// fingerprint, so set overlap detects near-duplicates cheaply.
package fingerprint

import (
	"hash/fnv"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"plagcheck/internal/analyzer"
)

// winnowWindow is the number of consecutive k-gram hashes one
// fingerprint is selected from. With k-gram size k the match guarantee
// threshold is k + winnowWindow - 1 tokens.
const winnowWindow = 4

// Set is a winnowed fingerprint set. The zero value is not usable;
// construct with Build.
type Set struct {
	bits *roaring.Bitmap
}

// Build fingerprints text using token k-grams of size k.
// Texts shorter than k tokens yield a single fingerprint over all
// their tokens; empty texts yield an empty set.
func Build(text string, k int) Set {
	if k <= 0 {
		k = 5
	}
	tokens := analyzer.Tokenize(text)
	bits := roaring.New()
	if len(tokens) == 0 {
		return Set{bits: bits}
	}
	if len(tokens) < k {
		bits.Add(hashGram(tokens))
		return Set{bits: bits}
	}

	hashes := make([]uint32, 0, len(tokens)-k+1)
	for i := 0; i+k <= len(tokens); i++ {
		hashes = append(hashes, hashGram(tokens[i : i+k]))
	}

	// Winnow: record the rightmost minimum of each window of hashes.
	if len(hashes) <= winnowWindow {
		bits.Add(minRight(hashes))
		return Set{bits: bits}
	}
	for i := 0; i+winnowWindow <= len(hashes); i++ {
		bits.Add(minRight(hashes[i : i+winnowWindow]))
	}
	return Set{bits: bits}
}

// Similarity is the Jaccard index over two fingerprint sets. Two empty
// sets are identical and score 1.0; if exactly one side is empty the
// score is 0.0.
func Similarity(a, b Set) float64 {
	ca, cb := a.Len(), b.Len()
	if ca == 0 && cb == 0 {
		return 1.0
	}
	if ca == 0 || cb == 0 {
		return 0.0
	}
	inter := roaring.And(a.bits, b.bits).GetCardinality()
	union := roaring.Or(a.bits, b.bits).GetCardinality()
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// Len returns the number of fingerprints in the set.
func (s Set) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.GetCardinality())
}

func hashGram(tokens []string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.Join(tokens, " ")))
	return h.Sum32()
}

func minRight(window []uint32) uint32 {
	min := window[0]
	for _, v := range window[1:] {
		if v <= min {
			min = v
		}
	}
	return min
}
