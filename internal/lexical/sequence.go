package lexical

// sequenceRatio is the classic matching-blocks similarity: twice the
// total length of all common blocks divided by the combined length.
// Blocks are found by recursively locating the longest common substring
// and matching to its left and right.
func sequenceRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	m := matchingTotal(ra, rb)
	return 2.0 * float64(m) / float64(len(ra)+len(rb))
}

// lcsRatio is the longest common contiguous run divided by the length
// of the shorter string.
func lcsRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	_, _, size := longestCommonBlock(ra, rb)
	shorter := len(ra)
	if len(rb) < shorter {
		shorter = len(rb)
	}
	return float64(size) / float64(shorter)
}

func matchingTotal(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size + matchingTotal(a[:ai], b[:bi]) + matchingTotal(a[ai+size:], b[bi+size:])
}

// longestCommonBlock finds the longest common contiguous run of a and b
// with a rolling-row dynamic program. Returns start positions and size;
// on ties the earliest block in a wins, keeping the result stable.
func longestCommonBlock(a, b []rune) (ai, bi, size int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
