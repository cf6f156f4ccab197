package merge

// Similarity computes a textual similarity ratio in [0,1] between two
// statements. Both inputs are normalized for matching first. Two empty
// normalized strings are maximally similar; one empty and one non-empty are
// maximally dissimilar. Otherwise the result is the longest-common-subsequence
// alignment ratio 2*LCS/(len(a)+len(b)) over the normalized runes, which is
// symmetric, reflexive, and bounded.
func Similarity(a, b string) float64 {
	na := normalizeForMatch(a)
	nb := normalizeForMatch(b)
	if na == "" && nb == "" {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	return alignmentRatio([]rune(na), []rune(nb))
}

// alignmentRatio is the LCS ratio over two non-empty rune slices.
func alignmentRatio(a, b []rune) float64 {
	l := lcsLength(a, b)
	return 2.0 * float64(l) / float64(len(a)+len(b))
}

// lcsLength computes the longest-common-subsequence length with a two-row
// dynamic program. Statements are short (hundreds of runes at most), so the
// O(n*m) cost is negligible.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
