// Package relevance implements the lexical scoring primitives of listing search:
// a normalized Levenshtein similarity and a weighted per-field scorer.
package relevance

import "strings"

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)) over the
// lower-cased inputs, in [0, 1]. Lengths and edits are counted in runes, so a
// multi-byte character is a single edit. Two empty strings are identical.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein is the unit-cost edit distance (insert, delete, substitute),
// computed over the full (len(a)+1) x (len(b)+1) table.
func levenshtein(a, b []rune) int {
	m, n := len(a), len(b)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			dp[i][j] = 1 + min(dp[i-1][j], dp[i][j-1], dp[i-1][j-1])
		}
	}
	return dp[m][n]
}
