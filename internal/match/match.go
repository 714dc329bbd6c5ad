// Package match computes case-insensitive Levenshtein distance and the
// length-proportional threshold used for fuzzy brand matching.
package match

import "strings"

// Distance - classic edit distance (insert, delete, substitute, each cost 1)
// between a and b, case-insensitive, computed over runes with dynamic
// programming in O(len(a)*len(b)).
func Distance(a, b string) int {
	left := []rune(strings.ToLower(a))
	right := []rune(strings.ToLower(b))

	rows, cols := len(left), len(right)

	dp := make([][]int, rows+1)
	for i := range dp {
		dp[i] = make([]int, cols+1)
	}

	for i := 1; i <= rows; i++ {
		dp[i][0] = i
	}
	for j := 1; j <= cols; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			if left[i-1] == right[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}

			insert := dp[i][j-1]
			delete := dp[i-1][j]
			replace := dp[i-1][j-1]

			dp[i][j] = min(insert, delete, replace) + 1
		}
	}

	return dp[rows][cols]
}

// Threshold - the largest distance a fuzzy match may have for the given
// word: 40% of its length rounded down, at least 1, capped by staticMax.
// Short words stay strict while longer words absorb a typo or two.
func Threshold(word string, staticMax int) int {
	proportional := len([]rune(word)) * 4 / 10
	if proportional < 1 {
		proportional = 1
	}

	if proportional > staticMax {
		return staticMax
	}

	return proportional
}
