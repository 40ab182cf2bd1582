package category

import "strings"

// Resolve maps free text to a catalog entry.
//
// A unique case-insensitive prefix match wins. With zero or several prefix
// matches the entry with the smallest Levenshtein distance is returned, ties
// going to the earliest entry. Empty input prefix-matches everything and so
// falls back to the shortest entry.
//
// The zero Catalog resolves everything to "".
func (c Catalog) Resolve(input string) string {
	if len(c.names) == 0 {
		return ""
	}

	query := strings.ToLower(input)

	match := -1
	matches := 0
	for i, name := range c.lower {
		if strings.HasPrefix(name, query) {
			match = i
			matches++
		}
	}
	if matches == 1 {
		return c.names[match]
	}

	best, bestDist := 0, -1
	for i, name := range c.lower {
		d := Levenshtein(query, name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return c.names[best]
}

// Levenshtein returns the case-insensitive edit distance between a and b,
// counted in runes. It keeps two rows sized to the shorter string.
func Levenshtein(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	m, n := len(ra), len(rb)

	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= n; j++ {
		curr[0] = j
		for i := 1; i <= m; i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[m]
}
