package normalize

import "strings"

// Similarity scores how alike two merchant/description strings are, in
// [0,1]. Comparison is case-insensitive and symmetric, and a string always
// scores 1.0 against itself. Measures are tried in order: equality,
// substring containment scaled by length ratio, shared-whole-word overlap
// mapped to [0.6, 0.9], then edit distance as a last resort.
func Similarity(a, b string) float64 {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))

	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := len(a), len(b)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer)
	}

	if overlap := wordOverlap(a, b); overlap > 0 {
		return 0.6 + 0.3*overlap
	}

	return editSimilarity(a, b)
}

// wordOverlap returns the fraction of whole words the two strings share,
// relative to the larger word count. 0 when they share none.
func wordOverlap(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		setA[w] = true
	}

	shared := 0
	seen := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		if setA[w] && !seen[w] {
			shared++
			seen[w] = true
		}
	}
	if shared == 0 {
		return 0
	}

	larger := len(wordsA)
	if len(wordsB) > larger {
		larger = len(wordsB)
	}
	return float64(shared) / float64(larger)
}

// editSimilarity derives a similarity from Levenshtein distance. The
// distance is only computed when the lengths are within 2x of each other
// (edit distance on wildly different lengths is slow and meaningless), and
// only reported when above 0.7.
func editSimilarity(a, b string) float64 {
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if longer > 2*shorter {
		return 0
	}

	dist := levenshtein(a, b)
	sim := 1.0 - float64(dist)/float64(longer)
	if sim <= 0.7 {
		return 0
	}
	return sim
}

// levenshtein computes edit distance with a two-row table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
