package transcript

import "strings"

// Jaccard scores how much two texts overlap: intersection size over union
// size of their whitespace-delimited token sets. Tokens compare by exact
// string equality, case and punctuation included, and repeats within one
// text collapse to a single set member. Two empty texts are identical, not
// incomparable, so they score 1.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Fields(text) {
		set[token] = true
	}
	return set
}
