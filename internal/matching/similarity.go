package matching

import "strings"

// DefaultThreshold is the similarity score a token pair must exceed to count
// as related. Tunable via MATCH_THRESHOLD.
const DefaultThreshold = 0.5

// Similarity returns the Sorensen-Dice coefficient of the two strings'
// character bigrams, in [0,1]. Whitespace is ignored; identical strings
// score 1.0 and strings shorter than two characters score 0 unless equal.
func Similarity(a, b string) float64 {
	a = strings.Join(strings.Fields(a), "")
	b = strings.Join(strings.Fields(b), "")

	if a == b {
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	bigrams := make(map[string]int, len(a)-1)
	for i := 0; i < len(a)-1; i++ {
		bigrams[a[i:i+2]]++
	}

	var intersection int
	for i := 0; i < len(b)-1; i++ {
		if bigrams[b[i:i+2]] > 0 {
			bigrams[b[i:i+2]]--
			intersection++
		}
	}

	return 2.0 * float64(intersection) / float64(len(a)+len(b)-2)
}

// Matcher decides whether two tokens are related by comparing their
// similarity score against a threshold.
type Matcher struct {
	threshold float64
}

// NewMatcher returns a Matcher with the given threshold. Values outside
// (0,1) fall back to DefaultThreshold: scores must strictly exceed the
// threshold, so 1.0 would reject even identical strings.
func NewMatcher(threshold float64) Matcher {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultThreshold
	}
	return Matcher{threshold: threshold}
}

// Match reports whether the similarity of a and b exceeds the threshold.
func (m Matcher) Match(a, b string) bool {
	return Similarity(a, b) > m.threshold
}
