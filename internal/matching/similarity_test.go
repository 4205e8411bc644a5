package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "music", b: "music", want: 1},
		{name: "identical single char", a: "a", b: "a", want: 1},
		{name: "too short to compare", a: "a", b: "b", want: 0},
		{name: "disjoint", a: "music", b: "yoga", want: 0},
		{name: "close variants", a: "music", b: "musical", want: 0.8},
		{name: "whitespace ignored", a: "live music", b: "livemusic", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{{"festival", "festivals"}, {"hiking", "biking"}, {"art", "artsy"}}
	for _, p := range pairs {
		assert.InDelta(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), 1e-9)
	}
}

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher(0.5)

	// Identical strings score 1.0 and therefore match at any accepted
	// threshold, including the degenerate 1.0 which falls back to the default.
	for _, th := range []float64{0.1, 0.5, 0.99, 1.0} {
		assert.True(t, NewMatcher(th).Match("festival", "festival"))
	}

	assert.True(t, m.Match("music", "musical"))
	assert.False(t, m.Match("music", "finance"))

	// Score must strictly exceed the threshold.
	exact := NewMatcher(0.8)
	assert.InDelta(t, 0.8, Similarity("music", "musical"), 1e-9)
	assert.False(t, exact.Match("music", "musical"))
}

func TestNewMatcher_InvalidThresholdFallsBack(t *testing.T) {
	for _, th := range []float64{-1, 0, 1, 1.5} {
		m := NewMatcher(th)
		assert.Equal(t, DefaultThreshold, m.threshold)
	}
}
