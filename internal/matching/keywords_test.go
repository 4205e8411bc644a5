package matching

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		want    []string
	}{
		{
			name:    "basic extraction",
			profile: "I love live music and outdoor festivals",
			want:    []string{"live", "music", "outdoor", "festivals"},
		},
		{
			name:    "short words and stop words removed",
			profile: "I think this is a good evening, you know",
			want:    []string{},
		},
		{
			name:    "empty profile",
			profile: "",
			want:    []string{},
		},
		{
			name:    "only punctuation and digits",
			profile: "1234 !!! ??? 42",
			want:    []string{},
		},
		{
			name:    "deduplicates preserving first-seen order",
			profile: "jazz concerts, more jazz, then comedy and JAZZ again",
			want:    []string{"jazz", "concerts", "more", "then", "comedy"},
		},
		{
			name:    "caps at five tokens",
			profile: "hiking biking climbing swimming painting cooking dancing",
			want:    []string{"hiking", "biking", "climbing", "swimming", "painting"},
		},
		{
			name:    "stop words filtered case-insensitively",
			profile: "LOVE Sounds GREAT but museums remain",
			want:    []string{"museums", "remain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.profile)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), MaxKeywords)
		})
	}
}

func TestNormalizeKeywordList_Idempotent(t *testing.T) {
	raw := []string{" Music ", "FESTIVAL", "", "  ", "art"}
	once := NormalizeKeywordList(raw)
	require.Equal(t, []string{"music", "festival", "art"}, once)

	twice := NormalizeKeywordList(once)
	assert.Equal(t, once, twice)
}

func TestParseKeywordField(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "json array", raw: `["Music", " Festival "]`, want: []string{"music", "festival"}},
		{name: "comma-delimited string", raw: `"music, festival,ART"`, want: []string{"music", "festival", "art"}},
		{name: "absent", raw: ``, want: []string{}},
		{name: "null", raw: `null`, want: []string{}},
		{name: "malformed", raw: `{"not":"keywords"}`, want: []string{}},
		{name: "number", raw: `42`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw json.RawMessage
			if tt.raw != "" {
				raw = json.RawMessage(tt.raw)
			}
			assert.Equal(t, tt.want, ParseKeywordField(raw))
		})
	}
}
