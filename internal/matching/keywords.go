// Package matching implements the leaf components of the preference-to-event
// matching pipeline: keyword extraction, keyword normalization, fuzzy token
// similarity, and candidate filtering.
package matching

import (
	"encoding/json"
	"regexp"
	"strings"
)

// MaxKeywords caps how many tokens are extracted from a preference profile.
const MaxKeywords = 5

// tokenPattern matches alphabetic words of at least four letters.
var tokenPattern = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

// stopWords are filler words excluded from extracted keywords. The set also
// covers vocabulary the onboarding bot itself tends to produce ("summarize",
// "profile", "preference") so profile boilerplate doesn't match events.
var stopWords = map[string]struct{}{
	"the": {}, "this": {}, "that": {}, "is": {}, "are": {}, "was": {},
	"were": {}, "in": {}, "on": {}, "for": {}, "to": {}, "a": {}, "of": {},
	"it": {}, "and": {}, "or": {}, "an": {}, "with": {}, "as": {}, "by": {},
	"be": {}, "we": {}, "you": {}, "your": {}, "he": {}, "she": {},
	"they": {}, "i": {}, "me": {}, "my": {}, "mine": {}, "our": {},
	"ours": {}, "like": {}, "sounds": {}, "great": {}, "evening": {},
	"think": {}, "have": {}, "good": {}, "sense": {}, "hello": {},
	"covered": {}, "love": {}, "preference": {}, "profile": {},
	"paragraph": {}, "summarize": {}, "events": {}, "now": {}, "know": {},
	"sure": {}, "make": {},
}

// ExtractKeywords turns a free-text preference profile into at most
// MaxKeywords lowercase tokens: alphabetic words of length >= 4, stop words
// removed, deduplicated preserving first-seen order. An empty result means
// the profile cannot be personalized; it is not an error.
func ExtractKeywords(profile string) []string {
	words := tokenPattern.FindAllString(profile, -1)
	seen := make(map[string]struct{}, len(words))
	keywords := make([]string, 0, MaxKeywords)
	for _, w := range words {
		w = strings.ToLower(w)
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		keywords = append(keywords, w)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}

// NormalizeKeywordList lowercases and trims each token, dropping empties and
// duplicates. It is idempotent: normalizing an already-normalized list returns
// an equal list.
func NormalizeKeywordList(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// ParseKeywordField coerces a raw keyword field into a normalized token list.
// Historical schema revisions stored keywords either as a JSON string array
// or as a single comma-delimited string; absent or malformed input yields an
// empty list, never an error.
func ParseKeywordField(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return NormalizeKeywordList(list)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return NormalizeKeywordList(strings.Split(s, ","))
	}
	return []string{}
}
