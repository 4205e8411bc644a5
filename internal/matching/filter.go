package matching

import "experano/internal/domain"

// FilterCandidates retains every event for which at least one user keyword
// matches at least one of the event's normalized keywords (existential match,
// not score-ranked). Input order is preserved, so callers supplying a
// popularity-ordered catalog get a popularity-biased candidate set. An empty
// user keyword set yields an empty result.
func FilterCandidates(userKeywords []string, events []*domain.Event, m Matcher) []*domain.Event {
	candidates := make([]*domain.Event, 0)
	if len(userKeywords) == 0 {
		return candidates
	}
	for _, e := range events {
		if hasKeywordMatch(userKeywords, NormalizeKeywordList(e.Keywords), m) {
			candidates = append(candidates, e)
		}
	}
	return candidates
}

func hasKeywordMatch(userKeywords, eventKeywords []string, m Matcher) bool {
	for _, uk := range userKeywords {
		for _, ek := range eventKeywords {
			if m.Match(uk, ek) {
				return true
			}
		}
	}
	return false
}
