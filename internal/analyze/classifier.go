package analyze

import (
	"sort"
	"strings"

	"sentinelwatch/internal/event"
)

const (
	geopoliticalBonus    = 3
	strongNegativeBonus  = 2
	strongPositiveBonus  = 1
	sentimentExtremity   = 0.5
	highImpactThreshold  = 7
	mediumImpactThresh   = 3
	urgentScoreThreshold = 6
)

// Score computes the integer impact score: weighted term hits, a bonus
// for geopolitical items, and a bonus scaled by sentiment extremity:
// high-magnitude sentiment in either direction correlates with higher
// market relevance.
func (a *Analyzer) Score(eventType, text string, keywords []string, polarity float64) int {
	keywordSet := toSet(keywords)

	score := 0
	for term, weight := range a.tax.Weights {
		if _, ok := keywordSet[term]; ok {
			score += weight
			continue
		}
		if strings.Contains(text, term) {
			score += weight
		}
	}

	if eventType == event.TypeGeopolitical {
		score += geopoliticalBonus
	}

	if polarity <= -sentimentExtremity {
		score += strongNegativeBonus
	} else if polarity >= sentimentExtremity {
		score += strongPositiveBonus
	}

	return score
}

// ImpactTier discretizes the score into low/medium/high.
func ImpactTier(score int) string {
	switch {
	case score >= highImpactThreshold:
		return event.ImpactHigh
	case score >= mediumImpactThresh:
		return event.ImpactMedium
	default:
		return event.ImpactLow
	}
}

// UrgencyTier returns "urgent" when an urgency term appears, the item is
// geopolitical, or the score crosses the urgency threshold.
func (a *Analyzer) UrgencyTier(eventType, text string, score int) string {
	for _, term := range a.tax.UrgencyTerms {
		if strings.Contains(text, term) {
			return event.UrgencyUrgent
		}
	}
	if eventType == event.TypeGeopolitical {
		return event.UrgencyUrgent
	}
	if score >= urgentScoreThreshold {
		return event.UrgencyUrgent
	}
	return event.UrgencyNormal
}

// Keywords extracts the top-N tokens by descending frequency, ties broken
// by ascending lexical order. Hyphens split tokens; non-alphanumeric runes
// are stripped; tokens shorter than 3 runes or in the stopword set are
// discarded.
func (a *Analyzer) Keywords(text string) []string {
	if text == "" {
		return []string{}
	}

	frequencies := make(map[string]int)
	for _, raw := range strings.Fields(strings.ReplaceAll(strings.ToLower(text), "-", " ")) {
		token := stripNonAlnum(raw)
		if len([]rune(token)) < 3 {
			continue
		}
		if _, stop := a.tax.Stopwords[token]; stop {
			continue
		}
		frequencies[token]++
	}
	if len(frequencies) == 0 {
		return []string{}
	}

	tokens := make([]string, 0, len(frequencies))
	for token := range frequencies {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if frequencies[tokens[i]] != frequencies[tokens[j]] {
			return frequencies[tokens[i]] > frequencies[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})

	if len(tokens) > maxKeywords {
		tokens = tokens[:maxKeywords]
	}
	return tokens
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
