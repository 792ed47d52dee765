package analyze

import (
	"strings"

	"github.com/shopspring/decimal"

	"sentinelwatch/internal/event"
)

const sentimentLabelThreshold = 0.1

// Sentiment computes lexicon-based polarity in [-1,1], subjectivity in
// [0,1], and the three-way label. Values are rounded to 2 decimal places
// for storage.
func (a *Analyzer) Sentiment(text string) event.Sentiment {
	if text == "" {
		return event.Sentiment{Label: event.SentimentNeutral}
	}

	tokens := strings.Fields(text)
	positives, negatives := 0, 0
	for _, term := range a.tax.PositiveTerms {
		if matchTerm(text, term) {
			positives++
		}
	}
	for _, term := range a.tax.NegativeTerms {
		if matchTerm(text, term) {
			negatives++
		}
	}

	total := positives + negatives
	if total == 0 || len(tokens) == 0 {
		return event.Sentiment{Label: event.SentimentNeutral}
	}

	polarity := float64(positives-negatives) / float64(total)

	// Densidade de vocabulário opinativo como proxy de subjetividade.
	subjectivity := float64(total) * 4 / float64(len(tokens))
	if subjectivity > 1 {
		subjectivity = 1
	}

	return event.Sentiment{
		Polarity:     Round2(polarity),
		Subjectivity: Round2(subjectivity),
		Label:        sentimentLabel(polarity),
	}
}

func sentimentLabel(polarity float64) string {
	switch {
	case polarity > sentimentLabelThreshold:
		return event.SentimentBullish
	case polarity < -sentimentLabelThreshold:
		return event.SentimentBearish
	default:
		return event.SentimentNeutral
	}
}

// Round2 rounds to 2 decimal places using fixed-precision arithmetic so
// stored values are stable across platforms.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
