// Package features maps enriched events to the fixed numeric vector
// consumed by the impact predictor. The field order and defaulting rules
// here are the single canonical definition shared by the online pipeline
// and the dataset exporter: a classifier trained against one ordering is
// invalid against any other.
package features

import (
	"strings"

	"sentinelwatch/internal/event"
)

// Label encodings. Unknown values fall back to the catch-all codes.
var (
	sectorCodes = map[string]float64{
		"Crypto": 0, "Tech": 1, "Market": 2,
		"Macro": 3, "Commodities": 4, "Social": 5,
	}
	subSectorCodes = map[string]float64{
		"Monetary Policy": 0, "Geopolitics": 1, "Fiscal Policy": 2,
		"Economic Data": 3, "General": 4,
		"DeFi": 5, "Regulation": 6, "Mining": 7,
		"AI": 8, "Semiconductors": 9, "Cybersecurity": 10,
	}
	urgencyCodes = map[string]float64{
		"critical": 3, "urgent": 2, "normal": 1, "low": 0,
	}
	impactCodes = map[string]float64{
		"high": 3, "medium": 2, "low": 1,
	}
)

const (
	defaultSectorCode    = 5 // Social / catch-all
	defaultSubSectorCode = 4 // General
	defaultUrgencyCode   = 1 // normal
	defaultImpactCode    = 1 // low
)

// CrisisKeywords flag high-impact vocabulary in the title+description.
var CrisisKeywords = []string{
	"crash", "colapso", "recessão", "recession", "default", "guerra",
	"war", "sanção", "sanction", "tariff", "tarifa", "impeachment",
	"crise", "crisis", "falência", "bankruptcy", "shutdown",
	"emergência", "emergency", "inflação", "inflation",
	"selic", "fed", "juros", "rates", "hike",
}

// PolicyKeywords flag public-policy vocabulary.
var PolicyKeywords = []string{
	"governo", "government", "lei", "law", "regulação", "regulation",
	"ministério", "ministry", "congresso", "congress", "senado", "senate",
	"reforma", "reform", "tributária", "fiscal", "orçamento", "budget",
	"subsídio", "subsidy", "privatização", "privatization",
	"lula", "haddad", "campos neto", "galípolo",
	"powell", "yellen", "lagarde", "biden", "trump",
}

var socialDomains = []string{"reddit.com", "twitter.com", "x.com", "nitter."}

// Vector is the fixed, ordered 14-field feature vector. Derivable
// deterministically and only from an EnrichedEvent.
type Vector struct {
	SentimentPolarity float64
	SentimentAbs      float64
	ImpactScore       float64
	SectorEncoded     float64
	SubSectorEncoded  float64
	KeywordCount      float64
	EntityCount       float64
	TitleLength       float64
	DescriptionLength float64
	HasCrisisKeyword  float64
	HasPolicyKeyword  float64
	IsSocialSource    float64
	UrgencyEncoded    float64
	ImpactEncoded     float64
}

// Names returns the canonical feature order. Training tooling and the
// model artifact loader validate against this exact list.
func Names() []string {
	return []string{
		"sentiment_polarity", "sentiment_abs", "impact_score",
		"sector_encoded", "sub_sector_encoded",
		"keyword_count", "entity_count",
		"title_length", "description_length",
		"has_crisis_keyword", "has_policy_keyword",
		"is_social_source", "urgency_encoded", "impact_encoded",
	}
}

// Values returns the vector in canonical order.
func (v Vector) Values() []float64 {
	return []float64{
		v.SentimentPolarity, v.SentimentAbs, v.ImpactScore,
		v.SectorEncoded, v.SubSectorEncoded,
		v.KeywordCount, v.EntityCount,
		v.TitleLength, v.DescriptionLength,
		v.HasCrisisKeyword, v.HasPolicyKeyword,
		v.IsSocialSource, v.UrgencyEncoded, v.ImpactEncoded,
	}
}

// Map returns the vector keyed by canonical names, as stored on the
// prediction document.
func (v Vector) Map() map[string]float64 {
	names := Names()
	values := v.Values()
	m := make(map[string]float64, len(names))
	for i, name := range names {
		m[name] = values[i]
	}
	return m
}

// Extract derives the feature vector from an enriched event.
func Extract(ev event.EnrichedEvent) Vector {
	fullText := strings.ToLower(ev.Title + " " + ev.Description)
	sourceURL := strings.ToLower(ev.Source.URL)
	link := strings.ToLower(ev.Link)

	polarity := ev.Analytics.Sentiment.Polarity

	return Vector{
		SentimentPolarity: polarity,
		SentimentAbs:      abs(polarity),
		ImpactScore:       float64(ev.Analytics.Score),
		SectorEncoded:     lookup(sectorCodes, ev.Sector, defaultSectorCode),
		SubSectorEncoded:  lookup(subSectorCodes, ev.SubSector, defaultSubSectorCode),
		KeywordCount:      float64(len(ev.Keywords)),
		EntityCount:       float64(ev.Entities.Count()),
		TitleLength:       float64(len(ev.Title)),
		DescriptionLength: float64(len(ev.Description)),
		HasCrisisKeyword:  flag(containsAny(fullText, CrisisKeywords)),
		HasPolicyKeyword:  flag(containsAny(fullText, PolicyKeywords)),
		IsSocialSource:    flag(containsAny(sourceURL, socialDomains) || containsAny(link, socialDomains)),
		UrgencyEncoded:    lookup(urgencyCodes, ev.Urgency, defaultUrgencyCode),
		ImpactEncoded:     lookup(impactCodes, ev.Impact, defaultImpactCode),
	}
}

func lookup(codes map[string]float64, key string, fallback float64) float64 {
	if code, ok := codes[key]; ok {
		return code
	}
	return fallback
}

func containsAny(text string, terms []string) bool {
	if text == "" {
		return false
	}
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
