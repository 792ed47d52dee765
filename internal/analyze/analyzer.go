package analyze

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"sentinelwatch/internal/event"
)

const (
	maxTitleLength = 140
	maxBodyLength  = 400
	maxKeywords    = 6
)

// Analyzer applies the lexical classification rules to raw events. All
// keyword tables come from the injected Taxonomy; the analyzer holds no
// other state and is safe for concurrent use.
type Analyzer struct {
	tax    Taxonomy
	logger zerolog.Logger
	now    func() time.Time

	regionPatterns []*regexp.Regexp
	entityPattern  *regexp.Regexp
	sortedCities   []string
	sortedStates   []string
	ufCodes        map[string]struct{}
}

// NewAnalyzer compiles patterns and pre-sorts the location tables so that
// multi-word place names are matched before their shorter substrings.
func NewAnalyzer(tax Taxonomy, logger zerolog.Logger) (*Analyzer, error) {
	a := &Analyzer{
		tax:    tax,
		logger: logger.With().Str("component", "analyzer").Logger(),
		now:    time.Now,
	}

	for _, p := range tax.RegionPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile region pattern %q: %w", p, err)
		}
		a.regionPatterns = append(a.regionPatterns, re)
	}

	a.entityPattern = regexp.MustCompile(`[A-ZÁÉÍÓÚÂÊÔÃÕÇ][\wÁÉÍÓÚÂÊÔÃÕÇáéíóúâêôãõç-]*(?:\s+[A-ZÁÉÍÓÚÂÊÔÃÕÇ][\wÁÉÍÓÚÂÊÔÃÕÇáéíóúâêôãõç-]*){0,3}`)

	a.sortedCities = sortedByLengthDesc(tax.CityRegions)
	a.sortedStates = sortedByLengthDesc(tax.StateRegions)

	a.ufCodes = make(map[string]struct{})
	for _, uf := range tax.StateRegions {
		a.ufCodes[strings.ToLower(uf)] = struct{}{}
	}
	for _, uf := range tax.CityRegions {
		a.ufCodes[strings.ToLower(uf)] = struct{}{}
	}

	return a, nil
}

// WithClock overrides the time source; intended for tests.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Enrich normalizes and classifies a raw event into an EnrichedEvent.
// Returns ErrNotRelevant when the relevance filter rejects the item; the
// filter runs before any scoring so irrelevant items never reach storage.
func (a *Analyzer) Enrich(raw event.RawEvent) (*event.EnrichedEvent, error) {
	eventType := raw.EventType
	if eventType == "" {
		eventType = event.TypeFinancial
	}
	title := CleanText(raw.Title, maxTitleLength)
	if title == "" {
		title = "Sem título"
	}
	body := CleanText(raw.Body, maxBodyLength)

	fullText := strings.ToLower(strings.TrimSpace(title + " " + body))
	if !a.Relevant(fullText) {
		return nil, ErrNotRelevant
	}

	sentiment := a.Sentiment(fullText)
	keywords := a.Keywords(fullText)
	entities := a.Entities(strings.TrimSpace(title + " " + body))
	score := a.Score(eventType, fullText, keywords, sentiment.Polarity)
	impact := ImpactTier(score)
	urgency := a.UrgencyTier(eventType, fullText, score)
	sector := a.Sector(fullText, raw.Source.URL, raw.Link)
	country := a.Country(fullText, raw.Source.URL, raw.Link)

	enriched := &event.EnrichedEvent{
		ID:          raw.EventID,
		Type:        eventType,
		Title:       title,
		Description: body,
		Impact:      impact,
		Urgency:     urgency,
		Sector:      sector,
		SubSector:   a.SubSector(fullText),
		Keywords:    keywords,
		Entities:    entities,
		Location: event.Location{
			Country: country,
			Region:  a.Region(fullText, country),
		},
		Analytics: event.Analytics{
			Sentiment: sentiment,
			Score:     score,
		},
		Insight:    insight(impact, urgency, sector),
		Source:     raw.Source,
		Link:       raw.Link,
		Timestamp:  NormalizeTimestamp(raw.CreatedAt, a.now),
		AnalyzedAt: formatUTC(a.now()),
	}
	return enriched, nil
}

// insight builds the short advisory string carried on the record.
func insight(impact, urgency, sector string) string {
	switch {
	case impact == event.ImpactHigh && urgency == event.UrgencyUrgent:
		return fmt.Sprintf("Alto potencial de impacto em %s; acompanhar desdobramentos imediatos", sector)
	case impact == event.ImpactHigh:
		return fmt.Sprintf("Alto potencial de impacto em %s", sector)
	case impact == event.ImpactMedium:
		return fmt.Sprintf("Impacto moderado em %s; monitorar evolução", sector)
	default:
		return "Baixa relevância de mercado no curto prazo"
	}
}

// matchTerm reports whether term occurs in text. Entries of three runes
// or fewer require token boundaries; longer, more specific terms may
// match anywhere ("rio" não pode casar dentro de "cenário").
func matchTerm(text, term string) bool {
	if len([]rune(term)) <= 3 {
		return containsToken(text, term)
	}
	return strings.Contains(text, term)
}

// containsToken reports whether term appears delimited by non-alphanumeric
// runes on both sides.
func containsToken(text, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		before := ' '
		if idx > 0 {
			runes := []rune(text[:idx])
			before = runes[len(runes)-1]
		}
		after := ' '
		if end := idx + len(term); end < len(text) {
			after = []rune(text[end:])[0]
		}
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		start = idx + len(term)
		if start >= len(text) {
			return false
		}
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func sortedByLengthDesc(table map[string]string) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
