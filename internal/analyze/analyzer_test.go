package analyze

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"sentinelwatch/internal/event"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(DefaultTaxonomy(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAnalyzer não deveria falhar: %v", err)
	}
	return a.WithClock(fixedClock())
}

func TestEnrichRejectsSportsItem(t *testing.T) {
	a := newTestAnalyzer(t)
	_, err := a.Enrich(event.RawEvent{
		EventID: "evt-1",
		Title:   "Neymar marca gol no Flamengo",
	})
	if !errors.Is(err, ErrNotRelevant) {
		t.Fatalf("notícia esportiva deveria ser descartada, erro: %v", err)
	}
}

func TestEnrichAcceptsMonetaryPolicyItem(t *testing.T) {
	a := newTestAnalyzer(t)
	enriched, err := a.Enrich(event.RawEvent{
		EventID: "evt-2",
		Title:   "Copom eleva a Selic",
	})
	if err != nil {
		t.Fatalf("notícia de política monetária deveria passar: %v", err)
	}
	if enriched.ID != "evt-2" {
		t.Fatalf("id deveria ser preservado, obtido %q", enriched.ID)
	}
	if enriched.Sector != "Macro" {
		t.Fatalf("setor esperado Macro, obtido %q", enriched.Sector)
	}
	if enriched.SubSector != "Monetary Policy" {
		t.Fatalf("sub-setor esperado Monetary Policy, obtido %q", enriched.SubSector)
	}
	if enriched.Location.Country != "BR" {
		t.Fatalf("país esperado BR, obtido %q", enriched.Location.Country)
	}
}

func TestEnrichFedHeadlineIsNeutralMacro(t *testing.T) {
	a := newTestAnalyzer(t)
	enriched, err := a.Enrich(event.RawEvent{
		EventID: "evt-3",
		Title:   "Fed sinaliza alta de juros",
	})
	if err != nil {
		t.Fatalf("manchete do Fed deveria passar: %v", err)
	}
	if enriched.Sector != "Macro" {
		t.Fatalf("setor esperado Macro, obtido %q", enriched.Sector)
	}
	if enriched.Analytics.Sentiment.Label != event.SentimentNeutral {
		t.Fatalf("direção de juros não é opinião; sentimento esperado Neutral, obtido %q", enriched.Analytics.Sentiment.Label)
	}
	if enriched.Location.Country != "US" {
		t.Fatalf("país esperado US, obtido %q", enriched.Location.Country)
	}
}

func TestEnrichDefaultsEmptyTitleAndType(t *testing.T) {
	a := newTestAnalyzer(t)
	enriched, err := a.Enrich(event.RawEvent{
		EventID: "evt-4",
		Body:    "Banco Central discute a taxa selic",
	})
	if err != nil {
		t.Fatalf("evento com corpo relevante deveria passar: %v", err)
	}
	if enriched.Title != "Sem título" {
		t.Fatalf("título vazio deveria virar 'Sem título', obtido %q", enriched.Title)
	}
	if enriched.Type != event.TypeFinancial {
		t.Fatalf("tipo vazio deveria virar financial, obtido %q", enriched.Type)
	}
}

func TestEnrichNormalizesTimestamps(t *testing.T) {
	a := newTestAnalyzer(t)
	enriched, err := a.Enrich(event.RawEvent{
		EventID:   "evt-5",
		Title:     "Copom eleva a Selic",
		CreatedAt: "Mon, 02 Jan 2006 22:04:05 +0000",
	})
	if err != nil {
		t.Fatalf("enrich falhou: %v", err)
	}
	if enriched.Timestamp != "2006-01-02T22:04:05Z" {
		t.Fatalf("timestamp deveria ser ISO-8601 UTC, obtido %q", enriched.Timestamp)
	}
	if enriched.AnalyzedAt != "2024-01-02T03:04:05Z" {
		t.Fatalf("analyzed_at deveria usar o relógio injetado, obtido %q", enriched.AnalyzedAt)
	}
}

func TestEnrichGeopoliticalIsUrgent(t *testing.T) {
	a := newTestAnalyzer(t)
	enriched, err := a.Enrich(event.RawEvent{
		EventID:   "evt-6",
		EventType: event.TypeGeopolitical,
		Title:     "Guerra eleva tensão sobre sanções",
	})
	if err != nil {
		t.Fatalf("enrich falhou: %v", err)
	}
	if enriched.Urgency != event.UrgencyUrgent {
		t.Fatalf("evento geopolítico deveria ser urgent, obtido %q", enriched.Urgency)
	}
	if enriched.Impact != event.ImpactHigh {
		t.Fatalf("guerra+sanções deveria ser high, obtido %q", enriched.Impact)
	}
}

func TestMatchTermShortNeedsBoundary(t *testing.T) {
	if matchTerm("cenário fiscal", "rio") {
		t.Fatal("'rio' não pode casar dentro de 'cenário'")
	}
	if !matchTerm("enchente no rio hoje", "rio") {
		t.Fatal("'rio' como token deveria casar")
	}
	if !matchTerm("inflação persistente", "inflação") {
		t.Fatal("termo longo deveria casar por substring")
	}
}
