package predictor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"sentinelwatch/internal/event"
	"sentinelwatch/internal/features"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}
}

type stubReasoner struct {
	adjustment *Adjustment
	err        error
}

func (s *stubReasoner) Analyze(ctx context.Context, ev event.EnrichedEvent) (*Adjustment, error) {
	return s.adjustment, s.err
}

func TestHeuristicKnownVector(t *testing.T) {
	vec := features.Vector{
		SentimentAbs:     0.5,
		ImpactScore:      8,
		HasCrisisKeyword: 1,
		SectorEncoded:    3,
		UrgencyEncoded:   2,
	}
	got, err := Heuristic{}.Predict(vec)
	if err != nil {
		t.Fatalf("heurística nunca deveria falhar: %v", err)
	}
	// 0.5*0.15 + 0.8*0.30 + 0.20 + 0.10 + 0.10
	if got != 0.715 {
		t.Fatalf("probabilidade esperada 0.715, obtida %v", got)
	}
}

func TestHeuristicZeroVector(t *testing.T) {
	got, err := Heuristic{}.Predict(features.Vector{})
	if err != nil || got != 0 {
		t.Fatalf("vetor zerado deveria dar 0, obtido %v (%v)", got, err)
	}
}

func TestHeuristicClampsAtOne(t *testing.T) {
	vec := features.Vector{
		SentimentAbs:     1,
		ImpactScore:      20,
		HasCrisisKeyword: 1,
		HasPolicyKeyword: 1,
		SectorEncoded:    2,
		UrgencyEncoded:   3,
	}
	got, err := Heuristic{}.Predict(vec)
	if err != nil {
		t.Fatalf("heurística nunca deveria falhar: %v", err)
	}
	if got != 1 {
		t.Fatalf("probabilidade deve saturar em 1, obtida %v", got)
	}
}

func TestPredictFallsBackWhenModelFails(t *testing.T) {
	model := &Model{
		Version:      "broken_v1",
		FeatureNames: features.Names(),
		Weights:      []float64{}, // tamanho errado força erro de Predict
	}
	p := New(model, nil, noopLogger())
	probability, version := p.Predict(features.Vector{ImpactScore: 5})
	if version != "heuristic_v1" {
		t.Fatalf("falha do modelo deveria cair na heurística, obtido %q", version)
	}
	if probability != 0.15 {
		t.Fatalf("probabilidade heurística esperada 0.15, obtida %v", probability)
	}
}

func TestPredictEventAppliesClampedDelta(t *testing.T) {
	reasoner := &stubReasoner{adjustment: &Adjustment{Reasoning: "escalada regional", Delta: 0.5}}
	p := New(nil, reasoner, noopLogger()).WithClock(testClock())

	vec := features.Vector{ImpactScore: 5} // heurística: 0.15
	prediction := p.PredictEvent(context.Background(), event.EnrichedEvent{ID: "evt-1"}, vec)

	if prediction.Probability != 0.35 {
		t.Fatalf("delta +0.5 deveria ser limitado a +0.2, probabilidade %v", prediction.Probability)
	}
	if prediction.ModelVersion != "heuristic_v1+llm" {
		t.Fatalf("ajuste aplicado deveria sufixar +llm, obtido %q", prediction.ModelVersion)
	}
	if prediction.LLMReasoning == nil || *prediction.LLMReasoning != "escalada regional" {
		t.Fatalf("justificativa deveria ser preservada, obtida %v", prediction.LLMReasoning)
	}
}

func TestPredictEventReasonerFailureIsSoft(t *testing.T) {
	reasoner := &stubReasoner{err: errors.New("timeout")}
	p := New(nil, reasoner, noopLogger()).WithClock(testClock())

	prediction := p.PredictEvent(context.Background(), event.EnrichedEvent{ID: "evt-1"}, features.Vector{ImpactScore: 5})
	if prediction.ModelVersion != "heuristic_v1" {
		t.Fatalf("falha do reasoner não pode sufixar +llm, obtido %q", prediction.ModelVersion)
	}
	if prediction.Probability != 0.15 {
		t.Fatalf("probabilidade base esperada 0.15, obtida %v", prediction.Probability)
	}
	if prediction.LLMReasoning != nil {
		t.Fatal("sem ajuste não deveria haver justificativa")
	}
}

func TestPredictEventDocumentFields(t *testing.T) {
	p := New(nil, nil, noopLogger()).WithClock(testClock())
	ev := event.EnrichedEvent{
		ID:        "evt-9",
		Title:     "Copom eleva a Selic",
		Sector:    "Macro",
		SubSector: "Monetary Policy",
	}
	vec := features.Vector{ImpactScore: 8, SectorEncoded: 3}
	prediction := p.PredictEvent(context.Background(), ev, vec)

	if prediction.EventID != "evt-9" || prediction.EventTitle != ev.Title {
		t.Fatalf("identidade do evento mal propagada: %+v", prediction)
	}
	if prediction.ImpactCategory != "Macroeconomic Impact" {
		t.Fatalf("categoria esperada Macroeconomic Impact, obtida %q", prediction.ImpactCategory)
	}
	if prediction.PredictedAt != "2024-01-02T03:04:05Z" {
		t.Fatalf("predicted_at deveria usar o relógio injetado, obtido %q", prediction.PredictedAt)
	}
	if len(prediction.FeaturesUsed) != len(features.Names()) {
		t.Fatalf("features_used deveria ter %d chaves, obtidas %d", len(features.Names()), len(prediction.FeaturesUsed))
	}
}

func TestConfidenceTiers(t *testing.T) {
	cases := []struct {
		probability float64
		want        string
	}{
		{0.9, "high"},
		{0.75, "high"},
		{0.6, "medium"},
		{0.45, "medium"},
		{0.2, "low"},
	}
	for _, tc := range cases {
		if got := Confidence(tc.probability); got != tc.want {
			t.Fatalf("probabilidade %v: esperado %q, obtido %q", tc.probability, tc.want, got)
		}
	}
}

func TestImpactCategoryPolicyWins(t *testing.T) {
	vec := features.Vector{HasPolicyKeyword: 1}
	if got := ImpactCategory(vec, "Macro"); got != "Policy Impact" {
		t.Fatalf("vocabulário de política deveria vencer, obtido %q", got)
	}
	if got := ImpactCategory(features.Vector{}, "Tech"); got != "Sector Impact" {
		t.Fatalf("setor não macro deveria ser Sector Impact, obtido %q", got)
	}
}
