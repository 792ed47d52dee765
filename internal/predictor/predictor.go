// Package predictor produces calibrated impact probabilities from
// feature vectors. Prediction strategies are tried in order, trained
// model first and deterministic heuristic last, so a missing or corrupt
// artifact silently downgrades instead of failing.
package predictor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"sentinelwatch/internal/event"
	"sentinelwatch/internal/features"
)

// Confidence tier thresholds.
const (
	highConfidenceThreshold   = 0.75
	mediumConfidenceThreshold = 0.45
)

// Heuristic fallback weights. Fixed contract: changing any of these
// invalidates previously exported datasets.
const (
	polarityWeight    = 0.15
	impactScoreWeight = 0.30
	crisisBonus       = 0.20
	policyBonus       = 0.15
	macroSectorBonus  = 0.10
	urgencyBonus      = 0.10
)

// maxReasoningDelta bounds the LLM adjustment in either direction.
const maxReasoningDelta = 0.2

// Strategy computes a probability from a feature vector. Implementations
// return an error to pass control to the next strategy in the chain.
type Strategy interface {
	Name() string
	Predict(vec features.Vector) (float64, error)
}

// Reasoner is the optional external reasoning step. Implementations must
// honour the context deadline; any failure is treated as "no adjustment".
type Reasoner interface {
	Analyze(ctx context.Context, ev event.EnrichedEvent) (*Adjustment, error)
}

// Adjustment is a bounded probability delta plus a short rationale.
type Adjustment struct {
	Reasoning string
	Delta     float64
}

// Predictor runs the strategy chain and the optional reasoning layer.
type Predictor struct {
	strategies []Strategy
	reasoner   Reasoner
	logger     zerolog.Logger
	now        func() time.Time
}

// New assembles the strategy chain. A nil model selects the heuristic
// alone; a nil reasoner disables the adjustment layer.
func New(model *Model, reasoner Reasoner, logger zerolog.Logger) *Predictor {
	strategies := make([]Strategy, 0, 2)
	if model != nil {
		strategies = append(strategies, model)
	}
	strategies = append(strategies, Heuristic{})

	return &Predictor{
		strategies: strategies,
		reasoner:   reasoner,
		logger:     logger.With().Str("component", "predictor").Logger(),
		now:        time.Now,
	}
}

// WithClock overrides the time source; intended for tests.
func (p *Predictor) WithClock(now func() time.Time) *Predictor {
	p.now = now
	return p
}

// Predict runs the chain over the feature vector: first strategy to
// succeed wins. Returns the probability in [0,1] and the version tag of
// the strategy that produced it.
func (p *Predictor) Predict(vec features.Vector) (float64, string) {
	for _, strategy := range p.strategies {
		probability, err := strategy.Predict(vec)
		if err != nil {
			p.logger.Warn().Err(err).Str("strategy", strategy.Name()).Msg("strategy failed, trying next")
			continue
		}
		return Round3(clamp01(probability)), strategy.Name()
	}
	// Unreachable: the heuristic never fails. Kept so the chain stays
	// total if the strategy list is ever reconfigured.
	return 0, "none"
}

// PredictEvent builds the full prediction document for an enriched
// event, applying the reasoning adjustment when the layer is enabled and
// answers within its deadline.
func (p *Predictor) PredictEvent(ctx context.Context, ev event.EnrichedEvent, vec features.Vector) event.Prediction {
	probability, modelVersion := p.Predict(vec)

	var reasoning *string
	if p.reasoner != nil {
		adjustment, err := p.reasoner.Analyze(ctx, ev)
		switch {
		case err != nil:
			p.logger.Warn().Err(err).Str("event_id", ev.ID).Msg("reasoning step skipped")
		case adjustment != nil:
			delta := clampDelta(adjustment.Delta)
			probability = Round3(clamp01(probability + delta))
			modelVersion += "+llm"
			if adjustment.Reasoning != "" {
				r := adjustment.Reasoning
				reasoning = &r
			}
		}
	}

	return event.Prediction{
		EventID:        ev.ID,
		EventTitle:     ev.Title,
		Sector:         ev.Sector,
		SubSector:      ev.SubSector,
		Probability:    probability,
		Confidence:     Confidence(probability),
		ImpactCategory: ImpactCategory(vec, ev.Sector),
		FeaturesUsed:   vec.Map(),
		LLMReasoning:   reasoning,
		ModelVersion:   modelVersion,
		PredictedAt:    p.now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// Heuristic is the deterministic fallback formula, always available.
type Heuristic struct{}

// Name identifies the heuristic in model_version tags.
func (Heuristic) Name() string { return "heuristic_v1" }

// Predict applies the rule-based formula. Pure function of the vector;
// never fails.
func (Heuristic) Predict(vec features.Vector) (float64, error) {
	score := vec.SentimentAbs * polarityWeight

	impactRatio := vec.ImpactScore / 10
	if impactRatio > 1 {
		impactRatio = 1
	}
	score += impactRatio * impactScoreWeight

	if vec.HasCrisisKeyword > 0 {
		score += crisisBonus
	}
	if vec.HasPolicyKeyword > 0 {
		score += policyBonus
	}
	// Market (2) e Macro (3) concentram impacto sistêmico.
	if vec.SectorEncoded == 2 || vec.SectorEncoded == 3 {
		score += macroSectorBonus
	}
	if vec.UrgencyEncoded >= 2 {
		score += urgencyBonus
	}

	return Round3(clamp01(score)), nil
}

// Confidence discretizes a probability into low/medium/high.
func Confidence(probability float64) string {
	switch {
	case probability >= highConfidenceThreshold:
		return "high"
	case probability >= mediumConfidenceThreshold:
		return "medium"
	default:
		return "low"
	}
}

// ImpactCategory derives the prediction's category label.
func ImpactCategory(vec features.Vector, sector string) string {
	if vec.HasPolicyKeyword > 0 {
		return "Policy Impact"
	}
	switch sector {
	case "Macro", "Commodities", "Market":
		return "Macroeconomic Impact"
	}
	return "Sector Impact"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampDelta(delta float64) float64 {
	if delta > maxReasoningDelta {
		return maxReasoningDelta
	}
	if delta < -maxReasoningDelta {
		return -maxReasoningDelta
	}
	return delta
}

// Round3 rounds to 3 decimal places with fixed-precision arithmetic.
func Round3(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(3).Float64()
	return f
}
