package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"sentinelwatch/internal/features"
)

// Model is a trained logistic-regression artifact exported by the
// training pipeline as JSON. The feature names must match the canonical
// order exactly; a model trained against a different ordering is invalid.
type Model struct {
	Version      string    `json:"model_version"`
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Intercept    float64   `json:"intercept"`
}

// TryLoad reads and validates a model artifact. Returns (nil, error) on
// any problem; the caller falls back to the heuristic. Loading has no
// other side effects.
func TryLoad(path string) (*Model, error) {
	if path == "" {
		return nil, errors.New("model path not configured")
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var model Model
	if err := json.Unmarshal(payload, &model); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if err := model.validate(); err != nil {
		return nil, err
	}
	return &model, nil
}

func (m *Model) validate() error {
	if m.Version == "" {
		return errors.New("model artifact missing model_version")
	}
	canonical := features.Names()
	if len(m.FeatureNames) != len(canonical) {
		return fmt.Errorf("model expects %d features, canonical order has %d", len(m.FeatureNames), len(canonical))
	}
	for i, name := range canonical {
		if m.FeatureNames[i] != name {
			return fmt.Errorf("feature order mismatch at %d: artifact %q, canonical %q", i, m.FeatureNames[i], name)
		}
	}
	if len(m.Weights) != len(canonical) {
		return fmt.Errorf("model has %d weights for %d features", len(m.Weights), len(canonical))
	}
	return nil
}

// Name returns the artifact's version tag.
func (m *Model) Name() string { return m.Version }

// Predict computes the high-impact class probability via the logistic
// function over the canonical feature values.
func (m *Model) Predict(vec features.Vector) (float64, error) {
	values := vec.Values()
	if len(values) != len(m.Weights) {
		return 0, fmt.Errorf("vector has %d values for %d weights", len(values), len(m.Weights))
	}

	z := m.Intercept
	for i, w := range m.Weights {
		z += w * values[i]
	}
	probability := 1 / (1 + math.Exp(-z))
	if math.IsNaN(probability) || math.IsInf(probability, 0) {
		return 0, errors.New("model produced a non-finite probability")
	}
	return probability, nil
}

var _ Strategy = (*Model)(nil)
