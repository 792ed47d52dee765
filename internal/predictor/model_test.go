package predictor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"sentinelwatch/internal/features"
)

func writeArtifact(t *testing.T, artifact Model) string {
	t.Helper()
	payload, err := json.Marshal(artifact)
	if err != nil {
		t.Fatalf("marshal do artefato falhou: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("escrita do artefato falhou: %v", err)
	}
	return path
}

func TestTryLoadValidArtifact(t *testing.T) {
	path := writeArtifact(t, Model{
		Version:      "logreg_v2",
		FeatureNames: features.Names(),
		Weights:      make([]float64, len(features.Names())),
		Intercept:    0,
	})

	model, err := TryLoad(path)
	if err != nil {
		t.Fatalf("artefato válido não deveria falhar: %v", err)
	}
	if model.Name() != "logreg_v2" {
		t.Fatalf("versão esperada logreg_v2, obtida %q", model.Name())
	}

	probability, err := model.Predict(features.Vector{ImpactScore: 8})
	if err != nil {
		t.Fatalf("predict falhou: %v", err)
	}
	// Pesos nulos e intercepto zero: sigmoide(0) = 0.5.
	if probability != 0.5 {
		t.Fatalf("probabilidade esperada 0.5, obtida %v", probability)
	}
}

func TestTryLoadRejectsFeatureOrderMismatch(t *testing.T) {
	names := features.Names()
	swapped := append([]string{}, names...)
	swapped[0], swapped[1] = swapped[1], swapped[0]

	path := writeArtifact(t, Model{
		Version:      "logreg_v2",
		FeatureNames: swapped,
		Weights:      make([]float64, len(names)),
	})

	if _, err := TryLoad(path); err == nil {
		t.Fatal("ordem de features divergente deveria invalidar o artefato")
	}
}

func TestTryLoadRejectsMissingVersion(t *testing.T) {
	path := writeArtifact(t, Model{
		FeatureNames: features.Names(),
		Weights:      make([]float64, len(features.Names())),
	})
	if _, err := TryLoad(path); err == nil {
		t.Fatal("artefato sem versão deveria ser rejeitado")
	}
}

func TestTryLoadRejectsWeightCountMismatch(t *testing.T) {
	path := writeArtifact(t, Model{
		Version:      "logreg_v2",
		FeatureNames: features.Names(),
		Weights:      []float64{0.1, 0.2},
	})
	if _, err := TryLoad(path); err == nil {
		t.Fatal("contagem de pesos divergente deveria ser rejeitada")
	}
}

func TestTryLoadMissingFile(t *testing.T) {
	if _, err := TryLoad(filepath.Join(t.TempDir(), "nao-existe.json")); err == nil {
		t.Fatal("arquivo inexistente deveria retornar erro")
	}
	if _, err := TryLoad(""); err == nil {
		t.Fatal("caminho vazio deveria retornar erro")
	}
}

func TestTryLoadRejectsCorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("escrita falhou: %v", err)
	}
	if _, err := TryLoad(path); err == nil {
		t.Fatal("JSON corrompido deveria retornar erro")
	}
}

func TestParseReasonerReplyToleratesFences(t *testing.T) {
	raw := "```json\n{\"reasoning\": \"alta de juros pressiona bolsa\", \"confidence_adjustment\": 0.1}\n```"
	reply, err := parseReasonerReply(raw)
	if err != nil {
		t.Fatalf("resposta cercada deveria ser aceita: %v", err)
	}
	if reply.Reasoning != "alta de juros pressiona bolsa" || reply.ConfidenceAdjustment != 0.1 {
		t.Fatalf("resposta mal decodificada: %+v", reply)
	}
}

func TestParseReasonerReplyRejectsGarbage(t *testing.T) {
	if _, err := parseReasonerReply("sem json aqui"); err == nil {
		t.Fatal("resposta sem JSON deveria falhar")
	}
}
