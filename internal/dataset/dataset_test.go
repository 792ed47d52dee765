package dataset

import (
	"reflect"
	"strings"
	"testing"

	"sentinelwatch/internal/event"
	"sentinelwatch/internal/features"
)

func baseEvent(id, title string, score int) event.EnrichedEvent {
	return event.EnrichedEvent{
		ID:        id,
		Title:     title,
		Impact:    event.ImpactMedium,
		Urgency:   event.UrgencyNormal,
		Sector:    "Macro",
		SubSector: "General",
		Analytics: event.Analytics{Score: score},
	}
}

func labelOf(t *testing.T, rows []Row, id string) int {
	t.Helper()
	for _, row := range rows {
		if row.EventID == id {
			return row.Label
		}
	}
	t.Fatalf("evento %q não encontrado nas linhas", id)
	return -1
}

func TestBuildLabelsHighScoreWithCrisis(t *testing.T) {
	ev := baseEvent("evt-1", "Guerra eleva tensão nos mercados", 8)
	rows := Build([]event.EnrichedEvent{ev})
	if labelOf(t, rows, "evt-1") != 1 {
		t.Fatal("score 8 com vocabulário de crise deveria rotular 1")
	}
}

func TestBuildLabelsDuplicateStories(t *testing.T) {
	events := []event.EnrichedEvent{
		baseEvent("evt-1", "Balanço trimestral da companhia aérea", 2),
		baseEvent("evt-2", "Balanço trimestral da companhia aérea", 2),
		baseEvent("evt-3", "Balanço trimestral da companhia aérea", 2),
	}
	rows := Build(events)
	for _, id := range []string{"evt-1", "evt-2", "evt-3"} {
		if labelOf(t, rows, id) != 1 {
			t.Fatalf("três duplicatas deveriam rotular %q como 1", id)
		}
	}
}

func TestBuildTwoDuplicatesAreNotEnough(t *testing.T) {
	events := []event.EnrichedEvent{
		baseEvent("evt-1", "Resultado semestral ordinário", 2),
		baseEvent("evt-2", "Resultado semestral ordinário", 2),
	}
	rows := Build(events)
	if labelOf(t, rows, "evt-1") != 0 {
		t.Fatal("duas duplicatas não atingem o limiar de repercussão")
	}
}

func TestBuildLabelsCriticalUrgency(t *testing.T) {
	ev := baseEvent("evt-1", "Comunicado extraordinário do regulador", 2)
	ev.Urgency = "critical"
	rows := Build([]event.EnrichedEvent{ev})
	if labelOf(t, rows, "evt-1") != 1 {
		t.Fatal("urgência critical deveria rotular 1")
	}
}

func TestBuildLabelsHighImpactWithScore(t *testing.T) {
	ev := baseEvent("evt-1", "Pacote bilionário aprovado no exterior", 6)
	ev.Impact = event.ImpactHigh
	rows := Build([]event.EnrichedEvent{ev})
	if labelOf(t, rows, "evt-1") != 1 {
		t.Fatal("impacto high com score 6 deveria rotular 1")
	}
}

func TestBuildLabelsLowScoreNegative(t *testing.T) {
	ev := baseEvent("evt-1", "Feira de tecnologia abre inscrições", 2)
	rows := Build([]event.EnrichedEvent{ev})
	if labelOf(t, rows, "evt-1") != 0 {
		t.Fatal("score baixo sem flags deveria rotular 0")
	}
}

func TestBuildLabelsScoreSixFallback(t *testing.T) {
	ev := baseEvent("evt-1", "Mercado reprecifica ativos domésticos", 6)
	rows := Build([]event.EnrichedEvent{ev})
	if labelOf(t, rows, "evt-1") != 1 {
		t.Fatal("sem regra anterior, score 6 deveria rotular 1")
	}
}

func TestTitleKeyNormalizesAndTruncates(t *testing.T) {
	long := strings.Repeat("á", 80)
	if titleKey("  "+long+" ") != strings.Repeat("á", 60) {
		t.Fatal("chave deveria truncar em 60 runas")
	}
	if titleKey("Selic Sobe") != "selic sobe" {
		t.Fatal("chave deveria ser minúscula")
	}
}

func TestHeaderAndRecordAligned(t *testing.T) {
	header := Header()
	want := len(features.Names()) + 3
	if len(header) != want {
		t.Fatalf("cabeçalho deveria ter %d colunas, obtidas %d", want, len(header))
	}
	if header[len(header)-3] != "label" || header[len(header)-1] != "title" {
		t.Fatalf("colunas finais inesperadas: %v", header[len(header)-3:])
	}

	rows := Build([]event.EnrichedEvent{baseEvent("evt-1", "Copom eleva a Selic", 6)})
	record := rows[0].Record()
	if len(record) != len(header) {
		t.Fatalf("registro deveria acompanhar o cabeçalho: %d vs %d", len(record), len(header))
	}
	if record[len(record)-2] != "evt-1" {
		t.Fatalf("event_id esperado na penúltima coluna, obtido %q", record[len(record)-2])
	}
}

func TestSummarizeCountsLabels(t *testing.T) {
	rows := Build([]event.EnrichedEvent{
		baseEvent("evt-1", "Guerra eleva tensão nos mercados", 8),
		baseEvent("evt-2", "Feira de tecnologia abre inscrições", 2),
	})
	summary := Summarize(rows)
	if summary.Total != 2 || summary.Positive != 1 || summary.Negative != 1 {
		t.Fatalf("resumo inesperado: %+v", summary)
	}
}

func TestSortByScoreDescending(t *testing.T) {
	rows := Build([]event.EnrichedEvent{
		baseEvent("evt-a", "Feira de tecnologia abre inscrições", 2),
		baseEvent("evt-b", "Guerra eleva tensão nos mercados", 8),
	})
	sorted := SortByScore(rows)
	got := []string{sorted[0].EventID, sorted[1].EventID}
	if !reflect.DeepEqual(got, []string{"evt-b", "evt-a"}) {
		t.Fatalf("ordenação por score esperada [evt-b evt-a], obtida %v", got)
	}
}
