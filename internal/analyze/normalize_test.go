package analyze

import (
	"strings"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}
}

func TestCleanTextStripsMarkup(t *testing.T) {
	got := CleanText("<p>Olá <b>mundo</b></p>", 0)
	if got != "Olá mundo" {
		t.Fatalf("markup deveria ser removido, obtido %q", got)
	}
}

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	got := CleanText("  juros \n\t sobem   hoje ", 0)
	if got != "juros sobem hoje" {
		t.Fatalf("espaços deveriam colapsar, obtido %q", got)
	}
}

func TestCleanTextTruncatesRuneSafe(t *testing.T) {
	got := CleanText("inflação acelera no país", 10)
	if got != "inflaçã..." {
		t.Fatalf("truncamento esperado 'inflaçã...', obtido %q", got)
	}
	if strings.Contains(got, "�") {
		t.Fatal("truncamento não pode quebrar um caractere multibyte")
	}
}

func TestCleanTextShortInputUnchanged(t *testing.T) {
	if got := CleanText("selic", 140); got != "selic" {
		t.Fatalf("texto curto não deveria mudar, obtido %q", got)
	}
}

func TestNormalizeTimestampRFC1123Z(t *testing.T) {
	got := NormalizeTimestamp("Mon, 02 Jan 2006 22:04:05 +0000", fixedClock())
	if got != "2006-01-02T22:04:05Z" {
		t.Fatalf("timestamp RFC1123Z mal convertido: %q", got)
	}
}

func TestNormalizeTimestampConvertsOffsetToUTC(t *testing.T) {
	got := NormalizeTimestamp("Mon, 02 Jan 2006 19:04:05 -0300", fixedClock())
	if got != "2006-01-02T22:04:05Z" {
		t.Fatalf("offset deveria ser convertido para UTC: %q", got)
	}
}

func TestNormalizeTimestampMalformedFallsBackToNow(t *testing.T) {
	got := NormalizeTimestamp("ontem de manhã", fixedClock())
	if got != "2024-01-02T03:04:05Z" {
		t.Fatalf("valor inválido deveria usar o relógio atual: %q", got)
	}
}

func TestNormalizeTimestampEmptyFallsBackToNow(t *testing.T) {
	got := NormalizeTimestamp("", fixedClock())
	if got != "2024-01-02T03:04:05Z" {
		t.Fatalf("valor vazio deveria usar o relógio atual: %q", got)
	}
}
