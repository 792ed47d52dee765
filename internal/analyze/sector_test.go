package analyze

import "testing"

func TestSectorOrderedRules(t *testing.T) {
	a := newTestAnalyzer(t)
	cases := []struct {
		text string
		want string
	}{
		{"bitcoin dispara após halving", "Crypto"},
		{"nvidia anuncia novo chip", "Tech"},
		{"opep corta produção de petróleo", "Commodities"},
		{"ibovespa fecha em queda", "Market"},
		{"copom eleva a selic", "Macro"},
		{"assunto genérico sem pistas", "Macro"},
	}
	for _, tc := range cases {
		if got := a.Sector(tc.text, "", ""); got != tc.want {
			t.Fatalf("%q: setor esperado %q, obtido %q", tc.text, tc.want, got)
		}
	}
}

func TestSectorSocialSourceOverrides(t *testing.T) {
	a := newTestAnalyzer(t)
	got := a.Sector("bitcoin dispara após halving", "https://www.reddit.com/r/investimentos", "")
	if got != "Social" {
		t.Fatalf("fonte social deveria vencer o texto, obtido %q", got)
	}
}

func TestSubSectorFirstMatch(t *testing.T) {
	a := newTestAnalyzer(t)
	if got := a.SubSector("copom discute juros e guerra fiscal"); got != "Monetary Policy" {
		t.Fatalf("primeira regra deveria vencer, obtido %q", got)
	}
	if got := a.SubSector("sem pistas de classificação"); got != "General" {
		t.Fatalf("padrão esperado General, obtido %q", got)
	}
}
