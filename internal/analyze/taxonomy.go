package analyze

// SectorRule binds a sector name to its indicator terms. Order matters:
// the first sector with a match wins.
type SectorRule struct {
	Name  string
	Terms []string
}

// CountryRule binds indicator terms (currencies, central banks, heads of
// state, indexes, country names) to an ISO-style country code.
type CountryRule struct {
	Code  string
	Terms []string
}

// Taxonomy aggregates every lexical table the analyzer consumes. Tables
// are injected at construction so tests can swap in alternates; nothing
// here is mutated after NewAnalyzer.
type Taxonomy struct {
	// Weights maps financial/crisis terms (PT/EN) to integer scores.
	Weights map[string]int
	// UrgencyTerms force the urgent tier when present in text.
	UrgencyTerms []string
	// Stopwords are skipped during keyword extraction.
	Stopwords map[string]struct{}
	// Blocklist rejects off-topic items before any scoring.
	Blocklist []string

	// Sectors is evaluated in order; Macro is the catch-all default.
	Sectors       []SectorRule
	SocialDomains []string
	SubSectors    []SectorRule

	// Countries is evaluated in order; "international" is the default.
	Countries       []CountryRule
	CountryTLDs     map[string]string
	DomesticDomains map[string]string

	// Brazilian sub-national locators.
	RegionPatterns []string
	CityRegions    map[string]string
	StateRegions   map[string]string

	OrgMarkers    []string
	LocationTerms []string

	PositiveTerms []string
	NegativeTerms []string
}

// DefaultTaxonomy returns the production keyword tables.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Weights: map[string]int{
			"crise":     4,
			"crisis":    4,
			"guerra":    5,
			"war":       5,
			"sanction":  4,
			"sanções":   4,
			"default":   5,
			"calote":    5,
			"recessão":  4,
			"inflacao":  3,
			"inflação":  3,
			"juros":     3,
			"tarifa":    2,
			"regulacao": 2,
			"regulação": 2,
			"ata":       2,
			"copom":     3,
			"fed":       3,
			"selic":     3,
			"ibovespa":  2,
			"dolar":     2,
			"dólar":     2,
			"petroleo":  2,
			"petróleo":  2,
		},
		UrgencyTerms: []string{"urgent", "breaking", "immediate", "urgente", "agora", "hoje"},
		Stopwords: toSet([]string{
			"ao", "aos", "as", "com", "como", "contra", "da", "das", "de", "do",
			"dos", "em", "entre", "mais", "na", "nas", "no", "nos", "os", "para",
			"pela", "pelo", "por", "que", "sem", "ser", "seu", "seus", "sobre",
			"sua", "suas", "tem", "uma", "the", "and", "for", "with", "from",
			"after", "over", "his", "her", "its", "are", "was", "has", "have",
		}),
		Blocklist: []string{
			"futebol", "gol", "campeonato", "flamengo", "corinthians", "palmeiras",
			"neymar", "libertadores", "brasileirão", "brasileirao", "copa",
			"celebridade", "famosos", "bbb", "novela", "reality", "fofoca",
			"show", "cantora", "cantor", "celebrity", "gossip",
		},
		Sectors: []SectorRule{
			{Name: "Crypto", Terms: []string{
				"bitcoin", "btc", "ethereum", "eth", "cripto", "crypto",
				"blockchain", "binance", "stablecoin", "altcoin", "token",
			}},
			{Name: "Tech", Terms: []string{
				"tecnologia", "software", "chip", "semicondutor", "semiconductor",
				"inteligência artificial", "inteligencia artificial", "startup",
				"cybersecurity", "hacker", "nvidia", "apple", "google", "microsoft",
			}},
			{Name: "Commodities", Terms: []string{
				"petróleo", "petroleo", "oil", "minério", "minerio", "soja",
				"milho", "café", "cafe", "ouro", "gold", "commodity", "commodities",
				"gás natural", "gas natural", "opep", "opec",
			}},
			{Name: "Market", Terms: []string{
				"ibovespa", "b3", "bolsa", "ações", "acoes", "stocks", "nasdaq",
				"dow jones", "s&p", "wall street", "dividendos", "etf", "ipo",
			}},
			{Name: "Social", Terms: []string{
				"reddit", "twitter", "viral", "influencer", "trending",
			}},
			{Name: "Macro", Terms: []string{
				"juros", "selic", "copom", "fed", "inflação", "inflacao", "pib",
				"gdp", "câmbio", "cambio", "dólar", "dolar", "fiscal",
				"banco central", "recessão", "recessao", "tarifa", "tariff",
			}},
		},
		SocialDomains: []string{"reddit.com", "twitter.com", "x.com", "nitter."},
		SubSectors: []SectorRule{
			{Name: "Monetary Policy", Terms: []string{"juros", "selic", "copom", "fed", "taxa básica", "rates", "hike", "monetária", "monetaria"}},
			{Name: "Geopolitics", Terms: []string{"guerra", "war", "sanção", "sancao", "sanction", "conflito", "geopolít", "geopolit"}},
			{Name: "Fiscal Policy", Terms: []string{"fiscal", "orçamento", "orcamento", "tributária", "tributaria", "imposto", "arcabouço", "arcabouco"}},
			{Name: "Economic Data", Terms: []string{"pib", "gdp", "ipca", "inflação", "inflacao", "desemprego", "unemployment", "payroll"}},
			{Name: "DeFi", Terms: []string{"defi", "stablecoin", "liquidez on-chain"}},
			{Name: "Regulation", Terms: []string{"regulação", "regulacao", "regulation", "cvm", "sec"}},
			{Name: "Mining", Terms: []string{"mineração", "mineracao", "mining", "minério", "minerio"}},
			{Name: "AI", Terms: []string{"inteligência artificial", "inteligencia artificial", "llm", "openai"}},
			{Name: "Semiconductors", Terms: []string{"chip", "semicondutor", "semiconductor", "tsmc"}},
			{Name: "Cybersecurity", Terms: []string{"hacker", "ransomware", "vazamento de dados", "cybersecurity"}},
		},
		Countries: []CountryRule{
			{Code: "BR", Terms: []string{
				"brasil", "brazil", "selic", "copom", "banco central do brasil",
				"bacen", "ibovespa", "b3", "lula", "haddad", "galípolo", "galipolo",
				"real brasileiro", "brasília", "brasilia",
			}},
			{Code: "US", Terms: []string{
				"estados unidos", "united states", "eua", "federal reserve", "fed",
				"powell", "yellen", "wall street", "nasdaq", "dow jones", "s&p 500",
				"white house", "casa branca", "trump", "biden",
			}},
			{Code: "EU", Terms: []string{
				"zona do euro", "eurozone", "bce", "ecb", "lagarde", "euro",
				"união europeia", "uniao europeia", "european union",
			}},
			{Code: "UK", Terms: []string{
				"reino unido", "united kingdom", "bank of england", "libra esterlina", "ftse",
			}},
			{Code: "CN", Terms: []string{
				"china", "yuan", "pboc", "xi jinping", "xangai", "shanghai",
			}},
			{Code: "JP", Terms: []string{
				"japão", "japao", "japan", "iene", "yen", "boj", "nikkei",
			}},
			{Code: "AR", Terms: []string{
				"argentina", "peso argentino", "milei", "buenos aires",
			}},
		},
		CountryTLDs: map[string]string{
			".br": "BR", ".uk": "UK", ".cn": "CN", ".jp": "JP", ".ar": "AR",
		},
		DomesticDomains: map[string]string{
			"globo.com":  "BR",
			"infomoney":  "BR",
			"valor":      "BR",
			"estadao":    "BR",
			"folha":      "BR",
			"reuters":    "international",
			"bloomberg":  "US",
			"cnbc.com":   "US",
			"ft.com":     "UK",
			"nikkei.com": "JP",
		},
		RegionPatterns: []string{
			`governo d[eoa]s? ([\p{L}]+(?:\s+[\p{L}]+){0,3})`,
			`assembleia legislativa d[eoa]s? ([\p{L}]+(?:\s+[\p{L}]+){0,3})`,
			`prefeitura d[ea] ([\p{L}]+(?:\s+[\p{L}]+){0,2})`,
			`tribunal de justiça d[eoa]s? ([\p{L}]+(?:\s+[\p{L}]+){0,3})`,
			`operação em ([\p{L}]+(?:\s+[\p{L}]+){0,2})`,
			`estado d[eoa]s? ([\p{L}]+(?:\s+[\p{L}]+){0,3})`,
			`cidade de ([\p{L}]+(?:\s+[\p{L}]+){0,2})`,
			`município de ([\p{L}]+(?:\s+[\p{L}]+){0,2})`,
			`em ([\p{L}]+(?:\s+[\p{L}]+){0,2}), ([a-z]{2})\b`,
		},
		CityRegions: map[string]string{
			"rio branco": "AC", "maceió": "AL", "maceio": "AL", "macapá": "AP",
			"macapa": "AP", "manaus": "AM", "salvador": "BA", "fortaleza": "CE",
			"brasília": "DF", "brasilia": "DF", "vitória": "ES", "vitoria": "ES",
			"goiânia": "GO", "goiania": "GO", "são luís": "MA", "sao luis": "MA",
			"cuiabá": "MT", "cuiaba": "MT", "campo grande": "MS", "belém": "PA",
			"belem": "PA", "joão pessoa": "PB", "joao pessoa": "PB", "recife": "PE",
			"teresina": "PI", "rio de janeiro": "RJ", "natal": "RN",
			"porto alegre": "RS", "porto velho": "RO", "boa vista": "RR",
			"florianópolis": "SC", "florianopolis": "SC", "são paulo": "SP",
			"sao paulo": "SP", "aracaju": "SE", "palmas": "TO",
			"campinas": "SP", "santos": "SP", "guarulhos": "SP", "osasco": "SP",
			"sorocaba": "SP", "ribeirão preto": "SP", "ribeirao preto": "SP",
			"são josé dos campos": "SP", "sao jose dos campos": "SP",
			"belo horizonte": "MG", "uberlândia": "MG", "uberlandia": "MG",
			"juiz de fora": "MG", "contagem": "MG",
			"curitiba": "PR", "londrina": "PR", "maringá": "PR", "maringa": "PR",
			"foz do iguaçu": "PR", "foz do iguacu": "PR",
			"caxias do sul": "RS", "pelotas": "RS", "canoas": "RS",
			"niterói": "RJ", "niteroi": "RJ", "duque de caxias": "RJ",
			"joinville": "SC", "blumenau": "SC", "itajaí": "SC", "itajai": "SC",
			"feira de santana": "BA", "olinda": "PE", "porto digital": "PE",
			"sobral": "CE", "santarém": "PA", "santarem": "PA",
			"anápolis": "GO", "anapolis": "GO",
		},
		StateRegions: map[string]string{
			"são paulo": "SP", "sao paulo": "SP",
			"rio de janeiro": "RJ", "rio janeiro": "RJ",
			"minas gerais": "MG", "belo horizonte": "MG",
			"brasília": "DF", "brasilia": "DF", "distrito federal": "DF",
			"bahia": "BA", "pernambuco": "PE",
			"rio grande do sul": "RS", "santa catarina": "SC",
			"paraná": "PR", "parana": "PR", "ceará": "CE", "ceara": "CE",
			"pará": "PA", "maranhão": "MA", "maranhao": "MA",
			"goiás": "GO", "goias": "GO",
			"espírito santo": "ES", "espirito santo": "ES",
			"mato grosso": "MT", "mato grosso do sul": "MS",
			"tocantins": "TO", "rondônia": "RO", "rondonia": "RO",
			"roraima": "RR", "amapá": "AP", "amapa": "AP", "amazonas": "AM",
			"alagoas": "AL", "sergipe": "SE",
			"paraíba": "PB", "paraiba": "PB",
			"rio grande do norte": "RN", "piauí": "PI", "piaui": "PI",
		},
		OrgMarkers: []string{"S.A", "SA", "Ltda", "LTDA", "Corp", "Bank", "Banco"},
		LocationTerms: []string{
			"Brasil", "São Paulo", "Rio de Janeiro", "Brasília", "Minas Gerais",
			"Bahia", "Paraná", "Pernambuco", "Ceará", "Rio Grande do Sul",
		},
		PositiveTerms: []string{
			"lucro", "lucros", "crescimento", "ganho", "ganhos", "otimismo",
			"recorde", "avanço", "avanco", "valorização", "valorizacao",
			"recuperação", "recuperacao", "superávit", "superavit", "expansão",
			"expansao", "growth", "profit", "gains", "rally", "surge",
			"optimism", "record", "rebound",
		},
		NegativeTerms: []string{
			"crise", "perda", "perdas", "prejuízo", "prejuizo", "colapso",
			"desvalorização", "desvalorizacao", "recessão", "recessao", "guerra",
			"calote", "pânico", "panico", "falência", "falencia", "déficit",
			"deficit", "crash", "losses", "fear", "war", "slump", "decline",
			"selloff", "turmoil", "downturn",
		},
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
