package analyze

import "strings"

const defaultCountry = "international"

// Country infers a country code from the ordered indicator tables
// (currencies, central banks, heads of state, indexes, country names) and
// from the source URL's ccTLD or known publisher domains. Defaults to
// "international" when nothing matches.
func (a *Analyzer) Country(text, sourceURL, link string) string {
	for _, rule := range a.tax.Countries {
		for _, term := range rule.Terms {
			if matchTerm(text, term) {
				return rule.Code
			}
		}
	}

	for _, u := range []string{strings.ToLower(sourceURL), strings.ToLower(link)} {
		if u == "" {
			continue
		}
		host := hostOf(u)
		for domain, code := range a.tax.DomesticDomains {
			if strings.Contains(host, domain) {
				return code
			}
		}
		for tld, code := range a.tax.CountryTLDs {
			if strings.HasSuffix(host, tld) {
				return code
			}
		}
	}

	return defaultCountry
}

// Region resolves the sub-national locator. Contextual patterns run
// first ("governo de X", "cidade de X", "em X, uf"), then the city and
// state tables sorted by descending length so "rio grande do sul" wins
// over any shorter substring. Bare two-letter codes only participate via
// the contextual patterns; they are everyday words in running text.
func (a *Analyzer) Region(text, country string) string {
	if uf := a.regionFromPatterns(text); uf != "" {
		return uf
	}

	for _, city := range a.sortedCities {
		if matchTerm(text, city) {
			return a.tax.CityRegions[city]
		}
	}
	for _, state := range a.sortedStates {
		if matchTerm(text, state) {
			return a.tax.StateRegions[state]
		}
	}

	if country == "BR" {
		return "BR"
	}
	return country
}

func (a *Analyzer) regionFromPatterns(text string) string {
	for _, re := range a.regionPatterns {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if len(match) < 2 {
				continue
			}
			place := strings.ToLower(strings.TrimSpace(match[1]))
			if uf, ok := a.tax.CityRegions[place]; ok {
				return uf
			}
			if uf, ok := a.tax.StateRegions[place]; ok {
				return uf
			}
			// "em CidadeX, SP" carries the code in the second group.
			if len(match) > 2 {
				code := strings.ToLower(strings.TrimSpace(match[2]))
				if _, ok := a.ufCodes[code]; ok {
					return strings.ToUpper(code)
				}
			}
		}
	}
	return ""
}

func hostOf(u string) string {
	host := u
	if idx := strings.Index(host, "://"); idx >= 0 {
		host = host[idx+3:]
	}
	if idx := strings.IndexAny(host, "/?#"); idx >= 0 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	return host
}
