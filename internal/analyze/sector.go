package analyze

import "strings"

const (
	defaultSector    = "Macro"
	socialSector     = "Social"
	defaultSubSector = "General"
)

// Sector evaluates the ordered sector taxonomy and returns the first
// sector with a matching term. A social-media source forces Social
// regardless of text; Macro is the catch-all macroeconomic bucket.
func (a *Analyzer) Sector(text, sourceURL, link string) string {
	if a.isSocialSource(sourceURL, link) {
		return socialSector
	}
	for _, rule := range a.tax.Sectors {
		for _, term := range rule.Terms {
			if matchTerm(text, term) {
				return rule.Name
			}
		}
	}
	return defaultSector
}

// SubSector returns the first matching sub-sector or "General".
func (a *Analyzer) SubSector(text string) string {
	for _, rule := range a.tax.SubSectors {
		for _, term := range rule.Terms {
			if matchTerm(text, term) {
				return rule.Name
			}
		}
	}
	return defaultSubSector
}

func (a *Analyzer) isSocialSource(sourceURL, link string) bool {
	sourceURL = strings.ToLower(sourceURL)
	link = strings.ToLower(link)
	for _, domain := range a.tax.SocialDomains {
		if strings.Contains(sourceURL, domain) || strings.Contains(link, domain) {
			return true
		}
	}
	return false
}
