package analyze

import (
	"sort"
	"strings"

	"sentinelwatch/internal/event"
)

const maxEntitiesPerKind = 5

// Entities finds capitalized multi-word sequences and buckets them with
// simple heuristics: a legal-entity marker means organization, a known
// place name means location, and any remaining sequence of two or more
// capitalized words is treated as a person. Each bucket is capped at
// five results, sorted alphabetically.
func (a *Analyzer) Entities(text string) event.Entities {
	if text == "" {
		return event.Entities{People: []string{}, Orgs: []string{}, Locations: []string{}}
	}

	people := make(map[string]struct{})
	orgs := make(map[string]struct{})
	locations := make(map[string]struct{})

	lower := strings.ToLower(text)
	for _, term := range a.tax.LocationTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			locations[term] = struct{}{}
		}
	}

	for _, candidate := range a.entityPattern.FindAllString(text, -1) {
		switch {
		case a.hasOrgMarker(candidate):
			orgs[candidate] = struct{}{}
		case a.isKnownLocation(candidate):
			locations[candidate] = struct{}{}
		case len(strings.Fields(candidate)) >= 2:
			people[candidate] = struct{}{}
		}
	}

	return event.Entities{
		People:    sortedCapped(people),
		Orgs:      sortedCapped(orgs),
		Locations: sortedCapped(locations),
	}
}

func (a *Analyzer) hasOrgMarker(candidate string) bool {
	for _, marker := range a.tax.OrgMarkers {
		if strings.Contains(candidate, marker) {
			return true
		}
	}
	return false
}

func (a *Analyzer) isKnownLocation(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, term := range a.tax.LocationTerms {
		if lower == strings.ToLower(term) {
			return true
		}
	}
	return false
}

func sortedCapped(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	if len(values) > maxEntitiesPerKind {
		values = values[:maxEntitiesPerKind]
	}
	return values
}
