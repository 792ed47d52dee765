// Package dataset turns stored enriched events into a labeled training
// set for the impact classifier. Labels are assigned by deterministic
// rules over the same canonical feature function the online pipeline
// uses, so a model trained on the export scores identically in
// production.
package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sentinelwatch/internal/event"
	"sentinelwatch/internal/features"
)

// duplicateThreshold marks a story as high-impact when enough distinct
// items share the same title key: wide pickup is the strongest signal we
// have without outcome data.
const duplicateThreshold = 3

// titleKeyLength bounds the dedup key so minor headline suffixes still
// collapse onto the same story.
const titleKeyLength = 60

// Row is one labeled example: the canonical feature vector plus the
// auto-assigned label and enough identity to audit it.
type Row struct {
	EventID string
	Title   string
	Vector  features.Vector
	Label   int
}

// Build derives labeled rows from stored events. Order follows the
// input; the caller is expected to pass events in timestamp order.
func Build(events []event.EnrichedEvent) []Row {
	duplicates := countTitleKeys(events)

	rows := make([]Row, 0, len(events))
	for _, ev := range events {
		vec := features.Extract(ev)
		rows = append(rows, Row{
			EventID: ev.ID,
			Title:   ev.Title,
			Vector:  vec,
			Label:   autoLabel(ev, vec, duplicates[titleKey(ev.Title)]),
		})
	}
	return rows
}

// autoLabel applies the labeling rules in priority order. Positive
// signals win over negative ones; the score threshold is the tiebreak.
func autoLabel(ev event.EnrichedEvent, vec features.Vector, duplicates int) int {
	score := ev.Analytics.Score
	crisis := vec.HasCrisisKeyword > 0
	policy := vec.HasPolicyKeyword > 0

	switch {
	case duplicates >= duplicateThreshold:
		return 1
	case score >= 7 && crisis:
		return 1
	case ev.Urgency == "critical":
		return 1
	case ev.Impact == event.ImpactHigh && score >= 6:
		return 1
	case score >= 8 && policy:
		return 1
	case score <= 3 && !crisis && !policy:
		return 0
	case ev.Impact == event.ImpactLow && urgencyAtMostNormal(ev.Urgency) && score <= 4:
		return 0
	case score >= 6:
		return 1
	default:
		return 0
	}
}

func urgencyAtMostNormal(urgency string) bool {
	return urgency == event.UrgencyNormal || urgency == "low" || urgency == ""
}

// titleKey normalizes a title into the dedup key. Rune-safe so accented
// headlines do not split mid-character.
func titleKey(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	runes := []rune(key)
	if len(runes) > titleKeyLength {
		key = string(runes[:titleKeyLength])
	}
	return key
}

func countTitleKeys(events []event.EnrichedEvent) map[string]int {
	counts := make(map[string]int, len(events))
	for _, ev := range events {
		counts[titleKey(ev.Title)]++
	}
	return counts
}

// Header returns the CSV column order: canonical feature names, then
// label and identity columns.
func Header() []string {
	header := append([]string{}, features.Names()...)
	return append(header, "label", "event_id", "title")
}

// Record renders one row in Header order.
func (r Row) Record() []string {
	values := r.Vector.Values()
	record := make([]string, 0, len(values)+3)
	for _, v := range values {
		record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return append(record, strconv.Itoa(r.Label), r.EventID, r.Title)
}

// Summary aggregates label balance for logging and the gate check.
type Summary struct {
	Total    int
	Positive int
	Negative int
}

// Summarize tallies the label distribution.
func Summarize(rows []Row) Summary {
	s := Summary{Total: len(rows)}
	for _, row := range rows {
		if row.Label == 1 {
			s.Positive++
		} else {
			s.Negative++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d exemplos (%d positivos, %d negativos)", s.Total, s.Positive, s.Negative)
}

// SortByScore orders rows by impact score descending, then by event id
// for stability; used by the chart so the ranking reads left to right.
func SortByScore(rows []Row) []Row {
	sorted := append([]Row{}, rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Vector.ImpactScore != sorted[j].Vector.ImpactScore {
			return sorted[i].Vector.ImpactScore > sorted[j].Vector.ImpactScore
		}
		return sorted[i].EventID < sorted[j].EventID
	})
	return sorted
}
