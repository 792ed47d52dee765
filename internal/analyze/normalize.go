package analyze

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Feed timestamps arrive in the permissive RFC-2822/HTTP-date grammar;
// layouts are tried in order until one parses.
var timestampLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CleanText strips all markup, collapses whitespace runs, and truncates
// to maxLength characters when positive, appending an ellipsis marker.
// Never fails; unparseable markup degrades to the raw text.
func CleanText(raw string, maxLength int) string {
	if raw == "" {
		return ""
	}

	text := raw
	if strings.ContainsRune(raw, '<') {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
			text = doc.Text()
		}
	}

	clean := strings.Join(strings.Fields(text), " ")
	if maxLength <= 0 {
		return clean
	}

	runes := []rune(clean)
	if len(runes) <= maxLength {
		return clean
	}
	truncated := strings.TrimRight(string(runes[:maxLength-3]), " ")
	return truncated + "..."
}

// NormalizeTimestamp converts a feed timestamp to UTC ISO-8601 with a Z
// suffix. Malformed or absent values yield the current UTC instant; this
// function never fails.
func NormalizeTimestamp(value string, now func() time.Time) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return formatUTC(now())
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return formatUTC(parsed)
		}
	}
	return formatUTC(now())
}

func formatUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
