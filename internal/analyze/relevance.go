package analyze

import (
	"errors"
	"strings"
)

// ErrNotRelevant marks items rejected by the off-topic blocklist.
var ErrNotRelevant = errors.New("event not relevant")

// Relevant reports whether the normalized, lowercased text passes the
// off-topic blocklist. Short entries (≤5 chars) only match as standalone
// tokens to avoid false positives inside unrelated words; longer, more
// specific entries match anywhere.
func (a *Analyzer) Relevant(text string) bool {
	for _, term := range a.tax.Blocklist {
		if len(term) > 5 {
			if strings.Contains(text, term) {
				return false
			}
			continue
		}
		if containsToken(text, term) {
			return false
		}
	}
	return true
}
