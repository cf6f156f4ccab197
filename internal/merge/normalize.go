package merge

import (
	"regexp"
	"strings"

	"github.com/propscan/ddrgen/internal/model"
)

// AreaKeyNotAvailable is the reserved grouping key that empty, whitespace-only
// and "Not Available" area labels collapse to.
const AreaKeyNotAvailable = "not_available"

var (
	ctrlRe  = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
	wsRe    = regexp.MustCompile(`\s+`)
	punctRe = regexp.MustCompile(`[^\w\s]`)
)

// NormalizeArea canonicalizes a free-text area label into a stable grouping
// key: control characters stripped, whitespace collapsed, case-folded.
// Empty and "not available" input (any casing) map to AreaKeyNotAvailable.
// Total function, never fails.
func NormalizeArea(raw string) string {
	area := strings.TrimSpace(raw)
	if area == "" || strings.EqualFold(area, model.NotAvailable) {
		return AreaKeyNotAvailable
	}
	area = ctrlRe.ReplaceAllString(area, " ")
	area = wsRe.ReplaceAllString(area, " ")
	return strings.ToLower(area)
}

// displayArea returns the label stored on an area group: trimmed original
// casing, with empty and "not available" collapsed to the canonical sentinel.
func displayArea(raw string) string {
	display := strings.TrimSpace(raw)
	if display == "" || strings.EqualFold(display, model.NotAvailable) {
		return model.NotAvailable
	}
	return display
}

// normalizeForMatch prepares a statement for similarity comparison:
// control characters stripped, case-folded, punctuation stripped, whitespace
// collapsed. Empty and sentinel input normalize to the empty string.
func normalizeForMatch(text string) string {
	t := strings.TrimSpace(text)
	if t == "" || strings.EqualFold(t, model.NotAvailable) {
		return ""
	}
	t = ctrlRe.ReplaceAllString(t, " ")
	t = strings.ToLower(t)
	t = punctRe.ReplaceAllString(t, " ")
	t = wsRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
