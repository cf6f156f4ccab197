// Package preprocess turns raw Stage 1 page text into clean, compact input
// for fact extraction. Every transform is deterministic: no inference, no
// reordering beyond dropping noise lines.
package preprocess

import (
	"regexp"
	"strings"
)

var (
	ctrlRe = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)

	// Page footer patterns like "Page 3 of 12" or "3 / 12".
	pageNumberRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*page\s*\d+\s*(of\s*\d+)?\s*$`),
		regexp.MustCompile(`^\s*\d+\s*/\s*\d+\s*$`),
	}

	degCRe      = regexp.MustCompile(`(\d)\s*°\s*C\b`)
	degCWordRe  = regexp.MustCompile(`(?i)(\d)\s*deg\s*C\b`)
	percentRe   = regexp.MustCompile(`(\d)\s*%`)
	millimeterRe = regexp.MustCompile(`(?i)(\d)\s*mm\b`)
)

// NormalizeUnits normalizes unit spacing without converting any values.
func NormalizeUnits(text string) string {
	s := degCRe.ReplaceAllString(text, "$1 °C")
	s = degCWordRe.ReplaceAllString(s, "$1 °C")
	s = percentRe.ReplaceAllString(s, "$1 %")
	s = millimeterRe.ReplaceAllString(s, "$1 mm")
	return s
}

// CleanText strips control characters (keeping newlines and tabs for
// structure), trims trailing whitespace per line, and collapses runs of
// blank lines.
func CleanText(text string) string {
	s := strings.ReplaceAll(text, " ", " ")
	s = ctrlRe.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")

	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(s)
}

// RemoveCommonBoilerplate drops lines that repeat across a large fraction
// of pages (headers, footers, branding). Conservative: only lines present on
// at least minFraction of pages go, and a line must repeat on at least two
// pages regardless of the fraction.
func RemoveCommonBoilerplate(pageTexts []string, minFraction float64) []string {
	if len(pageTexts) == 0 {
		return []string{}
	}

	pagesLines := make([][]string, len(pageTexts))
	for i, t := range pageTexts {
		for _, ln := range strings.Split(t, "\n") {
			if trimmed := strings.TrimSpace(ln); trimmed != "" {
				pagesLines[i] = append(pagesLines[i], trimmed)
			}
		}
	}

	counts := map[string]int{}
	for _, lines := range pagesLines {
		seen := map[string]bool{}
		for _, ln := range lines {
			if !seen[ln] {
				seen[ln] = true
				counts[ln]++
			}
		}
	}

	threshold := int(float64(len(pageTexts)) * minFraction)
	if threshold < 2 {
		threshold = 2
	}

	cleaned := make([]string, len(pagesLines))
	for i, lines := range pagesLines {
		var kept []string
		for _, ln := range lines {
			if counts[ln] < threshold {
				kept = append(kept, ln)
			}
		}
		cleaned[i] = strings.TrimSpace(strings.Join(kept, "\n"))
	}
	return cleaned
}

// RemovePageNumbers drops standalone page-number lines.
func RemovePageNumbers(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			out = append(out, "")
			continue
		}
		if isPageNumberLine(stripped) {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func isPageNumberLine(line string) bool {
	for _, re := range pageNumberRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// DedupeLines removes repeated lines while preserving first-occurrence
// order. Blank lines are kept as structure.
func DedupeLines(text string) string {
	seen := map[string]bool{}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		key := strings.TrimSpace(line)
		if key == "" {
			out = append(out, "")
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// CombineRawAndOCR merges selectable text with OCR text for one page: both
// are kept, repeated lines collapse, page-number noise goes, unit spacing is
// normalized, and the result is cleaned.
func CombineRawAndOCR(rawText, ocrText string) string {
	merged := strings.TrimSpace(rawText)
	if ocr := strings.TrimSpace(ocrText); ocr != "" {
		if merged != "" {
			merged = merged + "\n" + ocr
		} else {
			merged = ocr
		}
	}
	merged = DedupeLines(merged)
	merged = RemovePageNumbers(merged)
	merged = NormalizeUnits(merged)
	return CleanText(merged)
}
