package preprocess

import (
	"sort"
	"strings"
)

// DefaultMaxChunkChars caps chunk size so extraction prompts stay small.
const DefaultMaxChunkChars = 1400

// TextChunk is a paragraph-aligned slice of cleaned document text with page
// provenance, the unit of LLM fact extraction.
type TextChunk struct {
	Source      string `json:"source"`
	PageNumbers []int  `json:"page_numbers"`
	Text        string `json:"text"`
}

// Page pairs a 1-based page number with its cleaned text.
type Page struct {
	Number int
	Text   string
}

// ChunkPages splits cleaned page texts into chunks: paragraphs accumulate
// until maxChars, and each chunk remembers the sorted set of pages it drew
// from. Deterministic for fixed input.
func ChunkPages(source string, pages []Page, maxChars int) []TextChunk {
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}

	var chunks []TextChunk
	var curParts []string
	curPages := map[int]bool{}

	flush := func() {
		text := strings.TrimSpace(strings.Join(curParts, "\n\n"))
		if text != "" {
			chunks = append(chunks, TextChunk{
				Source:      source,
				PageNumbers: sortedKeys(curPages),
				Text:        text,
			})
		}
		curParts = nil
		curPages = map[int]bool{}
	}

	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		for _, para := range splitParagraphs(page.Text) {
			candidate := strings.Join(append(append([]string{}, curParts...), para), "\n\n")
			if len(curParts) > 0 && len(candidate) > maxChars {
				flush()
			}
			curParts = append(curParts, para)
			curPages[page.Number] = true

			if len(strings.Join(curParts, "\n\n")) >= maxChars {
				flush()
			}
		}
	}
	flush()

	return chunks
}

func splitParagraphs(text string) []string {
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
