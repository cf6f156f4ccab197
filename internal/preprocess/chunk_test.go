package preprocess

import (
	"strings"
	"testing"
)

func TestChunkPages_SinglePageSingleChunk(t *testing.T) {
	pages := []Page{{Number: 1, Text: "First paragraph.\n\nSecond paragraph."}}

	chunks := ChunkPages("inspection_report", pages, 1400)
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Source != "inspection_report" {
		t.Errorf("Expected source carried, got %q", chunks[0].Source)
	}
	if len(chunks[0].PageNumbers) != 1 || chunks[0].PageNumbers[0] != 1 {
		t.Errorf("Expected page provenance [1], got %v", chunks[0].PageNumbers)
	}
}

func TestChunkPages_SplitsAtMaxChars(t *testing.T) {
	long := strings.Repeat("word ", 60) // ~300 chars per paragraph
	pages := []Page{{Number: 1, Text: long + "\n\n" + long + "\n\n" + long}}

	chunks := ChunkPages("inspection_report", pages, 400)
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks for oversized text, got %d", len(chunks))
	}
}

func TestChunkPages_PageProvenanceSpansPages(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "Short paragraph one."},
		{Number: 2, Text: "Short paragraph two."},
	}

	chunks := ChunkPages("thermal_report", pages, 1400)
	if len(chunks) != 1 {
		t.Fatalf("Expected paragraphs to share a chunk, got %d chunks", len(chunks))
	}
	if len(chunks[0].PageNumbers) != 2 || chunks[0].PageNumbers[0] != 1 || chunks[0].PageNumbers[1] != 2 {
		t.Errorf("Expected sorted pages [1 2], got %v", chunks[0].PageNumbers)
	}
}

func TestChunkPages_SkipsEmptyPages(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "   "},
		{Number: 2, Text: "Real content."},
	}

	chunks := ChunkPages("inspection_report", pages, 1400)
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if len(chunks[0].PageNumbers) != 1 || chunks[0].PageNumbers[0] != 2 {
		t.Errorf("Expected only page 2 in provenance, got %v", chunks[0].PageNumbers)
	}
}

func TestChunkPages_Deterministic(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "Para one.\n\nPara two.\n\nPara three."},
		{Number: 2, Text: "Para four."},
	}

	first := ChunkPages("inspection_report", pages, 30)
	for i := 0; i < 5; i++ {
		next := ChunkPages("inspection_report", pages, 30)
		if len(next) != len(first) {
			t.Fatalf("Expected stable chunk count, got %d then %d", len(first), len(next))
		}
		for j := range next {
			if next[j].Text != first[j].Text {
				t.Fatalf("Expected stable chunk text at %d", j)
			}
		}
	}
}
