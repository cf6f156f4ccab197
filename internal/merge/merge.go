// Package merge implements the deterministic merge layer: it groups
// inspection and thermal facts by normalized area, collapses near-duplicate
// facts within each group, and detects contradictions between the two
// sources. The pass is pure: same inputs and threshold always produce the
// same output, in the same order.
package merge

import (
	"sort"

	"github.com/propscan/ddrgen/internal/model"
)

// DefaultSimilarityThreshold is the de-dup threshold used when the caller
// does not override it. Higher means stricter matching, fewer facts merged.
const DefaultSimilarityThreshold = 0.92

// Merge builds the merged area dataset from two optionally-absent fact
// documents. A nil document contributes no facts and is not an error.
//
// Steps: group facts by normalized area key (first-seen display casing wins),
// de-duplicate each group's inspection and thermal lists independently, run
// conflict detection over the de-duplicated lists, then emit the groups
// sorted ascending by normalized key so output ordering never depends on
// input fact order.
func Merge(inspection *model.InspectionFactsDoc, thermal *model.ThermalFactsDoc, similarityThreshold float64) *model.MergedAreaDoc {
	areas := make(map[string]*model.MergedArea)

	ensureArea := func(rawArea string) *model.MergedArea {
		key := NormalizeArea(rawArea)
		if entry, ok := areas[key]; ok {
			return entry
		}
		entry := &model.MergedArea{
			Area:            displayArea(rawArea),
			InspectionFacts: []model.InspectionFact{},
			ThermalFacts:    []model.ThermalFact{},
			Conflicts:       []model.Conflict{},
		}
		areas[key] = entry
		return entry
	}

	if inspection != nil {
		for _, f := range inspection.Facts {
			entry := ensureArea(f.Area)
			entry.InspectionFacts = append(entry.InspectionFacts, f)
		}
	}
	if thermal != nil {
		for _, f := range thermal.Facts {
			entry := ensureArea(f.Area)
			entry.ThermalFacts = append(entry.ThermalFacts, f)
		}
	}

	keys := make([]string, 0, len(areas))
	for k := range areas {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := &model.MergedAreaDoc{MergedAreas: make([]model.MergedArea, 0, len(keys))}
	for _, key := range keys {
		entry := areas[key]

		entry.InspectionFacts = dedupeFacts(entry.InspectionFacts, InspectionStatement, similarityThreshold)
		entry.ThermalFacts = dedupeFacts(entry.ThermalFacts, ThermalStatement, similarityThreshold)

		entry.Conflicts = DetectConflicts(entry.InspectionFacts, entry.ThermalFacts)
		entry.ConflictDetected = len(entry.Conflicts) > 0

		doc.MergedAreas = append(doc.MergedAreas, *entry)
	}

	return doc
}
