package merge

// dedupeFacts collapses near-duplicate facts, keeping the first occurrence.
// A candidate is a duplicate when its matching-normalized statement is
// identical to a kept one or scores at or above the similarity threshold
// against one. Facts whose normalized statement is empty carry no comparable
// content and are always kept; two uninformative facts are never considered
// duplicates of each other. Input order is preserved.
//
// O(n²) per list, which is fine: per-area fact counts stay in the low tens.
func dedupeFacts[T any](facts []T, statement func(T) string, threshold float64) []T {
	kept := make([]T, 0, len(facts))
	keptSigs := make([]string, 0, len(facts))

	for _, f := range facts {
		sig := normalizeForMatch(statement(f))

		if sig == "" {
			kept = append(kept, f)
			keptSigs = append(keptSigs, sig)
			continue
		}

		isDup := false
		for _, existing := range keptSigs {
			if existing == "" {
				continue
			}
			if sig == existing || similarSignatures(sig, existing) >= threshold {
				isDup = true
				break
			}
		}

		if !isDup {
			kept = append(kept, f)
			keptSigs = append(keptSigs, sig)
		}
	}

	return kept
}

// similarSignatures compares two already-normalized signatures.
func similarSignatures(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return alignmentRatio([]rune(a), []rune(b))
}
