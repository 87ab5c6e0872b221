package usecase

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// BuildTermSet returns the corrected term plus its non-blank synonyms.
// Membership is case-sensitive.
func BuildTermSet(corrected string, synonyms []string) mapset.Set[string] {
	terms := mapset.NewThreadUnsafeSet(corrected)
	for _, s := range synonyms {
		if strings.TrimSpace(s) != "" {
			terms.Add(s)
		}
	}
	return terms
}

// OrderTerms fixes a dispatch order for terms: corrected first, then the rest
// sorted lexically. maxSynonyms > 0 caps how many of the rest are kept.
func OrderTerms(terms mapset.Set[string], corrected string, maxSynonyms int) []string {
	rest := make([]string, 0, terms.Cardinality())
	for _, t := range terms.ToSlice() {
		if t != corrected {
			rest = append(rest, t)
		}
	}
	sort.Strings(rest)

	if maxSynonyms > 0 && len(rest) > maxSynonyms {
		rest = rest[:maxSynonyms]
	}
	return append([]string{corrected}, rest...)
}
