// Package search matches a typed query against the names of the current
// listing for Command mode jumps.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// MatchResult contains fuzzy match information
type MatchResult struct {
	Index          int
	MatchedIndexes []int
}

// SubstringMatchNames performs case-insensitive substring matching on a list of names
// Returns the indices of matches and their matched character positions
func SubstringMatchNames(query string, names []string) []MatchResult {
	if query == "" {
		return nil
	}

	lowerQuery := strings.ToLower(query)
	var results []MatchResult

	for i, name := range names {
		lowerName := strings.ToLower(name)
		if idx := strings.Index(lowerName, lowerQuery); idx != -1 {
			matchedIndexes := make([]int, len(lowerQuery))
			for j := range matchedIndexes {
				matchedIndexes[j] = idx + j
			}
			results = append(results, MatchResult{
				Index:          i,
				MatchedIndexes: matchedIndexes,
			})
		}
	}

	return results
}

// FuzzyMatchNames ranks names against query, best match first
func FuzzyMatchNames(query string, names []string) []MatchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.Find(query, names)
	results := make([]MatchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, MatchResult{
			Index:          match.Index,
			MatchedIndexes: match.MatchedIndexes,
		})
	}
	return results
}

// BestMatch picks the entry a jump to query should land on: an exact name
// (ignoring case), then the first name containing query, then the best
// fuzzy match.
func BestMatch(query string, names []string) (MatchResult, bool) {
	if query == "" {
		return MatchResult{}, false
	}

	for i, name := range names {
		if strings.EqualFold(name, query) {
			idx := make([]int, len(name))
			for j := range idx {
				idx[j] = j
			}
			return MatchResult{Index: i, MatchedIndexes: idx}, true
		}
	}

	if subs := SubstringMatchNames(query, names); len(subs) > 0 {
		return subs[0], true
	}

	if fuzzies := FuzzyMatchNames(query, names); len(fuzzies) > 0 {
		return fuzzies[0], true
	}
	return MatchResult{}, false
}
