package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var names = []string{
	"file1.txt",
	"file2.txt",
	"document.pdf",
	"readme.md",
	"config.json",
}

func TestSubstringMatchNames(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedCount int
	}{
		{"exact match", "file1.txt", 1},
		{"substring match", "file", 2},
		{"partial match", "doc", 1},
		{"case insensitive", "FILE", 2},
		{"no match", "xyz", 0},
		{"empty query", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := SubstringMatchNames(tt.query, names)
			assert.Len(t, results, tt.expectedCount)
		})
	}
}

func TestSubstringMatchedIndexes(t *testing.T) {
	results := SubstringMatchNames("ME", names)
	require.Len(t, results, 2)

	// "document.pdf" then "readme.md"
	assert.Equal(t, 2, results[0].Index)
	assert.Equal(t, []int{4, 5}, results[0].MatchedIndexes)
	assert.Equal(t, 3, results[1].Index)
	assert.Equal(t, []int{4, 5}, results[1].MatchedIndexes)
}

func TestFuzzyMatchNames(t *testing.T) {
	results := FuzzyMatchNames("cfg", names)
	require.NotEmpty(t, results)
	assert.Equal(t, 4, results[0].Index)
	assert.Len(t, results[0].MatchedIndexes, 3)

	assert.Empty(t, FuzzyMatchNames("", names))
	assert.Empty(t, FuzzyMatchNames("zzz", names))
}

func TestBestMatch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
		found bool
	}{
		{"exact wins over substring", "FILE2.TXT", 1, true},
		{"first substring in listing order", "file", 0, true},
		{"fuzzy fallback", "rdm", 3, true},
		{"nothing", "qqq", 0, false},
		{"empty query", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BestMatch(tt.query, names)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got.Index)
			}
		})
	}
}

func TestBestMatchEmptyListing(t *testing.T) {
	_, ok := BestMatch("a", nil)
	assert.False(t, ok)
}
