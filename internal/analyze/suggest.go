// Package analyze suggests registered main-file names for file names that
// almost match one. Suggestions are hints for people; they never change how
// a file is classified.
package analyze

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/scbrown/deliverable/internal/delivery"
)

// Suggestion pairs a known file name with its similarity score (0-1, higher is better).
type Suggestion struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// DefaultThreshold is the minimum similarity score for a suggestion to be returned.
const DefaultThreshold = 0.75

// DefaultTopN is the maximum number of suggestions returned.
const DefaultTopN = 3

// Suggest returns known names similar to name, best first. name itself is
// never suggested.
func Suggest(name string, known []string) []Suggestion {
	return SuggestN(name, known, DefaultTopN, DefaultThreshold)
}

// SuggestN returns up to topN known names similar to name, with score >= threshold.
func SuggestN(name string, known []string, topN int, threshold float64) []Suggestion {
	if name == "" || len(known) == 0 {
		return nil
	}

	var results []Suggestion
	for _, k := range known {
		if k == name {
			continue
		}
		if score := similarity(strings.ToLower(name), strings.ToLower(k)); score >= threshold {
			results = append(results, Suggestion{Name: k, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}
	return results
}

// SuggestMainFile compares fileName against every file in the main-file
// registry.
func SuggestMainFile(fileName string) []Suggestion {
	return Suggest(fileName, MainFileNames())
}

// MainFileNames returns each registered main file once, in registry order.
func MainFileNames() []string {
	seen := map[string]bool{}
	var out []string
	for _, archetype := range delivery.Archetypes() {
		for _, f := range delivery.MainFiles(archetype) {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// similarity is normalized edit distance plus small bonuses for a shared
// prefix (weight 0.1) and suffix (weight 0.05), capped at 1.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0.0
	}
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}

	lev := 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
	prefixBonus := 0.1 * float64(commonPrefixLen(a, b)) / float64(maxLen)
	suffixBonus := 0.05 * float64(commonSuffixLen(a, b)) / float64(maxLen)

	score := lev + prefixBonus + suffixBonus
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func commonPrefixLen(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return n
}

func commonSuffixLen(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[len(ra)-1-n] == rb[len(rb)-1-n] {
		n++
	}
	return n
}
