package events

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Fuzzy match thresholds. These were tuned against real queries; change them
// only with a product reason.
const (
	wholeStringRatioThreshold = 0.55
	tokenEarlyExitThreshold   = 0.75
	meanTokenScoreThreshold   = 0.62
)

// nonWord splits text into word tokens.
var nonWord = regexp.MustCompile(`\W+`)

// tokenizeWords splits lowercased text on non-word characters, dropping
// empty tokens.
func tokenizeWords(text string) []string {
	parts := nonWord.Split(text, -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// similarityRatio computes a normalized [0,1] similarity score between two
// strings, character-level.
func similarityRatio(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// fuzzyMatch reports whether a lowercased query roughly matches a lowercased
// haystack. The whole-string ratio is tried first; failing that, each query
// token is scored against its best haystack token and the mean of the best
// scores decides. The per-token loop exits early once a good-enough candidate
// is found, which changes nothing about the outcome.
func fuzzyMatch(query string, tokens []string, haystack string) bool {
	if similarityRatio(query, haystack) >= wholeStringRatioThreshold {
		return true
	}

	if len(tokens) == 0 {
		return false
	}

	haystackTokens := tokenizeWords(haystack)
	if len(haystackTokens) == 0 {
		return false
	}

	var total float64
	for _, token := range tokens {
		best := 0.0
		for _, candidate := range haystackTokens {
			score := similarityRatio(token, candidate)
			if score > best {
				best = score
			}
			if best >= tokenEarlyExitThreshold {
				break
			}
		}
		total += best
	}

	mean := total / float64(len(tokens))
	return mean >= meanTokenScoreThreshold
}
