package events

import "testing"

func TestTokenizeWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple words",
			input:    "jazz in the park",
			expected: []string{"jazz", "in", "the", "park"},
		},
		{
			name:     "punctuation and extra separators",
			input:    "kids' art-class, (free!)",
			expected: []string{"kids", "art", "class", "free"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only separators",
			input:    "--- !!!",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizeWords(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("tokenizeWords(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("tokenizeWords(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		min  float64
		max  float64
	}{
		{
			name: "identical strings",
			a:    "jazz",
			b:    "jazz",
			min:  1.0,
			max:  1.0,
		},
		{
			name: "no overlap",
			a:    "abc",
			b:    "xyz",
			min:  0.0,
			max:  0.0,
		},
		{
			name: "close typo",
			a:    "jaz",
			b:    "jazz",
			min:  0.8,
			max:  0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := similarityRatio(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("similarityRatio(%q, %q) = %f, want in [%f, %f]", tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		haystack string
		expected bool
	}{
		{
			name:     "whole-string similarity path",
			query:    "jazz night",
			haystack: "jazz nights",
			expected: true,
		},
		{
			name:     "typo in token matches via token scores",
			query:    "jaz",
			haystack: "jazz night",
			expected: true,
		},
		{
			name:     "unrelated query",
			query:    "xyzzy123",
			haystack: "community garden volunteer day golden gate park",
			expected: false,
		},
		{
			name:     "multi-token query with one weak token still averages in",
			query:    "yoga clas",
			haystack: "sunset yoga class at ocean beach",
			expected: true,
		},
		{
			name:     "haystack with no tokens",
			query:    "jazz",
			haystack: "!!! ---",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tokenizeWords(tt.query)
			got := fuzzyMatch(tt.query, tokens, tt.haystack)
			if got != tt.expected {
				t.Errorf("fuzzyMatch(%q, %q) = %v, want %v", tt.query, tt.haystack, got, tt.expected)
			}
		})
	}
}

func TestFuzzyMatchEmptyTokens(t *testing.T) {
	// A query with no tokens can only succeed through the whole-string ratio.
	if fuzzyMatch("###", nil, "completely different text about gardening") {
		t.Error("fuzzyMatch with empty tokens and dissimilar strings should not match")
	}
}
