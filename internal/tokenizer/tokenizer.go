// Package tokenizer provides the shared text tokenizer for index
// building and querying. Ranking correctness depends on both sides
// normalising tokens identically, so this is the only tokenizer in
// the codebase.
package tokenizer

import "strings"

// DefaultPunctuation is the punctuation stripped from token edges.
const DefaultPunctuation = ".,!?()[]{}<>:;\"'`*#"

// Tokenizer splits text into normalised tokens: whitespace-separated,
// case-folded, with configured punctuation trimmed from each token.
// Empty tokens after trimming are dropped.
type Tokenizer struct {
	punctuation string
}

// New creates a tokenizer with the default punctuation set.
func New() *Tokenizer {
	return &Tokenizer{punctuation: DefaultPunctuation}
}

// NewWithPunctuation creates a tokenizer with a custom punctuation set.
// An empty set falls back to the default.
func NewWithPunctuation(punctuation string) *Tokenizer {
	if punctuation == "" {
		punctuation = DefaultPunctuation
	}
	return &Tokenizer{punctuation: punctuation}
}

// Tokenize splits text into normalised tokens, preserving order and
// duplicates.
func (t *Tokenizer) Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, t.punctuation)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}

	return tokens
}

// TokenSet returns the unique tokens of text as a membership set.
func (t *Tokenizer) TokenSet(text string) map[string]struct{} {
	tokens := t.Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// WordCount returns the whitespace-delimited word count of text,
// before any normalisation. Used for reading-time estimates.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
