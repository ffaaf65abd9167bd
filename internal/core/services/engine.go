package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
	"github.com/h3x49r4m/peta-search/internal/core/ports/driving"
	"github.com/h3x49r4m/peta-search/internal/logger"
	"github.com/h3x49r4m/peta-search/internal/tokenizer"
)

// Ensure QueryEngine implements the interface.
var _ driving.QueryService = (*QueryEngine)(nil)

// Field match weights. These are a behavioural contract shared with
// every client implementation of the artifact format; changing them
// changes ranking for all consumers.
const (
	titleWeight   = 10
	tagWeight     = 5
	excerptWeight = 3
	contentWeight = 1
	phraseBonus   = 2

	recentBonus   = 2 // age < 30 days
	thisYearBonus = 1 // age < 365 days
)

// snippetRunes bounds highlight snippet length.
const snippetRunes = 160

// QueryEngine answers ranked queries against one loaded artifact.
// It is stateless across calls: the artifact is immutable after load,
// so concurrent searches need no locking. Replacing the artifact is an
// atomic pointer swap: an in-flight search sees either the old or the
// new artifact in full, never a mix.
type QueryEngine struct {
	tok      *tokenizer.Tokenizer
	artifact atomic.Pointer[domain.SearchArtifact]
}

// NewQueryEngine creates an engine using the given tokenizer. The
// tokenizer must match the one used at build time; ranking correctness
// depends on token-normalisation parity.
func NewQueryEngine(tok *tokenizer.Tokenizer) *QueryEngine {
	if tok == nil {
		tok = tokenizer.New()
	}
	return &QueryEngine{tok: tok}
}

// Load validates and installs an artifact. Validation failures are
// fatal to the load; the engine never proceeds with inconsistent
// postings and never attempts repair.
func (e *QueryEngine) Load(artifact *domain.SearchArtifact) error {
	if artifact == nil {
		return fmt.Errorf("load artifact: %w", domain.ErrArtifactInvalid)
	}
	if err := artifact.Validate(); err != nil {
		return fmt.Errorf("load artifact: %w", err)
	}

	e.artifact.Store(artifact)
	logger.Info("Artifact loaded: %d documents, %d terms",
		artifact.Metadata.TotalDocuments, artifact.Metadata.TotalTerms)
	return nil
}

// Stats returns the metadata of the loaded artifact.
func (e *QueryEngine) Stats() (domain.IndexMetadata, error) {
	artifact := e.artifact.Load()
	if artifact == nil {
		return domain.IndexMetadata{}, domain.ErrNotLoaded
	}
	return artifact.Metadata, nil
}

// Search tokenizes the query, selects candidates, scores, ranks, and
// returns at most the capped number of results with highlights.
func (e *QueryEngine) Search(
	ctx context.Context, query string, opts domain.QueryOptions,
) ([]domain.ScoredResult, error) {
	artifact := e.artifact.Load()
	if artifact == nil {
		return nil, domain.ErrNotLoaded
	}

	logger.Section("Query Execution")
	query = strings.TrimSpace(query)
	terms := e.tok.Tokenize(query)
	logger.Debug("Query: %q, tokens: %v", query, terms)

	hasFilters := len(opts.ContentTypes) > 0 || len(opts.Tags) > 0
	if len(terms) == 0 && !hasFilters {
		// A precondition notice, not a zero-match result.
		return nil, domain.ErrNoQuery
	}

	candidates := e.selectCandidates(artifact, terms)
	logger.Debug("Candidates before filters: %d", len(candidates))

	candidates = applyFilter(candidates, artifact.ContentTypes, opts.ContentTypes)
	candidates = applyFilter(candidates, artifact.Tags, opts.Tags)
	logger.Debug("Candidates after filters: %d", len(candidates))

	results := make([]domain.ScoredResult, 0, len(candidates))
	for idx := range candidates {
		doc := &artifact.Documents[idx]
		results = append(results, domain.ScoredResult{
			Document: *doc,
			DocIndex: idx,
			Score:    e.score(doc, query, terms, opts.Now),
		})
	}

	// Score descending, ties broken by document index ascending so
	// identical inputs always rank identically.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocIndex < results[j].DocIndex
	})

	limit := opts.Limit
	if limit <= 0 || limit > domain.MaxResults {
		limit = domain.MaxResults
	}
	if len(results) > limit {
		results = results[:limit]
	}

	for i := range results {
		results[i].Highlights = e.highlights(&results[i].Document, terms)
	}

	logger.Info("Results: %d", len(results))
	return results, nil
}

// selectCandidates returns the document indices eligible for scoring:
// documents matching at least one query token, or every document when
// the query is empty and filters alone narrow the set.
func (e *QueryEngine) selectCandidates(
	artifact *domain.SearchArtifact, terms []string,
) map[int]struct{} {
	candidates := make(map[int]struct{})

	if len(terms) == 0 {
		for idx := range artifact.Documents {
			candidates[idx] = struct{}{}
		}
		return candidates
	}

	for _, term := range terms {
		for _, idx := range artifact.Terms[term] {
			candidates[idx] = struct{}{}
		}
	}
	return candidates
}

// applyFilter intersects candidates with the union of posting lists for
// the requested keys. Filters across dimensions are AND'd; values within
// one dimension are OR'd. An empty filter leaves candidates untouched.
func applyFilter(
	candidates map[int]struct{}, postings map[string][]int, keys []string,
) map[int]struct{} {
	if len(keys) == 0 {
		return candidates
	}

	allowed := make(map[int]struct{})
	for _, key := range keys {
		for _, idx := range postings[key] {
			allowed[idx] = struct{}{}
		}
	}

	filtered := make(map[int]struct{}, len(candidates))
	for idx := range candidates {
		if _, ok := allowed[idx]; ok {
			filtered[idx] = struct{}{}
		}
	}
	return filtered
}

// score accumulates the weighted field matches for one document.
// The weights do not multiply by term frequency: postings are
// presence-only and a token either hits a field or it doesn't.
func (e *QueryEngine) score(
	doc *domain.SearchDocument, query string, terms []string, now time.Time,
) int {
	score := 0

	if len(terms) > 0 {
		titleSet := e.tok.TokenSet(doc.Title)
		excerptSet := e.tok.TokenSet(doc.Excerpt)
		contentSet := e.tok.TokenSet(doc.Content)
		tagSet := make(map[string]struct{})
		for _, tag := range doc.Tags {
			for token := range e.tok.TokenSet(tag) {
				tagSet[token] = struct{}{}
			}
		}

		for _, term := range terms {
			if _, ok := titleSet[term]; ok {
				score += titleWeight
			}
			if _, ok := tagSet[term]; ok {
				score += tagWeight
			}
			if _, ok := excerptSet[term]; ok {
				score += excerptWeight
			}
			if _, ok := contentSet[term]; ok {
				score += contentWeight
			}
		}

		// Whole-query contiguous substring, once per document.
		phrase := strings.ToLower(query)
		if strings.Contains(strings.ToLower(doc.Title), phrase) ||
			strings.Contains(strings.ToLower(doc.Excerpt), phrase) ||
			strings.Contains(strings.ToLower(doc.Content), phrase) {
			score += phraseBonus
		}
	}

	score += recencyBonus(doc.Date, now)
	return score
}

// recencyBonus awards the most generous applicable age bucket. A zero
// now or zero date disables the bonus; the core never reads a clock.
func recencyBonus(date, now time.Time) int {
	if now.IsZero() || date.IsZero() {
		return 0
	}

	age := now.Sub(date)
	switch {
	case age < 30*24*time.Hour:
		return recentBonus
	case age < 365*24*time.Hour:
		return thisYearBonus
	default:
		return 0
	}
}

// highlights produces display-only snippets for the excerpt and content
// fields. The first query term found in a field is marked; scoring and
// ranking are already settled by the time this runs.
func (e *QueryEngine) highlights(
	doc *domain.SearchDocument, terms []string,
) []domain.Highlight {
	if len(terms) == 0 {
		return nil
	}

	var highlights []domain.Highlight
	fields := []struct {
		field domain.HighlightField
		text  string
	}{
		{domain.HighlightExcerpt, doc.Excerpt},
		{domain.HighlightContent, doc.Content},
	}

	for _, f := range fields {
		for _, term := range terms {
			if snippet, ok := markSnippet(f.text, term); ok {
				highlights = append(highlights, domain.Highlight{
					Field:   f.field,
					Snippet: snippet,
				})
				break
			}
		}
	}

	return highlights
}

// markSnippet extracts a bounded window around the first occurrence of
// term in text, wrapping the match in <mark> tags.
func markSnippet(text, term string) (string, bool) {
	i, end := foldIndex(text, term)
	if i < 0 {
		return "", false
	}

	start := i - snippetRunes/2
	if start < 0 {
		start = 0
	}
	stop := end + snippetRunes/2
	if stop > len(text) {
		stop = len(text)
	}
	start = runeStart(text, start)
	stop = runeStart(text, stop)

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(text[start:i])
	b.WriteString("<mark>")
	b.WriteString(text[i:end])
	b.WriteString("</mark>")
	b.WriteString(text[end:stop])
	if stop < len(text) {
		b.WriteString("...")
	}

	return b.String(), true
}

// foldIndex returns the byte offsets in text of the first
// case-insensitive occurrence of term, or -1, -1. Offsets come from
// text itself, never from a lowered copy: lowering can change a rune's
// byte length, so indices found in a lowered string do not transfer
// back. term must already be lowercase, which the tokenizer guarantees.
func foldIndex(text, term string) (start, end int) {
	if term == "" {
		return -1, -1
	}

	for i := range text {
		j := i
		matched := true
		for _, want := range term {
			r, size := utf8.DecodeRuneInString(text[j:])
			if size == 0 || unicode.ToLower(r) != want {
				matched = false
				break
			}
			j += size
		}
		if matched {
			return i, j
		}
	}
	return -1, -1
}

// runeStart walks i back to the nearest rune boundary.
func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && (s[i]&0xC0) == 0x80 {
		i--
	}
	return i
}
