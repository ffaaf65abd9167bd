package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
	"github.com/h3x49r4m/peta-search/internal/core/ports/driving"
	"github.com/h3x49r4m/peta-search/internal/logger"
	"github.com/h3x49r4m/peta-search/internal/tokenizer"
)

// Ensure IndexBuilder implements the interface.
var _ driving.IndexService = (*IndexBuilder)(nil)

// excerptRunes bounds derived excerpts when the pipeline supplied none.
const excerptRunes = 160

// BuildConfig holds the index build tunables.
type BuildConfig struct {
	// WordsPerMinute is the reading-speed divisor for reading-time
	// estimates.
	WordsPerMinute int

	// MaxContentBytes bounds per-document content size. Oversized
	// records are skipped and reported, not silently truncated.
	MaxContentBytes int

	// FailureThreshold is the number of skipped records above which
	// the whole build fails instead of producing a hollow artifact.
	FailureThreshold int
}

// DefaultBuildConfig returns sensible defaults.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		WordsPerMinute:   200,
		MaxContentBytes:  2 << 20, // 2 MiB
		FailureThreshold: 10,
	}
}

// IndexBuilder turns a batch of content records into one search
// artifact, deterministically: the same ordered record list always
// yields the same postings. Term postings are presence-only, one
// entry per document per unique token, so repeated keywords within
// a document do not inflate its postings.
type IndexBuilder struct {
	cfg   BuildConfig
	tok   *tokenizer.Tokenizer
	clock func() time.Time
}

// NewIndexBuilder creates a builder with the given config and tokenizer.
func NewIndexBuilder(cfg BuildConfig, tok *tokenizer.Tokenizer) *IndexBuilder {
	if cfg.WordsPerMinute <= 0 {
		cfg.WordsPerMinute = DefaultBuildConfig().WordsPerMinute
	}
	if cfg.MaxContentBytes <= 0 {
		cfg.MaxContentBytes = DefaultBuildConfig().MaxContentBytes
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultBuildConfig().FailureThreshold
	}
	if tok == nil {
		tok = tokenizer.New()
	}
	return &IndexBuilder{
		cfg:   cfg,
		tok:   tok,
		clock: time.Now,
	}
}

// WithClock overrides the build timestamp source. Useful for tests
// that need reproducible metadata.
func (b *IndexBuilder) WithClock(clock func() time.Time) *IndexBuilder {
	b.clock = clock
	return b
}

// Build constructs one artifact from the ordered record list. Record
// order defines document index assignment: the first valid record gets
// index 0, and every posting references that ordinal.
//
// Records missing an id or url, or with oversized content, are skipped
// and collected in the report. A duplicate id fails the whole build:
// postings are positional and a silent overwrite would corrupt them.
func (b *IndexBuilder) Build(
	ctx context.Context, records []domain.ContentRecord,
) (*domain.SearchArtifact, *domain.BuildReport, error) {
	logger.Section("Index Build")
	logger.Debug("Input records: %d", len(records))

	start := b.clock()
	report := &domain.BuildReport{BuildID: uuid.NewString()}

	artifact := &domain.SearchArtifact{
		Documents:    make([]domain.SearchDocument, 0, len(records)),
		Terms:        make(map[string][]int),
		Tags:         make(map[string][]int),
		ContentTypes: make(map[string][]int),
	}

	seen := make(map[string]struct{}, len(records))
	totalContentTokens := 0

	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("build cancelled: %w", err)
		}

		rec := &records[i]

		if skip := b.validateRecord(rec); skip != nil {
			logger.Warn("Skipping record: %v", skip)
			report.Skipped = append(report.Skipped, skip)
			if len(report.Skipped) > b.cfg.FailureThreshold {
				return nil, nil, fmt.Errorf("build aborted after %d skipped records (ids: %s): %w",
					len(report.Skipped), strings.Join(report.SkippedIDs(), ", "), domain.ErrTooManyFailures)
			}
			continue
		}

		if _, dup := seen[rec.ID]; dup {
			return nil, nil, fmt.Errorf("build: id %q: %w", rec.ID, domain.ErrDuplicateID)
		}
		seen[rec.ID] = struct{}{}

		doc := b.buildDocument(rec)
		docIndex := len(artifact.Documents)
		artifact.Documents = append(artifact.Documents, doc)

		totalContentTokens += b.indexDocument(artifact, &doc, docIndex)
	}

	n := len(artifact.Documents)
	avgLen := 0.0
	if n > 0 {
		avgLen = float64(totalContentTokens) / float64(n)
	}

	artifact.Metadata = domain.IndexMetadata{
		Version:           domain.ArtifactVersion,
		BuildTimestamp:    b.clock(),
		TotalDocuments:    n,
		TotalTerms:        len(artifact.Terms),
		AvgDocumentLength: avgLen,
	}

	report.Indexed = n
	report.Duration = b.clock().Sub(start)

	logger.Info("Build %s: %d indexed, %d skipped, %d terms",
		report.BuildID, report.Indexed, len(report.Skipped), len(artifact.Terms))

	return artifact, report, nil
}

// validateRecord returns a RecordError for malformed records, nil otherwise.
func (b *IndexBuilder) validateRecord(rec *domain.ContentRecord) *domain.RecordError {
	if rec.ID == "" {
		return &domain.RecordError{Err: domain.ErrMissingID}
	}
	if rec.URL == "" {
		return &domain.RecordError{RecordID: rec.ID, Err: domain.ErrMissingURL}
	}
	if len(rec.Content) > b.cfg.MaxContentBytes {
		return &domain.RecordError{RecordID: rec.ID, Err: domain.ErrContentTooLarge}
	}
	return nil
}

// buildDocument projects a record into its immutable indexed form.
func (b *IndexBuilder) buildDocument(rec *domain.ContentRecord) domain.SearchDocument {
	if !rec.ContentType.IsValid() {
		logger.Warn("Record %q has unknown content type %q", rec.ID, rec.ContentType)
	}

	excerpt := rec.Excerpt
	if excerpt == "" {
		excerpt = deriveExcerpt(rec.Content)
	}

	wordCount := tokenizer.WordCount(rec.Content)
	readingTime := (wordCount + b.cfg.WordsPerMinute - 1) / b.cfg.WordsPerMinute

	tags := make([]string, len(rec.Tags))
	copy(tags, rec.Tags)

	return domain.SearchDocument{
		ID:          rec.ID,
		Title:       rec.Title,
		Excerpt:     excerpt,
		URL:         rec.URL,
		ContentType: rec.ContentType,
		Tags:        tags,
		Date:        rec.Date,
		Author:      rec.Author,
		Content:     rec.Content,
		WordCount:   wordCount,
		ReadingTime: readingTime,
	}
}

// indexDocument appends the document's postings to all three inverted
// indexes and returns its content token count.
func (b *IndexBuilder) indexDocument(
	artifact *domain.SearchArtifact, doc *domain.SearchDocument, docIndex int,
) int {
	contentTokens := b.tok.Tokenize(doc.Content)

	terms := b.tok.TokenSet(doc.Title)
	for token := range b.tok.TokenSet(doc.Excerpt) {
		terms[token] = struct{}{}
	}
	for _, tag := range doc.Tags {
		for token := range b.tok.TokenSet(tag) {
			terms[token] = struct{}{}
		}
	}
	for _, token := range contentTokens {
		terms[token] = struct{}{}
	}

	for token := range terms {
		artifact.Terms[token] = append(artifact.Terms[token], docIndex)
	}

	// Tags are opaque identifiers: indexed literally, deduplicated per
	// document so a repeated authored tag yields one posting.
	tagged := make(map[string]struct{}, len(doc.Tags))
	for _, tag := range doc.Tags {
		if _, ok := tagged[tag]; ok {
			continue
		}
		tagged[tag] = struct{}{}
		artifact.Tags[tag] = append(artifact.Tags[tag], docIndex)
	}

	ct := doc.ContentType.String()
	artifact.ContentTypes[ct] = append(artifact.ContentTypes[ct], docIndex)

	return len(contentTokens)
}

// deriveExcerpt truncates content at a word boundary within the
// excerpt length bound.
func deriveExcerpt(content string) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= excerptRunes {
		return content
	}

	runes := []rune(content)
	cut := excerptRunes
	for cut > 0 && runes[cut] != ' ' && runes[cut] != '\n' && runes[cut] != '\t' {
		cut--
	}
	if cut == 0 {
		cut = excerptRunes
	}

	return strings.TrimSpace(string(runes[:cut])) + "..."
}
