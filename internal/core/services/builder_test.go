package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
	"github.com/h3x49r4m/peta-search/internal/tokenizer"
)

var buildTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testBuilder() *IndexBuilder {
	return NewIndexBuilder(DefaultBuildConfig(), tokenizer.New()).
		WithClock(func() time.Time { return buildTime })
}

func record(id, title string, tags ...string) domain.ContentRecord {
	return domain.ContentRecord{
		ID:          id,
		Title:       title,
		URL:         "/" + id,
		ContentType: domain.ContentTypeArticle,
		Tags:        tags,
		Author:      "peta",
	}
}

// TestBuild_RoundTrip tests that N records yield N documents with
// consistent metadata and in-range postings.
func TestBuild_RoundTrip(t *testing.T) {
	records := []domain.ContentRecord{
		record("a", "First Post", "go"),
		record("b", "Second Post", "go", "search"),
		record("c", "Third Post"),
	}

	artifact, report, err := testBuilder().Build(context.Background(), records)
	require.NoError(t, err)

	assert.Len(t, artifact.Documents, 3)
	assert.Equal(t, 3, artifact.Metadata.TotalDocuments)
	assert.Equal(t, 3, report.Indexed)
	assert.Empty(t, report.Skipped)
	assert.NotEmpty(t, report.BuildID)

	require.NoError(t, artifact.Validate())

	// Document index assignment follows record order.
	assert.Equal(t, "a", artifact.Documents[0].ID)
	assert.Equal(t, "c", artifact.Documents[2].ID)
	assert.Equal(t, []int{0, 1}, artifact.Tags["go"])
	assert.Equal(t, []int{0, 1, 2}, artifact.ContentTypes["article"])
}

// TestBuild_Determinism tests that two builds from the same ordered
// input produce identical postings.
func TestBuild_Determinism(t *testing.T) {
	records := []domain.ContentRecord{
		record("a", "Machine Learning Basics", "ml"),
		record("b", "Cooking Pasta", "food"),
	}

	first, _, err := testBuilder().Build(context.Background(), records)
	require.NoError(t, err)
	second, _, err := testBuilder().Build(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, first.Terms, second.Terms)
	assert.Equal(t, first.Tags, second.Tags)
	assert.Equal(t, first.ContentTypes, second.ContentTypes)
	assert.Equal(t, first.Metadata, second.Metadata)
}

// TestBuild_PresenceOnlyPostings tests that repeated tokens within a
// document produce a single posting.
func TestBuild_PresenceOnlyPostings(t *testing.T) {
	rec := record("a", "go go go", "go")
	rec.Content = "go is go and more go"

	artifact, _, err := testBuilder().Build(context.Background(), []domain.ContentRecord{rec})
	require.NoError(t, err)

	assert.Equal(t, []int{0}, artifact.Terms["go"])
}

// TestBuild_TermsCoverAllFields tests that title, excerpt, tags, and
// content all feed the terms index, case-folded.
func TestBuild_TermsCoverAllFields(t *testing.T) {
	rec := record("a", "Title Word", "TagWord")
	rec.Excerpt = "excerpt word"
	rec.Content = "content word"

	artifact, _, err := testBuilder().Build(context.Background(), []domain.ContentRecord{rec})
	require.NoError(t, err)

	for _, token := range []string{"title", "excerpt", "content", "tagword", "word"} {
		assert.Contains(t, artifact.Terms, token, "token %q missing", token)
	}

	// The tags index keeps the literal, un-folded tag.
	assert.Contains(t, artifact.Tags, "TagWord")
	assert.NotContains(t, artifact.Tags, "tagword")
}

// TestBuild_SkipsMalformedRecords tests per-record failure collection.
func TestBuild_SkipsMalformedRecords(t *testing.T) {
	noURL := record("no-url", "Valid Title")
	noURL.URL = ""

	records := []domain.ContentRecord{
		{Title: "No ID", URL: "/x", ContentType: domain.ContentTypeArticle},
		noURL,
		record("ok", "Survives"),
	}

	artifact, report, err := testBuilder().Build(context.Background(), records)
	require.NoError(t, err)

	assert.Len(t, artifact.Documents, 1)
	assert.Equal(t, "ok", artifact.Documents[0].ID)

	require.Len(t, report.Skipped, 2)
	assert.ErrorIs(t, report.Skipped[0], domain.ErrMissingID)
	assert.ErrorIs(t, report.Skipped[1], domain.ErrMissingURL)
	assert.Equal(t, "no-url", report.Skipped[1].RecordID)
}

// TestBuild_OversizedContent tests the per-document size bound.
func TestBuild_OversizedContent(t *testing.T) {
	cfg := DefaultBuildConfig()
	cfg.MaxContentBytes = 16
	builder := NewIndexBuilder(cfg, tokenizer.New()).
		WithClock(func() time.Time { return buildTime })

	big := record("big", "Pathological")
	big.Content = strings.Repeat("x", 17)

	artifact, report, err := builder.Build(context.Background(),
		[]domain.ContentRecord{big, record("ok", "Fine")})
	require.NoError(t, err)

	assert.Len(t, artifact.Documents, 1)
	require.Len(t, report.Skipped, 1)
	assert.ErrorIs(t, report.Skipped[0], domain.ErrContentTooLarge)
	assert.Equal(t, []string{"big"}, report.SkippedIDs())
}

// TestBuild_DuplicateID tests that id collisions fail the whole build,
// naming the offending id.
func TestBuild_DuplicateID(t *testing.T) {
	records := []domain.ContentRecord{
		record("x", "First"),
		record("x", "Second"),
	}

	artifact, report, err := testBuilder().Build(context.Background(), records)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	assert.Contains(t, err.Error(), `"x"`)
	assert.Nil(t, artifact)
	assert.Nil(t, report)
}

// TestBuild_FailureThreshold tests that too many skipped records abort
// the build instead of producing a hollow artifact.
func TestBuild_FailureThreshold(t *testing.T) {
	cfg := DefaultBuildConfig()
	cfg.FailureThreshold = 1
	builder := NewIndexBuilder(cfg, tokenizer.New())

	records := []domain.ContentRecord{
		{Title: "bad one", URL: "/1"},
		{Title: "bad two", URL: "/2"},
		record("ok", "Never Reached"),
	}

	_, _, err := builder.Build(context.Background(), records)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTooManyFailures)
}

// TestBuild_DerivedFields tests word count, reading time, and excerpt
// derivation.
func TestBuild_DerivedFields(t *testing.T) {
	rec := record("a", "Long Read")
	rec.Content = strings.Repeat("word ", 250)

	artifact, _, err := testBuilder().Build(context.Background(), []domain.ContentRecord{rec})
	require.NoError(t, err)

	doc := artifact.Documents[0]
	assert.Equal(t, 250, doc.WordCount)
	// 250 words at 200 wpm rounds up to 2 minutes.
	assert.Equal(t, 2, doc.ReadingTime)
	assert.NotEmpty(t, doc.Excerpt)
	assert.True(t, strings.HasSuffix(doc.Excerpt, "..."))
	assert.LessOrEqual(t, len(doc.Excerpt), excerptRunes+3)
}

// TestBuild_ExcerptPassedThrough tests that a pipeline-supplied excerpt
// is kept verbatim.
func TestBuild_ExcerptPassedThrough(t *testing.T) {
	rec := record("a", "Post")
	rec.Excerpt = "hand-written summary"
	rec.Content = strings.Repeat("word ", 500)

	artifact, _, err := testBuilder().Build(context.Background(), []domain.ContentRecord{rec})
	require.NoError(t, err)

	assert.Equal(t, "hand-written summary", artifact.Documents[0].Excerpt)
}

// TestBuild_Metadata tests metadata computation.
func TestBuild_Metadata(t *testing.T) {
	one := record("a", "One")
	one.Content = "alpha beta"
	two := record("b", "Two")
	two.Content = "gamma delta epsilon zeta"

	artifact, _, err := testBuilder().Build(context.Background(),
		[]domain.ContentRecord{one, two})
	require.NoError(t, err)

	meta := artifact.Metadata
	assert.Equal(t, domain.ArtifactVersion, meta.Version)
	assert.Equal(t, buildTime, meta.BuildTimestamp)
	assert.Equal(t, 2, meta.TotalDocuments)
	assert.Equal(t, len(artifact.Terms), meta.TotalTerms)
	// (2 + 4) content tokens over 2 documents.
	assert.InDelta(t, 3.0, meta.AvgDocumentLength, 0.001)
}

// TestBuild_Empty tests building from zero records.
func TestBuild_Empty(t *testing.T) {
	artifact, report, err := testBuilder().Build(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, artifact.Documents)
	assert.Equal(t, 0, artifact.Metadata.TotalDocuments)
	assert.Zero(t, artifact.Metadata.AvgDocumentLength)
	assert.Equal(t, 0, report.Indexed)
}

// TestBuild_Cancelled tests context cancellation.
func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := testBuilder().Build(ctx, []domain.ContentRecord{record("a", "A")})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
