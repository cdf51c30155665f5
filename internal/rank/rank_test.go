package rank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KVidyashree/Chatbot/internal/index"
	"github.com/KVidyashree/Chatbot/internal/rank"
	"github.com/KVidyashree/Chatbot/internal/rows"
)

func record(sheet string, fields map[string]string) rows.Record {
	return rows.Record{Fields: fields, Sheet: sheet}
}

func buildIndex(records ...rows.Record) *index.Index {
	return index.Build(records)
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	assert.NoError(t, rank.DefaultWeights.Validate())
	assert.Error(t, rank.Weights{Cosine: 0.5, Jaccard: 0.5, FieldBonus: 0.5}.Validate())
}

func TestCosineProperties(t *testing.T) {
	ix := buildIndex(
		record("S", map[string]string{"title": "go programming language"}),
		record("S", map[string]string{"title": "python scripting language"}),
	)

	a := ix.QueryVector("go programming language")
	b := ix.QueryVector("python scripting language")

	// Self-similarity of a non-empty vector is 1.
	assert.InDelta(t, 1.0, rank.Cosine(a, a), 1e-9)

	// Symmetric and within [0,1].
	ab := rank.Cosine(a, b)
	assert.InDelta(t, ab, rank.Cosine(b, a), 1e-12)
	assert.GreaterOrEqual(t, ab, 0.0)
	assert.LessOrEqual(t, ab, 1.0)

	// Empty vectors contribute nothing.
	assert.Zero(t, rank.Cosine(a, map[string]float64{}))
}

func TestJaccard(t *testing.T) {
	a := index.TokenSet([]string{"go", "language"})
	b := index.TokenSet([]string{"go", "python"})

	assert.InDelta(t, 1.0/3.0, rank.Jaccard(a, b), 1e-9)
	assert.InDelta(t, rank.Jaccard(a, b), rank.Jaccard(b, a), 1e-12)
	assert.Zero(t, rank.Jaccard(nil, nil), "two empty sets must score 0, not divide by zero")
	assert.InDelta(t, 1.0, rank.Jaccard(a, a), 1e-9)
}

func TestRankOrdersByRelevance(t *testing.T) {
	ix := buildIndex(
		record("Courses", map[string]string{"title": "computer science engineering"}),
		record("Courses", map[string]string{"title": "mechanical engineering"}),
		record("Misc", map[string]string{"title": "hostel fee structure"}),
	)

	results := rank.Rank(ix, "computer science", rank.DefaultWeights)
	require.Len(t, results, 3)
	assert.Equal(t, "computer science engineering", results[0].Doc.Record.Get("title"))
	assert.True(t, results[0].Score >= results[1].Score)
	assert.True(t, results[1].Score >= results[2].Score)
}

func TestTopConfidenceIsExactlyOne(t *testing.T) {
	ix := buildIndex(
		record("S", map[string]string{"title": "admission process"}),
		record("S", map[string]string{"title": "placement statistics"}),
	)

	results := rank.Rank(ix, "admission", rank.DefaultWeights)
	require.NotEmpty(t, results)
	assert.Equal(t, 1.0, results[0].Confidence)
	for _, res := range results[1:] {
		assert.LessOrEqual(t, res.Confidence, 1.0)
	}
}

func TestAllZeroScoresYieldZeroConfidence(t *testing.T) {
	ix := buildIndex(
		record("S", map[string]string{"title": "admission process"}),
	)

	results := rank.Rank(ix, "zzyzx", rank.DefaultWeights)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Score)
	assert.Zero(t, results[0].Confidence)
}

func TestRankEmptyIndex(t *testing.T) {
	assert.Empty(t, rank.Rank(index.Build(nil), "anything", rank.DefaultWeights))
}

func TestScoresIndependentOfRecordOrder(t *testing.T) {
	forward := []rows.Record{
		record("S", map[string]string{"title": "computer science engineering"}),
		record("S", map[string]string{"title": "mechanical engineering"}),
		record("S", map[string]string{"title": "civil engineering"}),
	}
	reversed := []rows.Record{forward[2], forward[1], forward[0]}

	scoreByTitle := func(results []rank.Result) map[string]float64 {
		out := make(map[string]float64)
		for _, res := range results {
			out[res.Doc.Record.Get("title")] = res.Score
		}
		return out
	}

	a := scoreByTitle(rank.Rank(index.Build(forward), "computer science", rank.DefaultWeights))
	b := scoreByTitle(rank.Rank(index.Build(reversed), "computer science", rank.DefaultWeights))
	assert.Equal(t, a, b)
}

func TestTitleFieldBonusBoostsTitledRecords(t *testing.T) {
	// Only one record carries the query token in a title-like field; the
	// other buries it in a longer description.
	withTitle := record("S", map[string]string{"title": "scholarship details", "description": "grants and aid"})
	withoutTitle := record("S", map[string]string{"description": "scholarship details grants and aid"})

	ix := buildIndex(withoutTitle, withTitle)
	results := rank.Rank(ix, "scholarship", rank.DefaultWeights)
	require.Len(t, results, 2)
	assert.Equal(t, "scholarship details", results[0].Doc.Record.Get("title"))
}
