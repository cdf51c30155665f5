package bot_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KVidyashree/Chatbot/internal/bot"
	"github.com/KVidyashree/Chatbot/internal/index"
	"github.com/KVidyashree/Chatbot/internal/rows"
	"github.com/KVidyashree/Chatbot/internal/websearch"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger.WithField("test", "bot")
}

// stubFetcher returns canned page text and records every URL it was asked
// to fetch.
type stubFetcher struct {
	text string
	ok   bool
	urls []string
}

func (s *stubFetcher) FetchText(ctx context.Context, url string) (string, bool) {
	s.urls = append(s.urls, url)
	return s.text, s.ok
}

// stubWeb records queries passed to the generic web-answer path.
type stubWeb struct {
	answer  websearch.Answer
	ok      bool
	queries []string
}

func (s *stubWeb) Search(ctx context.Context, query string) (websearch.Answer, bool) {
	s.queries = append(s.queries, query)
	return s.answer, s.ok
}

func placementRecord() rows.Record {
	return rows.Record{
		Sheet: "Placements",
		Fields: map[string]string{
			"title": "campus placement details",
			"link":  "https://example.edu/placements",
		},
	}
}

func newRouter(ix *index.Index, pf *stubFetcher, web *stubWeb) *bot.Router {
	return bot.NewRouter(ix, pf, web, bot.DefaultOptions(), testLogger())
}

func TestSmallTalkShortCircuits(t *testing.T) {
	pf := &stubFetcher{}
	web := &stubWeb{}
	router := newRouter(index.Build([]rows.Record{placementRecord()}), pf, web)

	answer := router.Ask(context.Background(), "hi there")

	assert.Equal(t, bot.MethodSmallTalk, answer.MatchMethod)
	assert.NotEmpty(t, answer.Answer)
	assert.Empty(t, pf.urls, "small talk must not fetch")
	assert.Empty(t, web.queries, "small talk must not search the web")
}

func TestSmallTalkDoesNotFireInsideWords(t *testing.T) {
	// "this" contains "hi" but the query is not a greeting.
	web := &stubWeb{ok: true, answer: websearch.Answer{Text: "short answer", SourceURL: "https://w.example"}}
	router := newRouter(index.Build(nil), &stubFetcher{}, web)

	answer := router.Ask(context.Background(), "what is this thing")
	assert.NotEqual(t, bot.MethodSmallTalk, answer.MatchMethod)
}

func TestEmptyIndexDelegatesToWebSearch(t *testing.T) {
	web := &stubWeb{ok: true, answer: websearch.Answer{Text: "The president is the head of state.", SourceURL: "https://en.wikipedia.org/wiki/President"}}
	router := newRouter(index.Build(nil), &stubFetcher{}, web)

	answer := router.Ask(context.Background(), "who is the president")

	require.Equal(t, []string{"who is the president"}, web.queries, "the raw query must reach the provider")
	assert.Equal(t, bot.MethodWebSearch, answer.MatchMethod)
	assert.Equal(t, "The president is the head of state.", answer.Answer)
	assert.Equal(t, "https://en.wikipedia.org/wiki/President", answer.Source)
}

func TestRecordScrapeSuccess(t *testing.T) {
	pageText := strings.Join([]string{
		"Campus placement details for the current year are published below.",
		"Over ninety percent of eligible students received offers.",
		"The highest package went to a computer science graduate.",
		"Placement training starts in the fifth semester.",
		"Recruiters visit campus between January and March.",
		"The cafeteria menu changes weekly.",
		"Parking is available behind the main block.",
	}, "\n")
	require.Greater(t, len(pageText), 80)

	pf := &stubFetcher{text: pageText, ok: true}
	web := &stubWeb{}
	router := newRouter(index.Build([]rows.Record{placementRecord()}), pf, web)

	answer := router.Ask(context.Background(), "campus placement details")

	assert.Equal(t, bot.MethodRecordScrape, answer.MatchMethod)
	assert.Equal(t, "https://example.edu/placements", answer.Source)
	assert.Equal(t, "Placements", answer.Sheet)
	assert.NotEmpty(t, answer.Answer)
	assert.LessOrEqual(t, len(strings.Split(answer.Answer, "\n\n")), 5)
	assert.Greater(t, answer.Confidence, 0.0)
	assert.LessOrEqual(t, answer.Confidence, 1.0)
	assert.Empty(t, web.queries)
	require.Equal(t, []string{"https://example.edu/placements"}, pf.urls)
}

func TestRecordScrapeFetchFailureFallsBackToDump(t *testing.T) {
	pf := &stubFetcher{ok: false}
	router := newRouter(index.Build([]rows.Record{placementRecord()}), pf, &stubWeb{})

	answer := router.Ask(context.Background(), "campus placement details")

	assert.Equal(t, bot.MethodRecordMatch, answer.MatchMethod)
	assert.Empty(t, answer.Source, "a failed fetch must not claim a source")
	assert.Equal(t, "Placements", answer.Sheet)
	assert.Contains(t, answer.Answer, "campus placement details", "the record dump includes the title field")
}

func TestBlockedPageFallsBackToDump(t *testing.T) {
	pf := &stubFetcher{text: "Access denied. Please verify you are human.", ok: true}
	router := newRouter(index.Build([]rows.Record{placementRecord()}), pf, &stubWeb{})

	answer := router.Ask(context.Background(), "campus placement details")

	assert.Equal(t, bot.MethodRecordMatch, answer.MatchMethod)
	assert.Empty(t, answer.Source)
}

func TestShortPageContentFallsBackToDump(t *testing.T) {
	pf := &stubFetcher{text: "tiny", ok: true}
	router := newRouter(index.Build([]rows.Record{placementRecord()}), pf, &stubWeb{})

	answer := router.Ask(context.Background(), "campus placement details")

	assert.Equal(t, bot.MethodRecordMatch, answer.MatchMethod)
	assert.Contains(t, answer.Answer, "placement", "record fields back the limited-content fallback")
}

func TestLowConfidenceDelegatesToWebSearch(t *testing.T) {
	web := &stubWeb{ok: true, answer: websearch.Answer{Text: "web answer text", SourceURL: "https://w.example"}}
	pf := &stubFetcher{}
	router := newRouter(index.Build([]rows.Record{placementRecord()}), pf, web)

	answer := router.Ask(context.Background(), "unrelated gibberish zzyzx")

	assert.Equal(t, bot.MethodWebSearch, answer.MatchMethod)
	assert.Empty(t, pf.urls, "low-confidence matches must not be fetched")
	require.Len(t, web.queries, 1)
}

func TestRecordWithoutLinkDelegatesToWebSearch(t *testing.T) {
	rec := rows.Record{Sheet: "Notes", Fields: map[string]string{"title": "campus placement details"}}
	web := &stubWeb{ok: true, answer: websearch.Answer{Text: "short web answer"}}
	router := newRouter(index.Build([]rows.Record{rec}), &stubFetcher{}, web)

	answer := router.Ask(context.Background(), "campus placement details")
	assert.Equal(t, bot.MethodWebSearch, answer.MatchMethod)
}

func TestWebSearchSummarizesLongResults(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, "A line of search result text about admissions and eligibility criteria for students.")
	}
	web := &stubWeb{ok: true, answer: websearch.Answer{Text: strings.Join(lines, "\n"), SourceURL: "https://w.example"}}
	router := newRouter(index.Build(nil), &stubFetcher{}, web)

	answer := router.Ask(context.Background(), "admission eligibility")

	assert.Equal(t, bot.MethodWebSearch, answer.MatchMethod)
	assert.LessOrEqual(t, len(strings.Split(answer.Answer, "\n\n")), 5)
}

func TestWebSearchNothingFound(t *testing.T) {
	web := &stubWeb{ok: false}
	router := newRouter(index.Build(nil), &stubFetcher{}, web)

	answer := router.Ask(context.Background(), "completely unknown question")

	assert.Equal(t, bot.MethodFallback, answer.MatchMethod)
	assert.Contains(t, answer.Answer, "could not find")
}
