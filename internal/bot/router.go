// Package bot routes each question through a small state machine: small
// talk, indexed-record answer, record plus fetched-page summary, or generic
// web answer. Every branch ends in a valid answer; nothing propagates as a
// request failure.
package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/KVidyashree/Chatbot/internal/fetcher"
	"github.com/KVidyashree/Chatbot/internal/index"
	"github.com/KVidyashree/Chatbot/internal/rank"
	"github.com/KVidyashree/Chatbot/internal/summarize"
	"github.com/KVidyashree/Chatbot/internal/websearch"
)

// Match methods name the router branch that produced an answer.
const (
	MethodSmallTalk    = "small-talk"
	MethodRecordMatch  = "record-match"
	MethodRecordScrape = "record-scrape"
	MethodWebSearch    = "web-search"
	MethodFallback     = "fallback"
	MethodError        = "error"
)

// Answer is the response payload for one question.
type Answer struct {
	Answer      string  `json:"answer"`
	Source      string  `json:"source,omitempty"`
	Sheet       string  `json:"sheet,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	MatchMethod string  `json:"matchMethod"`
}

// Options hold the router's tunables. The confidence threshold varies per
// deployment (useful range 0.05 to 0.40); it is configuration, never a
// constant baked into branch logic.
type Options struct {
	MinConfidence      float64
	SummaryMaxLines    int
	SummaryMinChars    int
	ShortAbstractChars int
	RankWeights        rank.Weights
	SummaryWeights     summarize.Weights
	SmallTalk          []SmallTalkEntry
}

// DefaultOptions returns the calibrated defaults.
func DefaultOptions() Options {
	return Options{
		MinConfidence:      0.15,
		SummaryMaxLines:    summarize.DefaultMaxLines,
		SummaryMinChars:    40,
		ShortAbstractChars: 400,
		RankWeights:        rank.DefaultWeights,
		SummaryWeights:     summarize.DefaultWeights,
		SmallTalk:          DefaultSmallTalk,
	}
}

// Router owns the prebuilt index and the two network collaborators. The
// index is read-only here; concurrent requests share it safely.
type Router struct {
	Index   *index.Index
	Fetcher fetcher.PageFetcher
	Web     websearch.Provider
	Logger  *logrus.Entry
	Opts    Options
}

func NewRouter(ix *index.Index, pf fetcher.PageFetcher, web websearch.Provider, opts Options, logger *logrus.Entry) *Router {
	if opts.SummaryMaxLines <= 0 {
		opts.SummaryMaxLines = summarize.DefaultMaxLines
	}
	if opts.SmallTalk == nil {
		opts.SmallTalk = DefaultSmallTalk
	}
	return &Router{Index: ix, Fetcher: pf, Web: web, Logger: logger, Opts: opts}
}

// Router states. Each request walks these until a branch emits a terminal
// answer.
type state int

const (
	stateSmallTalk state = iota
	stateEmptyIndex
	stateRank
	stateFetch
	stateWebSearch
)

// Ask answers one question. It always returns a usable answer: fetch and
// search failures degrade into fallback branches rather than errors.
func (r *Router) Ask(ctx context.Context, question string) Answer {
	question = strings.TrimSpace(question)

	var top rank.Result
	st := stateSmallTalk
	for {
		switch st {
		case stateSmallTalk:
			if reply, ok := smallTalkReply(question, r.Opts.SmallTalk); ok {
				return Answer{Answer: reply, MatchMethod: MethodSmallTalk}
			}
			st = stateEmptyIndex

		case stateEmptyIndex:
			if r.Index.Empty() {
				st = stateWebSearch
				continue
			}
			st = stateRank

		case stateRank:
			results := rank.Rank(r.Index, question, r.Opts.RankWeights)
			top = results[0]
			r.Logger.WithFields(logrus.Fields{
				"score": top.Score,
				"sheet": top.Doc.Record.Sheet,
			}).Debug("Ranked records")

			// The top result's normalized confidence is 1.0 by
			// construction, so the routing gate compares its raw
			// blended score against the threshold.
			if top.Score < r.Opts.MinConfidence || top.Doc.Record.Link() == "" {
				st = stateWebSearch
				continue
			}
			st = stateFetch

		case stateFetch:
			return r.fetchAndSummarize(ctx, question, top)

		case stateWebSearch:
			return r.webAnswer(ctx, question)
		}
	}
}

// fetchAndSummarize pulls the matched record's source page and extracts the
// lines most relevant to the question. Fetch failures and blocked pages fall
// back to a structured dump of the record itself.
func (r *Router) fetchAndSummarize(ctx context.Context, question string, top rank.Result) Answer {
	link := top.Doc.Record.Link()

	text, ok := r.Fetcher.FetchText(ctx, link)
	if !ok || fetcher.LooksBlocked(text) {
		return r.recordDump(top, "The source page could not be reached or blocked automated access, so here is the record itself.")
	}

	summary, ok := summarize.Extract(text, question, summarize.Options{
		MaxLines: r.Opts.SummaryMaxLines,
		Weights:  r.Opts.SummaryWeights,
	})
	if !ok || len(summary) < r.Opts.SummaryMinChars {
		return r.recordDump(top, "The source page had very little readable content, so here is the record itself.")
	}

	return Answer{
		Answer:      summary,
		Source:      link,
		Sheet:       top.Doc.Record.Sheet,
		Confidence:  top.Score,
		MatchMethod: MethodRecordScrape,
	}
}

// recordDump answers with the matched record's own fields plus a note on
// why the page content is missing.
func (r *Router) recordDump(top rank.Result, note string) Answer {
	return Answer{
		Answer:      fmt.Sprintf("%s\n\n%s", note, top.Doc.Record.Dump()),
		Sheet:       top.Doc.Record.Sheet,
		Confidence:  top.Score,
		MatchMethod: MethodRecordMatch,
	}
}

// webAnswer delegates to the generic web-answer provider. Short abstracts
// pass through untouched; longer result text is summarized against the
// question first.
func (r *Router) webAnswer(ctx context.Context, question string) Answer {
	result, ok := r.Web.Search(ctx, question)
	text := strings.TrimSpace(result.Text)
	if !ok || text == "" {
		return Answer{
			Answer:      "Sorry, I could not find any information on that. Try rephrasing your question.",
			MatchMethod: MethodFallback,
		}
	}

	if len(text) <= r.Opts.ShortAbstractChars {
		return Answer{Answer: text, Source: result.SourceURL, MatchMethod: MethodWebSearch}
	}

	summary, ok := summarize.Extract(text, question, summarize.Options{
		MaxLines: r.Opts.SummaryMaxLines,
		Weights:  r.Opts.SummaryWeights,
	})
	if !ok || len(summary) < r.Opts.SummaryMinChars {
		summary = truncate(text, r.Opts.ShortAbstractChars)
	}
	return Answer{Answer: summary, Source: result.SourceURL, MatchMethod: MethodWebSearch}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "..."
}
