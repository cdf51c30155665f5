// Package websearch provides the generic web-answer path used when the
// indexed records cannot answer a question with enough confidence.
package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KVidyashree/Chatbot/internal/fetcher"
)

// Answer is a best-effort web result: free text plus where it came from.
type Answer struct {
	Text      string
	SourceURL string
}

// Provider turns a raw query into a web answer. The boolean is false when
// nothing usable was found; providers never return errors.
type Provider interface {
	Search(ctx context.Context, query string) (Answer, bool)
}

// DuckDuckGo answers through the instant-answer JSON API first and falls
// back to scraping the HTML results page through the page fetcher.
type DuckDuckGo struct {
	APIBaseURL  string
	HTMLBaseURL string

	client  *http.Client
	fetcher fetcher.PageFetcher
	logger  *logrus.Entry
}

func NewDuckDuckGo(pf fetcher.PageFetcher, timeout time.Duration, logger *logrus.Entry) *DuckDuckGo {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DuckDuckGo{
		APIBaseURL:  "https://api.duckduckgo.com/",
		HTMLBaseURL: "https://html.duckduckgo.com/html/",
		client:      &http.Client{Timeout: timeout},
		fetcher:     pf,
		logger:      logger,
	}
}

type instantAnswer struct {
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	Answer        string `json:"Answer"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (d *DuckDuckGo) Search(ctx context.Context, query string) (Answer, bool) {
	if ans, ok := d.instant(ctx, query); ok {
		return ans, true
	}
	return d.scrapeResults(ctx, query)
}

// instant queries the instant-answer API, which returns short abstracts for
// well-known entities.
func (d *DuckDuckGo) instant(ctx context.Context, query string) (Answer, bool) {
	endpoint := d.APIBaseURL + "?" + url.Values{
		"q":       {query},
		"format":  {"json"},
		"no_html": {"1"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Answer{}, false
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.WithError(err).Debug("Instant-answer request failed")
		return Answer{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Answer{}, false
	}

	var ia instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&ia); err != nil {
		return Answer{}, false
	}

	switch {
	case strings.TrimSpace(ia.AbstractText) != "":
		return Answer{Text: ia.AbstractText, SourceURL: ia.AbstractURL}, true
	case strings.TrimSpace(ia.Answer) != "":
		return Answer{Text: ia.Answer, SourceURL: ia.AbstractURL}, true
	}
	for _, topic := range ia.RelatedTopics {
		if strings.TrimSpace(topic.Text) != "" {
			return Answer{Text: topic.Text, SourceURL: topic.FirstURL}, true
		}
	}
	return Answer{}, false
}

// scrapeResults fetches the HTML results page and hands its text back for
// the caller to summarize.
func (d *DuckDuckGo) scrapeResults(ctx context.Context, query string) (Answer, bool) {
	searchURL := d.HTMLBaseURL + "?" + url.Values{"q": {query}}.Encode()
	text, ok := d.fetcher.FetchText(ctx, searchURL)
	if !ok || fetcher.LooksBlocked(text) {
		return Answer{}, false
	}
	return Answer{Text: text, SourceURL: searchURL}, true
}
