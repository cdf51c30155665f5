package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

// HTTPFetcher downloads pages with a plain HTTP client and extracts their
// text. Robots.txt is honored when enabled, with per-host caching.
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	checkRobots bool
	logger      *logrus.Entry

	mu     sync.Mutex
	robots map[string]*robotstxt.RobotsData
}

func NewHTTPFetcher(opts Options, logger *logrus.Entry) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:   opts.UserAgent,
		checkRobots: opts.CheckRobots,
		logger:      logger,
		robots:      make(map[string]*robotstxt.RobotsData),
	}
}

// FetchText downloads the page and returns its readable text. Every failure
// mode is reported as (_, false); nothing propagates as an error.
func (f *HTTPFetcher) FetchText(ctx context.Context, pageURL string) (string, bool) {
	if f.checkRobots && !f.allowed(ctx, pageURL) {
		f.logger.WithField("url", pageURL).Debug("Fetch disallowed by robots.txt")
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.WithError(err).WithField("url", pageURL).Debug("Fetch failed")
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.WithFields(logrus.Fields{"url": pageURL, "status": resp.StatusCode}).Debug("Fetch returned non-2xx")
		return "", false
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "text/plain") {
		return "", false
	}

	text, err := ExtractText(resp.Body)
	if err != nil {
		f.logger.WithError(err).WithField("url", pageURL).Debug("Failed to parse page")
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// allowed consults the host's robots.txt, fetching and caching it on first
// use. Hosts whose robots.txt cannot be fetched are treated as allowed.
func (f *HTTPFetcher) allowed(ctx context.Context, pageURL string) bool {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	data := f.robotsData(ctx, parsed)
	if data == nil {
		return true
	}
	return data.FindGroup(f.userAgent).Test(parsed.Path)
}

func (f *HTTPFetcher) robotsData(ctx context.Context, page *url.URL) *robotstxt.RobotsData {
	f.mu.Lock()
	if data, ok := f.robots[page.Host]; ok {
		f.mu.Unlock()
		return data
	}
	f.mu.Unlock()

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", page.Scheme, page.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", f.userAgent)

	var data *robotstxt.RobotsData
	if resp, err := f.client.Do(req); err == nil {
		data, _ = robotstxt.FromResponse(resp)
		resp.Body.Close()
	}

	f.mu.Lock()
	f.robots[page.Host] = data
	f.mu.Unlock()
	return data
}
