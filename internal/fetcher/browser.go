package fetcher

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// BrowserFetcher renders pages in headless Chrome before extracting text,
// for sources that serve nothing useful without JavaScript.
type BrowserFetcher struct {
	userAgent string
	timeout   time.Duration
	logger    *logrus.Entry
}

func NewBrowserFetcher(opts Options, logger *logrus.Entry) *BrowserFetcher {
	return &BrowserFetcher{
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
		logger:    logger,
	}
}

func (bf *BrowserFetcher) FetchText(ctx context.Context, pageURL string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, bf.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(bf.userAgent),
		chromedp.Flag("disable-downloads", true),
		chromedp.Flag("disable-plugins", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		bf.logger.WithError(err).WithField("url", pageURL).Debug("Browser fetch failed")
		return "", false
	}

	text, err := ExtractText(strings.NewReader(htmlContent))
	if err != nil || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
