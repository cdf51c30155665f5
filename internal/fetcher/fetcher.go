package fetcher

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// PageFetcher fetches a URL and returns its readable text. The boolean is
// false on any failure: timeouts, network errors, non-2xx responses and
// non-HTML content all surface as "no content", never as an error.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, bool)
}

// Options configure the fetcher built by New.
type Options struct {
	Mode        string // "http" (default) or "browser"
	Timeout     time.Duration
	UserAgent   string
	CheckRobots bool
}

// New builds a fetcher for the configured mode.
func New(opts Options, logger *logrus.Entry) PageFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 25 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Chatbot-Answer-Agent/1.0"
	}
	switch opts.Mode {
	case "browser":
		return NewBrowserFetcher(opts, logger)
	default:
		return NewHTTPFetcher(opts, logger)
	}
}

// blockedPhrases are signatures of anti-automation interstitials. A page
// containing one of them carries no answerable content.
var blockedPhrases = []string{
	"access denied",
	"verify you are human",
	"are you a robot",
	"enable javascript and cookies",
	"unusual traffic",
	"captcha",
	"request blocked",
}

// LooksBlocked reports whether fetched text is an anti-bot interstitial
// rather than real page content.
func LooksBlocked(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range blockedPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
