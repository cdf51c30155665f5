package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/KVidyashree/Chatbot/internal/api"
	"github.com/KVidyashree/Chatbot/internal/bot"
	"github.com/KVidyashree/Chatbot/internal/config"
	"github.com/KVidyashree/Chatbot/internal/fetcher"
	"github.com/KVidyashree/Chatbot/internal/index"
	"github.com/KVidyashree/Chatbot/internal/rank"
	"github.com/KVidyashree/Chatbot/internal/rows"
	"github.com/KVidyashree/Chatbot/internal/summarize"
	"github.com/KVidyashree/Chatbot/internal/websearch"
)

func main() {
	// Setup logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "chatbot-api")

	entry.Info("Starting tabular QA service")

	// 1. Config
	_ = godotenv.Load()
	cfg := config.Load()

	tunables, err := config.LoadTunables(cfg.Answer.TunablesFile)
	if err != nil {
		entry.Fatalf("Failed to load tunables: %v", err)
	}
	cfg.Answer.Apply(tunables)

	// 2. Knowledge base. Load failures are non-fatal: the service keeps
	// running with an empty index and routes everything to web search.
	records := loadRecords(cfg.Rows, entry)

	// 3. Index, built once before the server accepts traffic and
	// read-only afterwards.
	ix := index.Build(records)
	entry.Infof("Indexed %d records across %d terms", ix.N, len(ix.IDF))

	// 4. Collaborators
	pageFetcher := fetcher.New(fetcher.Options{
		Mode:        cfg.Fetcher.Mode,
		Timeout:     cfg.Fetcher.Timeout,
		UserAgent:   cfg.Fetcher.UserAgent,
		CheckRobots: cfg.Fetcher.EnableRobotsCheck,
	}, entry.WithField("component", "fetcher"))

	web := websearch.NewDuckDuckGo(pageFetcher, cfg.Answer.WebSearchTimeout, entry.WithField("component", "websearch"))

	// 5. Router
	opts, err := routerOptions(cfg.Answer, tunables)
	if err != nil {
		entry.Fatalf("Invalid tunables: %v", err)
	}
	router := bot.NewRouter(ix, pageFetcher, web, opts, entry.WithField("component", "router"))

	// 6. API server
	server := api.NewServer(router, cfg.Server.StaticDir, entry)
	if err := server.Start(cfg.Server.Addr); err != nil {
		entry.Fatal(err)
	}
}

// loadRecords picks the configured row source and loads it, degrading to an
// empty record set on any load error.
func loadRecords(cfg config.RowsConfig, log *logrus.Entry) []rows.Record {
	var source rows.RowSource
	switch {
	case cfg.XLSXPath != "" && fileExists(cfg.XLSXPath):
		source = rows.NewXLSXSource(cfg.XLSXPath)
	case cfg.CSVPath != "" && fileExists(cfg.CSVPath):
		source = rows.NewCSVSource(cfg.CSVPath)
	default:
		log.Warn("No knowledge base file found; answering via web search only")
		return nil
	}

	records, err := source.Load()
	if err != nil {
		log.WithError(err).Warn("Failed to load knowledge base; continuing with empty index")
		return nil
	}
	return records
}

// routerOptions maps config and the optional tunables overlay onto the
// router's options, validating that both weight sets sum to 1.0.
func routerOptions(cfg config.AnswerConfig, t *config.Tunables) (bot.Options, error) {
	opts := bot.DefaultOptions()
	opts.MinConfidence = cfg.MinConfidence
	opts.SummaryMaxLines = cfg.SummaryMaxLines
	opts.SummaryMinChars = cfg.SummaryMinChars
	opts.ShortAbstractChars = cfg.ShortAbstractChars

	if t != nil {
		if t.RankWeights != nil {
			opts.RankWeights = rank.Weights{
				Cosine:     t.RankWeights.Cosine,
				Jaccard:    t.RankWeights.Jaccard,
				FieldBonus: t.RankWeights.FieldBonus,
			}
		}
		if t.SummaryWeights != nil {
			opts.SummaryWeights = summarize.Weights{
				Cosine:  t.SummaryWeights.Cosine,
				Jaccard: t.SummaryWeights.Jaccard,
				Overlap: t.SummaryWeights.Overlap,
			}
		}
		if len(t.SmallTalk) > 0 {
			table := make([]bot.SmallTalkEntry, len(t.SmallTalk))
			for i, p := range t.SmallTalk {
				table[i] = bot.SmallTalkEntry{Phrase: p.Phrase, Reply: p.Reply}
			}
			opts.SmallTalk = table
		}
	}

	if err := opts.RankWeights.Validate(); err != nil {
		return bot.Options{}, err
	}
	if err := opts.SummaryWeights.Validate(); err != nil {
		return bot.Options{}, err
	}
	return opts, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
