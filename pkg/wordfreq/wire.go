package wordfreq

import (
	"log/slog"

	"github.com/dtnitsch/wiki-word-freq/models"
	"github.com/dtnitsch/wiki-word-freq/pkg/analytics"
	"github.com/dtnitsch/wiki-word-freq/pkg/caching"
	"github.com/dtnitsch/wiki-word-freq/pkg/detector"
	"github.com/dtnitsch/wiki-word-freq/pkg/fetcher"
	"github.com/dtnitsch/wiki-word-freq/pkg/wiki"
)

// NewFromConfig builds a Service backed by the MediaWiki API and the file
// cache described by cfg. It also configures the process-wide stop-word
// loader.
func NewFromConfig(cfg *models.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f := fetcher.NewFetcher(
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithUserAgent(cfg.UserAgent),
	)

	analytics.InitStopWords(analytics.StopWordLoader{
		Path:    cfg.StopWordsPath,
		URL:     cfg.StopWordsURL,
		Fetcher: f,
		Logger:  logger,
	})

	store, err := caching.NewCache(cfg.CacheDir, cfg.CacheTTL, caching.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	client := wiki.NewClient(f, wiki.Options{
		APIURL:          cfg.APIURL,
		SiteURL:         cfg.SiteURL,
		MaxPages:        cfg.MaxPages,
		ExtractFormat:   cfg.ExtractFormat,
		ArticleFallback: cfg.ArticleFallback,
		Logger:          logger,
	})

	opts := Options{
		Workers:   cfg.WorkerCount,
		Tokenizer: &analytics.Analytics{},
		Logger:    logger,
	}
	if cfg.EnglishOnly {
		opts.Filter = detector.NewLanguageDetector()
	}

	return NewService(NewAnalyzer(client, store, opts), store), nil
}
