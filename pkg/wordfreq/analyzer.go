// Package wordfreq runs the category word-frequency pipeline: cache lookup,
// page resolution, per-page counting, aggregation and cache refresh.
package wordfreq

import (
	"context"
	"log/slog"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/dtnitsch/wiki-word-freq/models"
	"github.com/dtnitsch/wiki-word-freq/pkg/analytics"
	"github.com/dtnitsch/wiki-word-freq/pkg/mapreduce"
)

const DefaultWorkers = 4

// PageSource resolves category members and retrieves page text.
type PageSource interface {
	ResolvePages(ctx context.Context, category string) ([]models.PageRef, error)
	FetchContent(ctx context.Context, page models.PageRef) (string, error)
}

// Store persists frequency tables per category.
type Store interface {
	Get(category string) (models.CacheRecord, bool)
	Set(category string, counts mapreduce.Table) error
	List() ([]models.CachedCategory, error)
}

// LanguageFilter decides whether page text is counted.
type LanguageFilter interface {
	IsEnglish(text string) bool
}

// Options configures an Analyzer.
type Options struct {
	Workers   int
	Tokenizer mapreduce.Tokenizer
	// Filter, when set, drops pages it does not accept.
	Filter LanguageFilter
	Logger *slog.Logger
}

// Analysis is the full, unranked outcome of analyzing one category.
type Analysis struct {
	Counts       mapreduce.Table
	Source       models.Source
	Pages        int
	SkippedPages int
}

type Analyzer struct {
	source    PageSource
	store     Store
	tokenizer mapreduce.Tokenizer
	filter    LanguageFilter
	workers   int
	logger    *slog.Logger
	flight    singleflight.Group
}

func NewAnalyzer(source PageSource, store Store, opts Options) *Analyzer {
	a := &Analyzer{
		source:    source,
		store:     store,
		tokenizer: opts.Tokenizer,
		filter:    opts.Filter,
		workers:   opts.Workers,
		logger:    opts.Logger,
	}
	if a.tokenizer == nil {
		a.tokenizer = &analytics.Analytics{}
	}
	if a.workers <= 0 {
		a.workers = DefaultWorkers
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// AnalyzeCategory returns the word frequency table of category.
//
// With useCache a fresh, non-empty cache record is returned as is. Otherwise
// the pages are resolved and counted. A category without pages is not an
// error: it yields an empty table from a fresh analysis. A fresh non-empty
// table is always written to the store, even when useCache is false, so a
// forced refresh also refreshes the cache.
//
// Concurrent calls for the same category share one analysis.
func (a *Analyzer) AnalyzeCategory(ctx context.Context, category string, useCache bool) (*Analysis, error) {
	key := models.CanonicalCategory(category) + "|" + strconv.FormatBool(useCache)

	v, err, shared := a.flight.Do(key, func() (any, error) {
		return a.analyze(ctx, category, useCache)
	})
	if err != nil {
		return nil, err
	}

	res := v.(*Analysis)
	if shared {
		cp := *res
		cp.Counts = res.Counts.Clone()
		return &cp, nil
	}
	return res, nil
}

func (a *Analyzer) analyze(ctx context.Context, category string, useCache bool) (*Analysis, error) {
	logger := a.logger.With("category", category)

	if useCache {
		rec, ok := a.store.Get(category)
		if ok && len(rec.WordCounts) > 0 {
			logger.Info("Loading cached results", "cached_at", rec.Timestamp, "words", len(rec.WordCounts))
			return &Analysis{Counts: rec.WordCounts, Source: models.SourceCache}, nil
		}
	}

	pages, err := a.source.ResolvePages(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		logger.Warn("No pages found in category, cannot analyze word frequencies")
		return &Analysis{Counts: mapreduce.Table{}, Source: models.SourceFresh}, nil
	}

	logger.Info("Starting concurrent page phase", "pages", len(pages), "workers", a.workers)
	results := a.countPages(ctx, logger, pages)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	intermediate := make([]mapreduce.Table, 0, len(results))
	skipped := 0
	for _, r := range results {
		if r.WordCounts == nil {
			skipped++
			continue
		}
		intermediate = append(intermediate, r.WordCounts)
	}
	counts := mapreduce.Reduce(intermediate)
	logger.Info("Reduce phase complete", "pages", len(pages), "skipped", skipped, "words", len(counts), "tokens", counts.Total(), "top", mapreduce.TopKeywords(counts, 5))

	if len(counts) > 0 {
		if err := a.store.Set(category, counts); err != nil {
			logger.Error("Failed to cache results", "error", err)
		}
	} else {
		logger.Warn("No words found in category")
	}

	return &Analysis{
		Counts:       counts,
		Source:       models.SourceFresh,
		Pages:        len(pages),
		SkippedPages: skipped,
	}, nil
}
