package wordfreq

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/wiki-word-freq/models"
	"github.com/dtnitsch/wiki-word-freq/pkg/mapreduce"
)

const DefaultTopN = 100

// Request asks for the ranked words of one category.
type Request struct {
	Category string
	// TopN limits the ranked words; zero means DefaultTopN.
	TopN    int
	NoCache bool
}

// Service is the entry point used by the CLI.
type Service struct {
	analyzer *Analyzer
	store    Store
}

func NewService(analyzer *Analyzer, store Store) *Service {
	return &Service{analyzer: analyzer, store: store}
}

// Analyze validates req, runs the analysis and ranks the result by count
// (descending), ties broken alphabetically. The full table stays untouched;
// only the response is truncated to TopN.
func (s *Service) Analyze(ctx context.Context, req Request) (*models.AnalyzeResponse, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if models.StripCategoryPrefix(category) == "" {
		return nil, fmt.Errorf("%w: category %q has no name after the prefix", ErrValidation, req.Category)
	}
	if req.TopN < 0 {
		return nil, fmt.Errorf("%w: top must not be negative, got %d", ErrValidation, req.TopN)
	}
	topN := req.TopN
	if topN == 0 {
		topN = DefaultTopN
	}

	start := time.Now()
	analysis, err := s.analyzer.AnalyzeCategory(ctx, category, !req.NoCache)
	if err != nil {
		return nil, fmt.Errorf("analyzing category %q: %w", category, err)
	}

	if len(analysis.Counts) == 0 {
		if analysis.Pages == 0 {
			return nil, fmt.Errorf("%w: no pages found in category %q", ErrNotFound, category)
		}
		return nil, fmt.Errorf("%w: no words found in category %q", ErrNotFound, category)
	}

	return &models.AnalyzeResponse{
		Category:   category,
		Words:      mapreduce.Top(analysis.Counts, topN),
		Source:     analysis.Source,
		TotalWords: len(analysis.Counts),
		Pages:      analysis.Pages,
		Elapsed:    time.Since(start),
	}, nil
}

// ListCachedCategories returns the categories present in the cache.
func (s *Service) ListCachedCategories() ([]models.CachedCategory, error) {
	return s.store.List()
}
