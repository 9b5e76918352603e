package wordfreq

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dtnitsch/wiki-word-freq/models"
	"github.com/dtnitsch/wiki-word-freq/pkg/mapreduce"
)

// Job is one page to fetch and count.
type Job struct {
	Index int
	Page  models.PageRef
}

// Result holds the outcome of a processed job.
type Result struct {
	Page       models.PageRef
	WordCounts mapreduce.Table
	Error      error
	ErrorType  string
}

const (
	errorTypeFetch    = "fetch_error"
	errorTypeLanguage = "language_skipped"
	errorTypeCanceled = "canceled"
)

// worker is a goroutine that processes jobs from the jobs channel
// and sends results to the results channel.
func (a *Analyzer) worker(ctx context.Context, id int, logger *slog.Logger, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		result := Result{Page: job.Page}

		if err := ctx.Err(); err != nil {
			result.Error = err
			result.ErrorType = errorTypeCanceled
			results <- result
			continue
		}

		logger.Debug("Processing page", "worker_id", id, "index", job.Index+1, "page", job.Page.Title)
		content, err := a.source.FetchContent(ctx, job.Page)
		if err != nil {
			logger.Error("Error fetching page content, skipping page", "worker_id", id, "page", job.Page.Title, "error", err)
			result.Error = err
			result.ErrorType = errorTypeFetch
			results <- result
			continue
		}

		if a.filter != nil && !a.filter.IsEnglish(content) {
			logger.Info("Skipping non-English page", "worker_id", id, "page", job.Page.Title)
			result.ErrorType = errorTypeLanguage
			results <- result
			continue
		}

		result.WordCounts = mapreduce.Map(content, a.tokenizer)
		results <- result
	}
}

// countPages fetches and counts every page with a bounded pool of workers and
// returns the per-page results in completion order.
func (a *Analyzer) countPages(ctx context.Context, logger *slog.Logger, pages []models.PageRef) []Result {
	workerCount := a.workers
	if workerCount > len(pages) {
		workerCount = len(pages)
	}

	var wg sync.WaitGroup
	jobs := make(chan Job, len(pages))
	results := make(chan Result, len(pages))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go a.worker(ctx, w, logger, &wg, jobs, results)
	}

	for i, page := range pages {
		jobs <- Job{Index: i, Page: page}
	}
	close(jobs)

	wg.Wait()
	close(results)

	all := make([]Result, 0, len(pages))
	for result := range results {
		all = append(all, result)
	}
	return all
}
