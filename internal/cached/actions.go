package cached

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wiki-word-freq/internal/common"
	"github.com/dtnitsch/wiki-word-freq/models"
	"github.com/dtnitsch/wiki-word-freq/pkg/caching"
)

// CachedAction lists the categories that have a cache record, newest first.
func CachedAction(c *cli.Context) error {
	format := c.String("format")
	if err := common.ValidateFormat(format); err != nil {
		return cli.Exit(err.Error(), common.ExitValidation)
	}

	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), common.ExitValidation)
	}

	// Listing only needs the cache, so the analyzer is not built here.
	cache, err := caching.NewCache(cfg.CacheDir, cfg.CacheTTL, caching.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	entries, err := cache.List()
	if err != nil {
		return fmt.Errorf("failed to list cache: %w", err)
	}
	if entries == nil {
		entries = []models.CachedCategory{}
	}

	return common.Write(os.Stdout, format, entries, func(w io.Writer) { printText(w, entries) })
}

func printText(w io.Writer, entries []models.CachedCategory) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No cached categories.")
		return
	}
	for _, e := range entries {
		stale := ""
		if e.Stale {
			stale = " (stale)"
		}
		fmt.Fprintf(w, "%s\t%d words\t%s%s\n", e.Category, e.WordCount, e.Timestamp.Format(time.RFC3339), stale)
	}
}
