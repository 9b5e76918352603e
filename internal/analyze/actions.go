package analyze

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wiki-word-freq/internal/common"
	"github.com/dtnitsch/wiki-word-freq/models"
	"github.com/dtnitsch/wiki-word-freq/pkg/mapreduce"
	"github.com/dtnitsch/wiki-word-freq/pkg/wordfreq"
)

func AnalyzeAction(c *cli.Context) error {
	format := c.String("format")
	if err := common.ValidateFormat(format); err != nil {
		return cli.Exit(err.Error(), common.ExitValidation)
	}
	if c.NArg() == 0 {
		return common.Fail(os.Stdout, format, fmt.Errorf("%w: category argument is required", wordfreq.ErrValidation))
	}

	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return common.Fail(os.Stdout, format, fmt.Errorf("%w: %w", wordfreq.ErrValidation, err))
	}

	svc, err := wordfreq.NewFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize analyzer: %w", err)
	}

	resp, err := svc.Analyze(c.Context, wordfreq.Request{
		Category: c.Args().First(),
		TopN:     c.Int("top"),
		NoCache:  c.Bool("no-cache"),
	})
	if err != nil {
		logger.Error("Analysis failed", "category", c.Args().First(), "error", err)
		return common.Fail(os.Stdout, format, err)
	}

	logger.Info("Analysis complete", "category", resp.Category, "source", resp.Source, "words", resp.TotalWords, "elapsed", resp.Elapsed)
	return common.Write(os.Stdout, format, resp, func(w io.Writer) { printText(w, resp) })
}

func printText(w io.Writer, resp *models.AnalyzeResponse) {
	fmt.Fprintf(w, "Top %d words in category %q (%s, %d distinct words):\n", len(resp.Words), resp.Category, resp.Source, resp.TotalWords)
	mapreduce.PrintTopKeywords(w, resp.Words)
}
