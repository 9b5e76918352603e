package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wiki-word-freq/internal/analyze"
	"github.com/dtnitsch/wiki-word-freq/internal/cached"
	"github.com/dtnitsch/wiki-word-freq/pkg/help"
	"github.com/dtnitsch/wiki-word-freq/pkg/wordfreq"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	configFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "wiki-word-freq.yaml",
			Usage: "YAML config file (missing file means defaults)",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Directory holding cached category results",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "Output format: text, json or yaml",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "Only log errors",
		},
	}

	return &cli.App{
		Name:  "wiki-word-freq",
		Usage: "Word frequencies across the articles of a Wikipedia category",
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Count the most frequent words of a category",
				ArgsUsage: "<category>",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Value: wordfreq.DefaultTopN,
						Usage: "Number of ranked words to print",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Ignore cached results (the fresh result is still cached)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent page fetches",
					},
					&cli.BoolFlag{
						Name:  "english-only",
						Usage: "Skip pages not detected as English",
					},
					&cli.BoolFlag{
						Name:  "article-fallback",
						Usage: "Read the rendered article when a page has no extract",
					},
				}, configFlags...),
				Action: analyze.AnalyzeAction,
			},
			{
				Name:   "cached",
				Usage:  "List cached categories",
				Flags:  configFlags,
				Action: cached.CachedAction,
			},
			{
				Name:  "coldstart",
				Usage: "Print a quick start guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}
}
