// Package common holds helpers shared by the CLI actions.
package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/wiki-word-freq/models"
	"github.com/dtnitsch/wiki-word-freq/pkg/wordfreq"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Exit codes returned by the CLI.
const (
	ExitValidation = 1
	ExitNotFound   = 2
)

// NewLogger returns the JSON logger used by every command. Quiet mode only
// reports errors.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads --config and applies the flag overrides that were set.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("english-only") {
		cfg.EnglishOnly = c.Bool("english-only")
	}
	if c.IsSet("article-fallback") {
		cfg.ArticleFallback = c.Bool("article-fallback")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateFormat rejects unknown --format values.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (expected text, json or yaml)", format)
}

// Write renders v as JSON or YAML. The text format is delegated to text.
func Write(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case FormatJSON:
		outputData, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(outputData))
		return err
	case FormatYAML:
		outputData, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		_, err = w.Write(outputData)
		return err
	default:
		text(w)
		return nil
	}
}

// Fail turns err into a cli exit error with the code matching its kind. For
// structured formats an ErrorInfo document is written to w as well.
func Fail(w io.Writer, format string, err error) error {
	info, code := Describe(err)
	if format == FormatJSON || format == FormatYAML {
		_ = Write(w, format, info, nil)
	}
	return cli.Exit(err.Error(), code)
}

// Describe classifies err for output.
func Describe(err error) (models.ErrorInfo, int) {
	switch {
	case errors.Is(err, wordfreq.ErrValidation):
		return models.ErrorInfo{
			Type:             "validation_error",
			Message:          err.Error(),
			SuggestedActions: []string{"Pass a non-empty category name, e.g. \"Machine learning\""},
		}, ExitValidation
	case errors.Is(err, wordfreq.ErrNotFound):
		return models.ErrorInfo{
			Type:    "not_found",
			Message: err.Error(),
			SuggestedActions: []string{
				"Check the category name on the wiki",
				"Try without underscores or with different capitalization",
			},
		}, ExitNotFound
	default:
		return models.ErrorInfo{Type: "error", Message: err.Error()}, ExitValidation
	}
}
