package analytics

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dtnitsch/wiki-word-freq/pkg/fetcher"
)

//go:embed english.txt
var embeddedEnglish []byte

// StopWordLoader describes where the stop-word list comes from.
//
// Path is read first. When it does not exist and URL is set, the list is
// downloaded, saved to Path and used. Anything else falls back to the
// embedded English list.
type StopWordLoader struct {
	Path    string
	URL     string
	Fetcher *fetcher.Fetcher
	Logger  *slog.Logger
}

var (
	stopMu     sync.Mutex
	stopLoader StopWordLoader
	stopSet    map[string]struct{}
)

// InitStopWords configures the process-wide loader. The list is (re)loaded
// lazily on the next call to StopWords.
func InitStopWords(l StopWordLoader) {
	stopMu.Lock()
	defer stopMu.Unlock()
	stopLoader = l
	stopSet = nil
}

// ResetStopWords drops the loaded list and the configured loader.
func ResetStopWords() {
	InitStopWords(StopWordLoader{})
}

// StopWords returns the process-wide stop-word set, loading it on first use.
// The returned map must not be modified.
func StopWords() map[string]struct{} {
	stopMu.Lock()
	defer stopMu.Unlock()
	if stopSet == nil {
		stopSet = stopLoader.Load(context.Background())
	}
	return stopSet
}

// Load resolves the stop-word list. It never fails: every error degrades to
// the embedded list.
func (l StopWordLoader) Load(ctx context.Context) map[string]struct{} {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if l.Path != "" {
		data, err := os.ReadFile(l.Path)
		switch {
		case err == nil:
			return parseStopWords(data)
		case errors.Is(err, fs.ErrNotExist) && l.URL != "":
			data, err := l.download(ctx)
			if err == nil {
				logger.Info("Downloaded stop-word list", "url", l.URL, "path", l.Path)
				return parseStopWords(data)
			}
			logger.Warn("Failed to download stop-word list, using embedded list", "url", l.URL, "error", err)
		case !errors.Is(err, fs.ErrNotExist):
			logger.Warn("Failed to read stop-word list, using embedded list", "path", l.Path, "error", err)
		}
	}

	return parseStopWords(embeddedEnglish)
}

func (l StopWordLoader) download(ctx context.Context) ([]byte, error) {
	f := l.Fetcher
	if f == nil {
		f = fetcher.NewFetcher()
	}
	data, err := f.GetBytes(ctx, l.URL, nil)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(l.Path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create stop-word directory: %w", err)
	}
	if err := os.WriteFile(l.Path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to save stop-word list: %w", err)
	}
	return data, nil
}

// parseStopWords reads one word per line. Blank lines and lines starting
// with '#' are ignored.
func parseStopWords(data []byte) map[string]struct{} {
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	return set
}
