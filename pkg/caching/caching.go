package caching

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dtnitsch/wiki-word-freq/models"
	"github.com/dtnitsch/wiki-word-freq/pkg/mapreduce"
)

const (
	DefaultTTL = 7 * 24 * time.Hour
	fileExt    = ".json"
)

// Timestamp layouts accepted on read. Records written by older tooling carry
// a naive local ISO-8601 timestamp without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// record is the on-disk JSON shape of a cache entry.
type record struct {
	Category   string          `json:"category"`
	Timestamp  string          `json:"timestamp"`
	WordCounts mapreduce.Table `json:"word_counts"`
}

// Cache is a file-based store of word frequency tables, one file per
// category, with a freshness window.
type Cache struct {
	path   string
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration, opts ...Option) (*Cache, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		path:   path,
		ttl:    ttl,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.path
}

// Key returns the MD5 hex digest of the canonical category name. It is stable
// across processes, so it doubles as the file name of the record.
func (c *Cache) Key(category string) string {
	hash := md5.Sum([]byte(models.CanonicalCategory(category)))
	return fmt.Sprintf("%x", hash)
}

func (c *Cache) filePath(category string) string {
	return filepath.Join(c.path, c.Key(category)+fileExt)
}

// Get retrieves the record for category.
// It returns the record and true if it exists, parses and is not older than
// the TTL. Unreadable or malformed records are logged and reported as a miss.
func (c *Cache) Get(category string) (models.CacheRecord, bool) {
	filePath := c.filePath(category)

	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return models.CacheRecord{}, false // Cache miss
	}
	if err != nil {
		c.logger.Warn("Failed to read cache record", "category", category, "path", filePath, "error", err)
		return models.CacheRecord{}, false
	}

	rec, err := decode(data)
	if err != nil {
		c.logger.Warn("Ignoring malformed cache record", "category", category, "path", filePath, "error", err)
		return models.CacheRecord{}, false
	}

	if age := c.now().Sub(rec.Timestamp); age > c.ttl {
		c.logger.Info("Cache record expired", "category", category, "age", age.Round(time.Second).String())
		return models.CacheRecord{}, false
	}

	return rec, true // Cache hit
}

// Set stores counts for category, replacing any previous record. Empty
// tables are not stored. The write goes to a temporary file that is renamed
// into place, so concurrent writers never leave a torn file behind.
func (c *Cache) Set(category string, counts mapreduce.Table) error {
	if len(counts) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(record{
		Category:   category,
		Timestamp:  c.now().Format(time.RFC3339Nano),
		WordCounts: counts,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache record: %w", err)
	}

	if err := os.MkdirAll(c.path, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	filePath := c.filePath(category)
	tmp, err := os.CreateTemp(c.path, filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	c.logger.Info("Results cached", "category", category, "path", filePath, "words", len(counts))
	return nil
}

// List returns every readable, non-empty record in the cache directory,
// newest first. Expired records are included and flagged as stale.
func (c *Cache) List() ([]models.CachedCategory, error) {
	entries, err := os.ReadDir(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.CachedCategory{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	now := c.now()
	cached := make([]models.CachedCategory, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(c.path, entry.Name()))
		if err != nil {
			c.logger.Warn("Error reading cache file", "file", entry.Name(), "error", err)
			continue
		}
		rec, err := decode(data)
		if err != nil {
			c.logger.Warn("Error reading cache file", "file", entry.Name(), "error", err)
			continue
		}
		if len(rec.WordCounts) == 0 {
			continue
		}

		cached = append(cached, models.CachedCategory{
			Category:  rec.Category,
			Timestamp: rec.Timestamp,
			WordCount: len(rec.WordCounts),
			Stale:     now.Sub(rec.Timestamp) > c.ttl,
		})
	}

	sort.Slice(cached, func(i, j int) bool {
		if !cached[i].Timestamp.Equal(cached[j].Timestamp) {
			return cached[i].Timestamp.After(cached[j].Timestamp)
		}
		return cached[i].Category < cached[j].Category
	})

	return cached, nil
}

func decode(data []byte) (models.CacheRecord, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return models.CacheRecord{}, err
	}
	if r.Timestamp == "" {
		return models.CacheRecord{}, errors.New("missing timestamp")
	}
	ts, err := parseTimestamp(r.Timestamp)
	if err != nil {
		return models.CacheRecord{}, err
	}
	for word, count := range r.WordCounts {
		if count < 0 {
			return models.CacheRecord{}, fmt.Errorf("negative count for %q", word)
		}
	}
	if r.WordCounts == nil {
		r.WordCounts = mapreduce.Table{}
	}
	return models.CacheRecord{
		Category:   r.Category,
		Timestamp:  ts,
		WordCounts: r.WordCounts,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if layout == time.RFC3339Nano {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
