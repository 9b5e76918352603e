package models

import (
	"time"

	"github.com/dtnitsch/wiki-word-freq/pkg/mapreduce"
)

// MainNamespace is the MediaWiki namespace of regular articles.
const MainNamespace = 0

// PageRef identifies one member of a category.
type PageRef struct {
	Title     string `json:"title" yaml:"title"`
	Namespace int    `json:"ns" yaml:"ns"`
}

// IsArticle reports whether the page is eligible for content analysis.
func (p PageRef) IsArticle() bool {
	return p.Namespace == MainNamespace
}

// CacheRecord is the on-disk form of one analyzed category.
type CacheRecord struct {
	Category   string          `json:"category"`
	Timestamp  time.Time       `json:"-"`
	WordCounts mapreduce.Table `json:"word_counts"`
}
