package models

import (
	"time"

	"github.com/dtnitsch/wiki-word-freq/pkg/mapreduce"
)

// Source tells where an analysis result came from.
type Source string

const (
	SourceCache Source = "cache"
	SourceFresh Source = "fresh"
)

// AnalyzeResponse is the result of analyzing one category.
type AnalyzeResponse struct {
	Category   string                `json:"category" yaml:"category"`
	Words      []mapreduce.WordCount `json:"words" yaml:"words"`
	Source     Source                `json:"source" yaml:"source"`
	TotalWords int                   `json:"total_words" yaml:"total_words"`
	Pages      int                   `json:"pages,omitempty" yaml:"pages,omitempty"`
	Elapsed    time.Duration         `json:"elapsed_ns" yaml:"elapsed"`
}

// CachedCategory describes one record in the cache directory.
type CachedCategory struct {
	Category  string    `json:"category" yaml:"category"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	WordCount int       `json:"word_count" yaml:"word_count"`
	Stale     bool      `json:"stale,omitempty" yaml:"stale,omitempty"`
}

// ErrorInfo provides structured error information for CLI output.
type ErrorInfo struct {
	Type             string   `json:"error_type" yaml:"error_type"`
	Message          string   `json:"message" yaml:"message"`
	SuggestedActions []string `json:"suggested_actions,omitempty" yaml:"suggested_actions,omitempty"`
}
