package mapreduce

import (
	"fmt"
	"io"
	"sort"
)

// WordCount is a single ranked entry.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Rank orders the table by count (descending). Ties are broken by the word in
// ascending byte order so the ranking is reproducible across runs.
func Rank(counts Table) []WordCount {
	ss := make([]WordCount, 0, len(counts))
	for k, v := range counts {
		ss = append(ss, WordCount{Word: k, Count: v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Word < ss[j].Word
	})

	return ss
}

// Top returns at most n ranked entries. A negative n yields nothing.
func Top(counts Table, n int) []WordCount {
	ranked := Rank(counts)

	limit := n
	if len(ranked) < n {
		limit = len(ranked)
	}
	if limit < 0 {
		limit = 0
	}

	return ranked[:limit]
}

// TopKeywords returns the top N keywords formatted as "word:count"
// (e.g., "learning:1153").
func TopKeywords(counts Table, n int) []string {
	top := Top(counts, n)

	keywords := make([]string, len(top))
	for i, wc := range top {
		keywords[i] = fmt.Sprintf("%s:%d", wc.Word, wc.Count)
	}

	return keywords
}

// PrintTopKeywords writes the top N keywords in a numbered list format.
func PrintTopKeywords(w io.Writer, counts []WordCount) {
	for i, wc := range counts {
		fmt.Fprintf(w, "%d. %s: %d\n", i+1, wc.Word, wc.Count)
	}
}
