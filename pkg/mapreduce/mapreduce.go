package mapreduce

// Table maps a word token to the number of times it was seen.
type Table map[string]int

// Tokenizer turns raw text into word tokens.
type Tokenizer interface {
	Normalize(text string) []string
}

// Map generates a word frequency table for a single document's content.
func Map(content string, t Tokenizer) Table {
	counts := make(Table)
	counts.AddTokens(t.Normalize(content))
	return counts
}

// AddTokens counts every token once.
func (t Table) AddTokens(tokens []string) {
	for _, tok := range tokens {
		t[tok]++
	}
}

// Merge adds every count of other into t.
func (t Table) Merge(other Table) {
	for word, count := range other {
		t[word] += count
	}
}

// Total returns the sum of all counts.
func (t Table) Total() int {
	total := 0
	for _, count := range t {
		total += count
	}
	return total
}

// Clone returns an independent copy of t.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for word, count := range t {
		out[word] = count
	}
	return out
}

// Reduce aggregates a slice of word frequency tables into a single table.
func Reduce(intermediate []Table) Table {
	finalResults := make(Table)

	for _, counts := range intermediate {
		finalResults.Merge(counts)
	}

	return finalResults
}
