// Package summarize picks the lines of a document most relevant to a query.
// It is purely extractive: lines are scored, ranked and concatenated, never
// rewritten.
package summarize

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KVidyashree/Chatbot/internal/index"
	"github.com/KVidyashree/Chatbot/internal/rank"
)

// Weights blend the three line-level signals: term-frequency cosine
// similarity, token-set overlap, and the fraction of query tokens matched.
// Must sum to 1.0.
type Weights struct {
	Cosine  float64 `yaml:"cosine"`
	Jaccard float64 `yaml:"jaccard"`
	Overlap float64 `yaml:"overlap"`
}

var DefaultWeights = Weights{Cosine: 0.5, Jaccard: 0.3, Overlap: 0.2}

func (w Weights) Validate() error {
	sum := w.Cosine + w.Jaccard + w.Overlap
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("summary weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}

// Options control excerpt size and scoring.
type Options struct {
	MaxLines int
	Weights  Weights
}

// DefaultMaxLines is the calibrated excerpt size.
const DefaultMaxLines = 5

type scoredLine struct {
	text  string
	score float64
}

// Extract returns the MaxLines most relevant lines of text, most relevant
// first, joined by blank lines. The second return is false when the input
// has no usable lines. Excerpt order is ranking order, not document order.
func Extract(text, query string, opts Options) (string, bool) {
	maxLines := opts.MaxLines
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	var lines []scoredLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, scoredLine{text: line})
	}
	if len(lines) == 0 {
		return "", false
	}

	queryTokens := index.Tokenize(query)
	querySet := index.TokenSet(queryTokens)
	queryVec := termVector(queryTokens)

	for i := range lines {
		lineTokens := index.Tokenize(lines[i].text)
		lineSet := index.TokenSet(lineTokens)
		lines[i].score = opts.Weights.Cosine*rank.Cosine(queryVec, termVector(lineTokens)) +
			opts.Weights.Jaccard*rank.Jaccard(querySet, lineSet) +
			opts.Weights.Overlap*overlapRatio(queryTokens, lineSet)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].score > lines[j].score
	})
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n\n"), true
}

// termVector builds a unit-length raw term-frequency vector. Unlike the
// index vectors there is no idf weighting here: a single line has no corpus
// to weigh against.
func termVector(tokens []string) map[string]float64 {
	if len(tokens) == 0 {
		return map[string]float64{}
	}
	vec := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		vec[t]++
	}
	var sumSquares float64
	for _, w := range vec {
		sumSquares += w * w
	}
	norm := math.Sqrt(sumSquares)
	for t, w := range vec {
		vec[t] = w / norm
	}
	return vec
}

// overlapRatio is the fraction of query tokens present in the line.
func overlapRatio(queryTokens []string, lineSet map[string]struct{}) float64 {
	if len(queryTokens) == 0 {
		return 0
	}
	var matched int
	for _, t := range queryTokens {
		if _, ok := lineSet[t]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}
