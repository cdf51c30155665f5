package rank

import (
	"fmt"
	"math"
	"sort"

	"github.com/KVidyashree/Chatbot/internal/index"
)

// Weights control how the three scoring signals are blended. They must sum
// to 1.0; Validate enforces that before the weights are used.
type Weights struct {
	Cosine     float64 `yaml:"cosine"`
	Jaccard    float64 `yaml:"jaccard"`
	FieldBonus float64 `yaml:"field_bonus"`
}

// DefaultWeights is the calibrated blend of tf-idf cosine similarity,
// token-set overlap and title-field bonus.
var DefaultWeights = Weights{Cosine: 0.55, Jaccard: 0.25, FieldBonus: 0.20}

func (w Weights) Validate() error {
	sum := w.Cosine + w.Jaccard + w.FieldBonus
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("ranking weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}

// TitleFields are the record fields that earn a match bonus when query
// tokens appear in them.
var TitleFields = []string{"title", "name", "topic"}

const (
	fieldBonusStep = 0.15
	fieldBonusCap  = 0.5
)

// Result is one document scored against a query. Confidence is the score
// normalized by the best score in the same ranking: exactly 1.0 for the top
// result whenever any score is positive.
type Result struct {
	Doc        *index.Document
	Score      float64
	Confidence float64
}

// Rank scores every document in the index against the query and returns the
// results sorted descending by score. Ties keep document order (stable
// sort). An empty index yields an empty slice.
func Rank(ix *index.Index, query string, w Weights) []Result {
	if ix.Empty() {
		return nil
	}

	queryVec := ix.QueryVector(query)
	queryTokens := index.Tokenize(query)
	querySet := index.TokenSet(queryTokens)

	results := make([]Result, len(ix.Docs))
	for i := range ix.Docs {
		doc := &ix.Docs[i]
		score := w.Cosine*Cosine(queryVec, doc.Vector) +
			w.Jaccard*Jaccard(querySet, doc.TokenSet) +
			w.FieldBonus*titleBonus(doc, queryTokens)
		results[i] = Result{Doc: doc, Score: score}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if top := results[0].Score; top > 0 {
		for i := range results {
			results[i].Confidence = results[i].Score / top
		}
	}
	return results
}

// Cosine computes the sparse dot product of two vectors, iterating the
// smaller one. For unit-length inputs this is the cosine similarity, in
// [0,1].
func Cosine(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	return dot
}

// Jaccard computes set-overlap similarity. The union denominator is floored
// at 1 so two empty sets score 0 rather than dividing by zero.
func Jaccard(a, b map[string]struct{}) float64 {
	var intersection int
	if len(b) < len(a) {
		a, b = b, a
	}
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union < 1 {
		union = 1
	}
	return float64(intersection) / float64(union)
}

// titleBonus adds a fixed increment for every query token found in a
// title-like field of the record, capped at fieldBonusCap.
func titleBonus(doc *index.Document, queryTokens []string) float64 {
	var bonus float64
	for _, field := range TitleFields {
		value := doc.Record.Get(field)
		if value == "" {
			continue
		}
		fieldSet := index.TokenSet(index.Tokenize(value))
		for _, qt := range queryTokens {
			if _, ok := fieldSet[qt]; ok {
				bonus += fieldBonusStep
			}
		}
	}
	if bonus > fieldBonusCap {
		bonus = fieldBonusCap
	}
	return bonus
}
