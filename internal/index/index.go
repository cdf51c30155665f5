package index

import (
	"math"

	"github.com/KVidyashree/Chatbot/internal/rows"
)

// Document is the indexed form of one record: its token sequence, term
// frequencies and L2-normalized tf-idf vector.
type Document struct {
	Record   rows.Record
	Tokens   []string
	TermFreq map[string]int
	Vector   map[string]float64
	TokenSet map[string]struct{}
}

// Index holds every document plus the corpus-wide IDF table. It is built
// once at startup and only read afterwards; request handling never mutates
// it.
type Index struct {
	Docs []Document
	IDF  map[string]float64
	N    int
}

// Build derives a document per record and computes the IDF table over the
// whole corpus. The build is deterministic: the same records always produce
// identical documents and weights.
func Build(records []rows.Record) *Index {
	ix := &Index{
		Docs: make([]Document, 0, len(records)),
		IDF:  make(map[string]float64),
		N:    len(records),
	}

	docFreq := make(map[string]int)
	for _, rec := range records {
		tokens := Tokenize(rec.PrimaryText())
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		for t := range tf {
			docFreq[t]++
		}
		ix.Docs = append(ix.Docs, Document{
			Record:   rec,
			Tokens:   tokens,
			TermFreq: tf,
			TokenSet: TokenSet(tokens),
		})
	}

	// Smoothed idf: strictly positive even for terms in every document,
	// monotonically decreasing in document frequency.
	n := float64(ix.N)
	for term, df := range docFreq {
		ix.IDF[term] = math.Log((n+1)/(float64(df)+1)) + 1
	}

	for i := range ix.Docs {
		ix.Docs[i].Vector = ix.vectorize(ix.Docs[i].TermFreq)
	}
	return ix
}

// IDFOf returns the learned idf weight for a term, 0 for terms never seen
// in the corpus.
func (ix *Index) IDFOf(term string) float64 {
	return ix.IDF[term]
}

// Empty reports whether the index holds no documents.
func (ix *Index) Empty() bool {
	return len(ix.Docs) == 0
}

// QueryVector builds an L2-normalized tf-idf vector for a query using the
// existing IDF table. Terms unseen at build time contribute nothing.
func (ix *Index) QueryVector(query string) map[string]float64 {
	tf := make(map[string]int)
	for _, t := range Tokenize(query) {
		tf[t]++
	}
	return ix.vectorize(tf)
}

// vectorize turns a term-frequency map into a unit-length tf-idf vector.
// A zero-weight input yields an empty vector.
func (ix *Index) vectorize(tf map[string]int) map[string]float64 {
	vec := make(map[string]float64, len(tf))
	var sumSquares float64
	for term, count := range tf {
		w := float64(count) * ix.IDF[term]
		if w == 0 {
			continue
		}
		vec[term] = w
		sumSquares += w * w
	}
	if sumSquares == 0 {
		return map[string]float64{}
	}
	norm := math.Sqrt(sumSquares)
	for term, w := range vec {
		vec[term] = w / norm
	}
	return vec
}
