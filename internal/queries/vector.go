package queries

import (
	"math"
	"sort"
)

// corpusStore is a brute-force cosine-similarity store over document texts.
// It lives for a single question: the caller builds it from freshly embedded
// documents and throws it away after retrieval.
type corpusStore struct {
	texts   []string
	vectors [][]float64
}

func newCorpusStore(texts []string, vectors [][]float64) *corpusStore {
	return &corpusStore{texts: texts, vectors: vectors}
}

// topK returns the texts of the k most similar vectors, best first.
func (s *corpusStore) topK(query []float64, k int) []string {
	if k <= 0 || len(s.vectors) == 0 {
		return nil
	}

	type scored struct {
		index int
		score float64
	}
	scores := make([]scored, len(s.vectors))
	for i, v := range s.vectors {
		scores[i] = scored{index: i, score: cosine(query, v)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if k > len(scores) {
		k = len(scores)
	}
	out := make([]string, 0, k)
	for _, s2 := range scores[:k] {
		out = append(out, s.texts[s2.index])
	}
	return out
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
