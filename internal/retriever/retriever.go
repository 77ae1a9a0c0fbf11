// Package retriever ranks stored chunks against a query vector by
// cosine similarity and returns the best ones.
package retriever

import (
	"math"
	"sort"
)

// Retrieve scores every chunk vector against query by cosine similarity
// and returns the text of the top topK chunks, best first. Ties keep
// the original chunk order. The result has min(topK, len(chunks))
// entries; empty inputs yield an empty result. Scores never leave this
// package.
func Retrieve(query []float32, vectors [][]float32, chunks []string, topK int) []string {
	if topK <= 0 || len(chunks) == 0 || len(vectors) == 0 {
		return nil
	}
	n := len(chunks)
	if len(vectors) < n {
		n = len(vectors)
	}

	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		scores[i] = CosineSimilarity(query, vectors[i])
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	if topK > n {
		topK = n
	}
	top := make([]string, 0, topK)
	for _, i := range idx[:topK] {
		top = append(top, chunks[i])
	}
	return top
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|). A zero-norm operand
// would divide by zero; that comparison scores 0 instead.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// TopK grows retrieval breadth slowly with corpus size and caps it to
// keep prompts bounded.
func TopK(totalChunks int) int {
	k := 5 + totalChunks/10
	if k > 8 {
		k = 8
	}
	return k
}
