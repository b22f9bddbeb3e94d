// Package rank scores indexed FAQ documents against a query vector and selects
// either the single best match or the top candidates.
package rank

import (
	"log/slog"
	"math"
	"sort"

	"github.com/chriscorrea/faqbot/internal/tfidf"
)

// Candidate is a document paired with its similarity to the query.
type Candidate struct {
	Index    int     `json:"index"`    // position in the collection
	Question string  `json:"question"` // document question
	Answer   string  `json:"answer"`   // document answer
	Score    float64 `json:"score"`    // cosine similarity in [0, 1]
}

// CosineSimilarity returns dot(a, b) / (|a| * |b|).
// Zero-norm vectors and vectors of different length score 0. A length mismatch means
// the two sides were vectorized against different index snapshots, so it is logged.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		slog.Warn("Vector dimension mismatch; comparing against a stale index", "queryDim", len(a), "docDim", len(b))
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Score computes the similarity of query to every document, in collection order.
func Score(query []float64, docs []tfidf.Document) []Candidate {
	candidates := make([]Candidate, len(docs))
	for i, doc := range docs {
		candidates[i] = Candidate{
			Index:    i,
			Question: doc.Question,
			Answer:   doc.Answer,
			Score:    CosineSimilarity(query, doc.Vector),
		}
	}
	return candidates
}

// Best returns the highest-scoring candidate. Only a score strictly greater than the
// running best replaces it, so ties keep the earliest document and a query that scores 0
// everywhere has no best candidate.
func Best(candidates []Candidate) (Candidate, bool) {
	var best Candidate
	bestScore := 0.0
	found := false

	for _, c := range candidates {
		if c.Score > bestScore {
			bestScore = c.Score
			best = c
			found = true
		}
	}

	return best, found
}

// TopK returns the k highest-scoring candidates in descending score order.
// Equal scores keep collection order. Fewer than k candidates are all returned.
func TopK(candidates []Candidate, k int) []Candidate {
	if k <= 0 || len(candidates) == 0 {
		return []Candidate{}
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}
