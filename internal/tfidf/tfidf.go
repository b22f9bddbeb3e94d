// Package tfidf provides the TF-IDF (Term Frequency-Inverse Document Frequency) index
// behind FAQ matching.
//
// An Index is an immutable snapshot built from the full FAQ collection: the vocabulary
// of every question's tokens in first-seen order, a smoothed IDF weight per term, and
// one L2-normalized TF-IDF vector per document. Vector position i always refers to
// vocabulary term i of the same snapshot.
//
// The TF-IDF weighting combines:
//   - Term Frequency (TF): raw count of a term in the text
//   - Inverse Document Frequency (IDF): ln((N+1)/(df+1)) + 1, where N is the number of
//     documents and df the number of documents containing the term
//
// Usage Example:
//
//	index := tfidf.Build(pairs)
//	queryVec := index.Vectorize(nlp.Tokenize("how do I reset my password"))
//
// Queries must be vectorized against the same Index whose document vectors they are
// compared with.
package tfidf

import (
	"log/slog"
	"math"

	"github.com/chriscorrea/faqbot/internal/faq"
	"github.com/chriscorrea/faqbot/internal/nlp"
)

// Document is an indexed FAQ entry with its derived tokens and vector.
type Document struct {
	Question string    // original question text
	Answer   string    // original answer text
	Tokens   []string  // normalized question tokens
	Vector   []float64 // L2-normalized TF-IDF vector over the index vocabulary
}

// Index holds the vocabulary, IDF table and document vectors of one build.
type Index struct {
	Vocabulary []string           // distinct terms in first-seen order
	IDF        map[string]float64 // smoothed IDF for every vocabulary term
	Documents  []Document         // documents in collection order
}

// Build creates a new index from the FAQ collection.
// Nothing from a previous index is reused; every call computes vocabulary, IDF and
// vectors from scratch.
func Build(pairs []faq.Pair) *Index {
	index := &Index{
		Vocabulary: []string{},
		IDF:        map[string]float64{},
		Documents:  make([]Document, len(pairs)),
	}

	if len(pairs) == 0 {
		slog.Debug("Empty FAQ collection provided")
		return index
	}

	// tokenize questions and collect vocabulary in first-seen order
	seen := make(map[string]struct{})
	for i, p := range pairs {
		tokens := nlp.Tokenize(p.Question)
		index.Documents[i] = Document{
			Question: p.Question,
			Answer:   p.Answer,
			Tokens:   tokens,
		}
		for _, token := range tokens {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			index.Vocabulary = append(index.Vocabulary, token)
		}
	}

	// document frequency counts each document once per term
	docFrequencies := make(map[string]int, len(index.Vocabulary))
	for _, doc := range index.Documents {
		uniqueTerms := make(map[string]struct{}, len(doc.Tokens))
		for _, token := range doc.Tokens {
			uniqueTerms[token] = struct{}{}
		}
		for term := range uniqueTerms {
			docFrequencies[term]++
		}
	}

	totalDocs := float64(len(index.Documents))
	for _, term := range index.Vocabulary {
		index.IDF[term] = smoothedIDF(totalDocs, float64(docFrequencies[term]))
	}

	for i := range index.Documents {
		index.Documents[i].Vector = index.Vectorize(index.Documents[i].Tokens)
	}

	slog.Debug("TF-IDF index built", "documents", len(index.Documents), "vocabulary", len(index.Vocabulary))
	return index
}

// Vectorize converts tokens into an L2-normalized TF-IDF vector over the index vocabulary.
// Tokens outside the vocabulary contribute nothing; if no token is known the result is
// the zero vector.
func (ix *Index) Vectorize(tokens []string) []float64 {
	vec := make([]float64, len(ix.Vocabulary))
	if len(tokens) == 0 || len(vec) == 0 {
		return vec
	}

	termCounts := calculateTermCounts(tokens)
	for i, term := range ix.Vocabulary {
		count, ok := termCounts[term]
		if !ok {
			continue
		}
		vec[i] = float64(count) * ix.IDF[term] // a missing IDF entry reads as 0
	}

	Normalize(vec)
	return vec
}

// Dimension returns the vector length of this index.
func (ix *Index) Dimension() int {
	return len(ix.Vocabulary)
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return len(ix.Documents)
}

// Empty reports whether the index has no vocabulary, either because it was never built
// or because no question produced a token.
func (ix *Index) Empty() bool {
	return ix == nil || len(ix.Vocabulary) == 0
}

// Normalize scales v in place to unit Euclidean length. A zero vector is left unchanged.
func Normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}

	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}

// smoothedIDF computes ln((N+1)/(df+1)) + 1, which stays positive even for terms
// present in every document
func smoothedIDF(totalDocs, docFreq float64) float64 {
	return math.Log((totalDocs+1)/(docFreq+1)) + 1
}

// calculateTermCounts returns the raw count of each token
func calculateTermCounts(tokens []string) map[string]int {
	termCounts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		termCounts[token]++
	}
	return termCounts
}
