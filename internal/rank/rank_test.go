package rank

import (
	"math"
	"testing"

	"github.com/chriscorrea/faqbot/internal/faq"
	"github.com/chriscorrea/faqbot/internal/nlp"
	"github.com/chriscorrea/faqbot/internal/tfidf"
)

const epsilon = 1e-9

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 1},
		{name: "scaled", a: []float64{1, 2}, b: []float64{2, 4}, want: 1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 1}, want: 0},
		{name: "both zero", a: []float64{0, 0}, b: []float64{0, 0}, want: 0},
		{name: "empty", a: []float64{}, b: []float64{}, want: 0},
		{name: "dimension mismatch", a: []float64{1, 1}, b: []float64{1, 1, 1}, want: 0},
		{name: "partial overlap", a: []float64{1, 1, 0}, b: []float64{1, 0, 0}, want: 1 / math.Sqrt(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("CosineSimilarity() = %f, want %f", got, tt.want)
			}
			if reverse := CosineSimilarity(tt.b, tt.a); math.Abs(got-reverse) > epsilon {
				t.Errorf("CosineSimilarity() not symmetric: %f vs %f", got, reverse)
			}
		})
	}
}

func TestCosineSimilaritySelfOnIndex(t *testing.T) {
	index := tfidf.Build(faq.Defaults())
	for i, doc := range index.Documents {
		if len(doc.Tokens) == 0 {
			continue
		}
		if got := CosineSimilarity(doc.Vector, doc.Vector); math.Abs(got-1) > epsilon {
			t.Errorf("CosineSimilarity(doc %d, doc %d) = %f, want 1", i, i, got)
		}
	}
}

func TestBest(t *testing.T) {
	tests := []struct {
		name      string
		scores    []float64
		wantIndex int
		wantFound bool
	}{
		{name: "no candidates", scores: nil, wantFound: false},
		{name: "all zero", scores: []float64{0, 0, 0}, wantFound: false},
		{name: "clear winner", scores: []float64{0.1, 0.9, 0.3}, wantIndex: 1, wantFound: true},
		{name: "tie keeps first", scores: []float64{0.2, 0.5, 0.5}, wantIndex: 1, wantFound: true},
		{name: "last wins", scores: []float64{0.1, 0.2, 0.3}, wantIndex: 2, wantFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, found := Best(candidatesWithScores(tt.scores))
			if found != tt.wantFound {
				t.Fatalf("Best() found = %v, want %v", found, tt.wantFound)
			}
			if found && best.Index != tt.wantIndex {
				t.Errorf("Best() index = %d, want %d", best.Index, tt.wantIndex)
			}
		})
	}
}

func TestTopK(t *testing.T) {
	tests := []struct {
		name        string
		scores      []float64
		k           int
		wantIndexes []int
	}{
		{name: "no candidates", scores: nil, k: 3, wantIndexes: []int{}},
		{name: "k zero", scores: []float64{0.5}, k: 0, wantIndexes: []int{}},
		{name: "fewer than k", scores: []float64{0.1, 0.4}, k: 3, wantIndexes: []int{1, 0}},
		{name: "exactly k", scores: []float64{0.3, 0.1, 0.2}, k: 3, wantIndexes: []int{0, 2, 1}},
		{name: "more than k", scores: []float64{0.05, 0.15, 0.1, 0.12, 0.01}, k: 3, wantIndexes: []int{1, 3, 2}},
		{name: "ties keep collection order", scores: []float64{0, 0.1, 0, 0.1, 0}, k: 3, wantIndexes: []int{1, 3, 0}},
		{name: "all zero", scores: []float64{0, 0, 0, 0}, k: 3, wantIndexes: []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := candidatesWithScores(tt.scores)
			got := TopK(candidates, tt.k)
			if len(got) != len(tt.wantIndexes) {
				t.Fatalf("TopK() returned %d candidates, want %d", len(got), len(tt.wantIndexes))
			}
			for i, c := range got {
				if c.Index != tt.wantIndexes[i] {
					t.Errorf("TopK()[%d].Index = %d, want %d", i, c.Index, tt.wantIndexes[i])
				}
				if i > 0 && got[i-1].Score < c.Score {
					t.Errorf("TopK() not in descending order at %d: %f < %f", i, got[i-1].Score, c.Score)
				}
			}
			// input must not be reordered
			for i, c := range candidates {
				if c.Index != i {
					t.Errorf("TopK() modified input order at %d", i)
				}
			}
		})
	}
}

func TestScore(t *testing.T) {
	index := tfidf.Build([]faq.Pair{
		{Question: "How to reset password", Answer: "Reset via email link."},
		{Question: "What is java", Answer: "Java is a programming language."},
	})

	query := index.Vectorize(nlp.Tokenize("how do I reset my password"))
	candidates := Score(query, index.Documents)

	if len(candidates) != 2 {
		t.Fatalf("Score() returned %d candidates, want 2", len(candidates))
	}
	if math.Abs(candidates[0].Score-1) > epsilon {
		t.Errorf("Score() password document = %f, want 1", candidates[0].Score)
	}
	if candidates[1].Score != 0 {
		t.Errorf("Score() java document = %f, want 0", candidates[1].Score)
	}
	if candidates[0].Answer != "Reset via email link." {
		t.Errorf("Score() answer = %q, want %q", candidates[0].Answer, "Reset via email link.")
	}
}

func TestScoreStaleQuery(t *testing.T) {
	old := tfidf.Build([]faq.Pair{{Question: "java", Answer: "a"}})
	fresh := tfidf.Build([]faq.Pair{{Question: "java", Answer: "a"}, {Question: "python", Answer: "b"}})

	query := old.Vectorize([]string{"java"})
	for _, c := range Score(query, fresh.Documents) {
		if c.Score != 0 {
			t.Errorf("Score() with stale query = %f, want 0", c.Score)
		}
	}
}

func candidatesWithScores(scores []float64) []Candidate {
	candidates := make([]Candidate, len(scores))
	for i, s := range scores {
		candidates[i] = Candidate{Index: i, Score: s}
	}
	return candidates
}
