// Package engine ties tokenization, the TF-IDF index, ranking and small-talk rules
// together into a question-answering engine over an FAQ collection.
//
// The collection and the index are separate: Add only appends to the collection and
// Rebuild is the explicit step that re-indexes it. Respond builds the index lazily
// when none exists yet, but otherwise answers from the last build.
//
// An Engine is meant for one caller at a time; concurrent Add and Respond calls need
// external serialization.
package engine

import (
	"log/slog"
	"sync/atomic"

	"github.com/chriscorrea/faqbot/internal/faq"
	"github.com/chriscorrea/faqbot/internal/nlp"
	"github.com/chriscorrea/faqbot/internal/rank"
	"github.com/chriscorrea/faqbot/internal/rules"
	"github.com/chriscorrea/faqbot/internal/tfidf"
)

// default tunables
const (
	DefaultThreshold = 0.18
	DefaultTopK      = 3
)

// Config holds the engine tunables.
type Config struct {
	Threshold float64 // minimum best-match similarity to answer directly
	TopK      int     // number of suggestions when no answer is confident enough
}

// DefaultConfig returns the default tunables.
func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		TopK:      DefaultTopK,
	}
}

// Engine answers free-text questions from an FAQ collection.
type Engine struct {
	cfg   Config
	faqs  []faq.Pair
	index atomic.Pointer[tfidf.Index]
	rules *rules.Responder
}

// New creates an engine with an empty collection.
// A non-positive Threshold or TopK falls back to its default.
func New(cfg Config) *Engine {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}

	return &Engine{
		cfg:   cfg,
		rules: rules.NewResponder(),
	}
}

// Config returns the effective tunables.
func (e *Engine) Config() Config {
	return e.cfg
}

// Add appends a pair to the collection. The index is not touched; call Rebuild.
func (e *Engine) Add(question, answer string) {
	e.faqs = append(e.faqs, faq.Pair{Question: question, Answer: answer})
}

// AddAll appends pairs in order. The index is not touched; call Rebuild.
func (e *Engine) AddAll(pairs []faq.Pair) {
	e.faqs = append(e.faqs, pairs...)
}

// FAQs returns a copy of the collection in insertion order.
func (e *Engine) FAQs() []faq.Pair {
	out := make([]faq.Pair, len(e.faqs))
	copy(out, e.faqs)
	return out
}

// Rebuild indexes the current collection from scratch and publishes the new index
// in a single step, replacing the previous one.
func (e *Engine) Rebuild() {
	next := tfidf.Build(e.FAQs())
	e.index.Store(next)
	slog.Debug("Index rebuilt", "documents", next.Len(), "vocabulary", next.Dimension())
}

// Index returns the current index snapshot, or nil if none has been built.
func (e *Engine) Index() *tfidf.Index {
	return e.index.Load()
}

// Match interprets text and returns a structured result.
//
// Order of evaluation:
//  1. small-talk rules
//  2. tokenization; no usable tokens yields NotUnderstood
//  3. lazy rebuild if the index has no vocabulary
//  4. cosine ranking; the best candidate is the answer when it reaches the threshold,
//     otherwise the top candidates become suggestions
func (e *Engine) Match(text string) Result {
	if rule, reply, ok := e.rules.Respond(text); ok {
		slog.Debug("Rule matched", "rule", rule)
		return Result{Kind: KindRule, Rule: rule, Reply: reply}
	}

	tokens := nlp.Tokenize(text)
	if len(tokens) == 0 {
		slog.Debug("Empty query after tokenization")
		return Result{Kind: KindNotUnderstood, Reply: NotUnderstoodReply}
	}

	index := e.index.Load()
	if index.Empty() {
		e.Rebuild()
		index = e.index.Load()
	}

	// the query must share the vocabulary of the document vectors it is compared with
	query := index.Vectorize(tokens)
	candidates := rank.Score(query, index.Documents)

	best, found := rank.Best(candidates)
	if found && best.Score >= e.cfg.Threshold {
		slog.Debug("Confident match", "index", best.Index, "score", best.Score)
		return Result{Kind: KindAnswer, Match: &best, Reply: best.Answer}
	}

	suggestions := rank.TopK(candidates, e.cfg.TopK)
	slog.Debug("No confident match", "bestScore", best.Score, "threshold", e.cfg.Threshold, "suggestions", len(suggestions))
	return Result{Kind: KindSuggestions, Suggestions: suggestions}
}

// Respond returns the presentation text for text.
func (e *Engine) Respond(text string) string {
	return e.Match(text).String()
}
