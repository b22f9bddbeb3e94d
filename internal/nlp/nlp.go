// Package nlp provides the text normalization used to index FAQ questions and
// to interpret incoming queries.
//
// Normalization is deliberately small: lowercase, punctuation removal, whitespace
// splitting, stopword removal and a naive suffix-stripping stemmer. The same
// pipeline runs on both sides of a comparison so that a question and a query
// with the same wording always produce the same tokens.
//
// Usage Example:
//
//	tokens := nlp.Tokenize("How do I reset my password?")
//	// []string{"reset", "password"}
package nlp

import (
	"regexp"
	"strings"
)

// nonAlphanumRegex matches every character that is not an ASCII letter, digit or whitespace
// (applied after lowercasing, so upper-case ASCII never reaches it)
var nonAlphanumRegex = regexp.MustCompile(`[^a-z0-9\s]`)

// stopwords holds common English function words excluded from indexing
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "and": {}, "or": {}, "but": {},
	"what": {}, "how": {}, "why": {}, "do": {}, "does": {}, "did": {},
	"i": {}, "you": {}, "we": {}, "they": {}, "he": {}, "she": {}, "it": {}, "my": {}, "your": {},
	"please": {}, "me": {}, "can": {}, "could": {}, "would": {}, "will": {}, "shall": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "from": {},
	"by": {}, "with": {}, "about": {}, "as": {}, "be": {}, "have": {}, "has": {}, "had": {},
	"so": {}, "if": {}, "then": {}, "its": {}, "isnt": {}, "dont": {},
}

// Tokenize converts text into an ordered sequence of normalized tokens.
//
// Steps, in order:
//  1. lowercase
//  2. replace anything that is not an ASCII letter, digit or whitespace with a space
//  3. split on runs of whitespace
//  4. drop stopwords
//  5. apply the naive stemmer (see Stem)
//
// Duplicates and input order are preserved. Empty input yields an empty, non-nil slice.
func Tokenize(text string) []string {
	tokens := []string{}
	if text == "" {
		return tokens
	}

	cleaned := nonAlphanumRegex.ReplaceAllString(strings.ToLower(text), " ")

	for _, word := range strings.Fields(cleaned) {
		if IsStopword(word) {
			continue
		}
		stemmed := Stem(word)
		if stemmed == "" {
			continue
		}
		tokens = append(tokens, stemmed)
	}

	return tokens
}

// IsStopword reports whether word (already lowercased) is in the stopword set.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// Stem applies a naive suffix-stripping heuristic. Rules are tried in order and
// only the first one that applies fires:
//   - "ing" is stripped when the word is longer than 4 characters
//   - "ed" is stripped when the word is longer than 3 characters
//   - "s" is stripped when the word is longer than 3 characters
//
// The thresholds are heuristic and occasionally produce odd stems ("class" -> "clas");
// they are kept as-is so that stored indexes and queries keep agreeing.
func Stem(word string) string {
	switch {
	case strings.HasSuffix(word, "ing") && len(word) > 4:
		return word[:len(word)-3]
	case strings.HasSuffix(word, "ed") && len(word) > 3:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 3:
		return word[:len(word)-1]
	default:
		return word
	}
}
