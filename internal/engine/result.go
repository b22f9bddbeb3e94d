package engine

import (
	"fmt"
	"strings"

	"github.com/chriscorrea/faqbot/internal/rank"
	"github.com/chriscorrea/faqbot/internal/rules"
)

// Kind classifies how a query was answered
type Kind int

const (
	// small-talk rule reply
	KindRule Kind = iota
	// confident FAQ answer
	KindAnswer
	// low confidence; top candidates offered instead
	KindSuggestions
	// query had no usable tokens
	KindNotUnderstood
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindRule:
		return "rule"
	case KindAnswer:
		return "answer"
	case KindSuggestions:
		return "suggestions"
	case KindNotUnderstood:
		return "not-understood"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// fixed presentation text
const (
	NotUnderstoodReply = "Sorry, I didn't understand that. Could you add a little more detail?"
	SuggestionPreamble = "I couldn't find an exact answer. Maybe you meant one of these:"
	SuggestionClosing  = "Or try asking your question in a bit more detail."
)

// Result is the outcome of matching one query.
type Result struct {
	Kind        Kind             `json:"kind"`
	Rule        rules.Rule       `json:"-"`
	Reply       string           `json:"reply,omitempty"`       // rule reply, answer, or not-understood text
	Match       *rank.Candidate  `json:"match,omitempty"`       // set for KindAnswer
	Suggestions []rank.Candidate `json:"suggestions,omitempty"` // set for KindSuggestions
}

// String renders the result as the text shown to the user.
func (r Result) String() string {
	switch r.Kind {
	case KindAnswer:
		return fmt.Sprintf("%s (confidence: %.2f)", r.Match.Answer, r.Match.Score)
	case KindSuggestions:
		var sb strings.Builder
		sb.WriteString(SuggestionPreamble)
		sb.WriteString("\n")
		for _, s := range r.Suggestions {
			fmt.Fprintf(&sb, " • %s (sim: %.2f)\n", s.Question, s.Score)
		}
		sb.WriteString(SuggestionClosing)
		return sb.String()
	default:
		return r.Reply
	}
}
