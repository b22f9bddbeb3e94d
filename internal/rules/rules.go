// Package rules answers small-talk (greetings, thanks, farewells) before any FAQ matching.
package rules

import (
	"regexp"
	"sync"
)

// Rule identifies which small-talk category matched
type Rule int

const (
	// no rule matched
	None Rule = iota
	// hi, hello, ...
	Greeting
	// thank, thanks, ...
	Thanks
	// bye, goodbye, ...
	Farewell
)

// String returns the string representation of the rule
func (r Rule) String() string {
	switch r {
	case None:
		return "none"
	case Greeting:
		return "greeting"
	case Thanks:
		return "thanks"
	case Farewell:
		return "farewell"
	default:
		return "unknown"
	}
}

// fixed replies per rule
const (
	GreetingReply = "Hello! How can I help you?"
	ThanksReply   = "You're welcome! Let me know if there's anything else."
	FarewellReply = "Goodbye! Have a great day."
)

// rule pairs a compiled pattern with its reply
type rule struct {
	kind    Rule
	pattern *regexp.Regexp
	reply   string
}

var (
	compiledRules []rule
	rulesOnce     sync.Once
)

// getRules returns the rules in priority order, compiling them on first use
func getRules() []rule {
	rulesOnce.Do(func() {
		compiledRules = []rule{
			{Greeting, regexp.MustCompile(`(?i)\b(hi|hello|hey|namaste|namaskar)\b`), GreetingReply},
			{Thanks, regexp.MustCompile(`(?i)\b(thank|thanks|shukriya|dhanyavaad)\b`), ThanksReply},
			{Farewell, regexp.MustCompile(`(?i)\b(bye|goodbye|see you|phir milenge|bye-bye)\b`), FarewellReply},
		}
	})
	return compiledRules
}

// Responder matches text against the small-talk rules.
type Responder struct {
	rules []rule
}

// NewResponder creates a Responder with the built-in greeting, thanks and farewell rules.
func NewResponder() *Responder {
	return &Responder{rules: getRules()}
}

// Respond returns the reply of the first rule whose words appear anywhere in text.
// The boolean is false when no rule matches and the caller should fall through to FAQ matching.
func (r *Responder) Respond(text string) (Rule, string, bool) {
	for _, candidate := range r.rules {
		if candidate.pattern.MatchString(text) {
			return candidate.kind, candidate.reply, true
		}
	}
	return None, "", false
}
