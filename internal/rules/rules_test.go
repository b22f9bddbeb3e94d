package rules_test

import (
	"testing"

	"github.com/chriscorrea/faqbot/internal/rules"
)

func TestResponder_Respond(t *testing.T) {
	responder := rules.NewResponder()

	tests := []struct {
		name      string
		text      string
		wantRule  rules.Rule
		wantReply string
		wantMatch bool
	}{
		{name: "hello", text: "hello", wantRule: rules.Greeting, wantReply: rules.GreetingReply, wantMatch: true},
		{name: "hi there", text: "hi there", wantRule: rules.Greeting, wantReply: rules.GreetingReply, wantMatch: true},
		{name: "upper case greeting", text: "HEY!", wantRule: rules.Greeting, wantReply: rules.GreetingReply, wantMatch: true},
		{name: "greeting inside sentence", text: "well hello, friend", wantRule: rules.Greeting, wantReply: rules.GreetingReply, wantMatch: true},
		{name: "thanks a lot", text: "thanks a lot", wantRule: rules.Thanks, wantReply: rules.ThanksReply, wantMatch: true},
		{name: "thank you", text: "Thank you!", wantRule: rules.Thanks, wantReply: rules.ThanksReply, wantMatch: true},
		{name: "goodbye", text: "goodbye", wantRule: rules.Farewell, wantReply: rules.FarewellReply, wantMatch: true},
		{name: "see you", text: "ok see you later", wantRule: rules.Farewell, wantReply: rules.FarewellReply, wantMatch: true},
		{name: "bye-bye", text: "bye-bye", wantRule: rules.Farewell, wantReply: rules.FarewellReply, wantMatch: true},
		{name: "greeting wins over thanks", text: "hi and thanks", wantRule: rules.Greeting, wantReply: rules.GreetingReply, wantMatch: true},
		{name: "word boundary: this", text: "what is this", wantRule: rules.None, wantMatch: false},
		{name: "word boundary: shiny", text: "shiny objects", wantRule: rules.None, wantMatch: false},
		{name: "word boundary: thankful", text: "thankful", wantRule: rules.None, wantMatch: false},
		{name: "faq question", text: "How to reset password", wantRule: rules.None, wantMatch: false},
		{name: "empty", text: "", wantRule: rules.None, wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, reply, matched := responder.Respond(tt.text)
			if matched != tt.wantMatch {
				t.Fatalf("Respond(%q) matched = %v, want %v", tt.text, matched, tt.wantMatch)
			}
			if rule != tt.wantRule {
				t.Errorf("Respond(%q) rule = %v, want %v", tt.text, rule, tt.wantRule)
			}
			if reply != tt.wantReply {
				t.Errorf("Respond(%q) reply = %q, want %q", tt.text, reply, tt.wantReply)
			}
		})
	}
}

func TestRuleString(t *testing.T) {
	tests := []struct {
		rule rules.Rule
		want string
	}{
		{rules.None, "none"},
		{rules.Greeting, "greeting"},
		{rules.Thanks, "thanks"},
		{rules.Farewell, "farewell"},
		{rules.Rule(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.rule.String(); got != tt.want {
				t.Errorf("Rule(%d).String() = %q, want %q", int(tt.rule), got, tt.want)
			}
		})
	}
}
