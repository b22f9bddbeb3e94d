package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/chriscorrea/faqbot/internal/engine"
	"github.com/chriscorrea/faqbot/internal/faq"
)

// runChat plays a scripted session against a fresh engine and returns the transcript
func runChat(t *testing.T, eng *engine.Engine, script string) string {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	chat := NewChat(eng, Config{TypingDelay: time.Second}, strings.NewReader(script), &out)
	chat.now = func() time.Time { return time.Date(2024, 1, 2, 9, 30, 5, 0, time.UTC) }

	if err := chat.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out.String()
}

func newDefaultEngine() *engine.Engine {
	eng := engine.New(engine.DefaultConfig())
	eng.AddAll(faq.Defaults())
	eng.Rebuild()
	return eng
}

func TestChatReplies(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{
			name:   "welcome and prompt",
			script: "",
			want:   []string{"Bot [09:30:05]: Hi! I'm your FAQ assistant.", "You [09:30:05]: "},
		},
		{
			name:   "greeting rule",
			script: "hello there\n",
			want:   []string{"Bot [09:30:05]: Hello! How can I help you?\n\n"},
		},
		{
			name:   "confident answer",
			script: "How to reset password?\n",
			want:   []string{"click 'Forgot Password' and follow the instructions. (confidence: 1.00)"},
		},
		{
			name:   "suggestions",
			script: "quantum entanglement\n",
			want:   []string{engine.SuggestionPreamble, engine.SuggestionClosing},
		},
		{
			name:   "not understood",
			script: "???\n",
			want:   []string{engine.NotUnderstoodReply},
		},
		{
			name:   "help",
			script: "/help\n",
			want:   []string{"/add <question> | <answer>", "/quit"},
		},
		{
			name:   "list",
			script: "/list\n",
			want:   []string{"10 FAQs:\n  1. What is your name\n", "  10. What is tf idf"},
		},
		{
			name:   "rebuild",
			script: "/rebuild\n",
			want:   []string{"Index rebuilt with 10 FAQs."},
		},
		{
			name:   "unknown command",
			script: "/frobnicate\n",
			want:   []string{`Unknown command "frobnicate"`},
		},
		{
			name:   "add without answer",
			script: "/add just a question\n",
			want:   []string{"Both a question and an answer are required"},
		},
		{
			name:   "load failure",
			script: "/load /does/not/exist.txt\n",
			want:   []string{"Could not load FAQs:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runChat(t, newDefaultEngine(), tt.script)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("transcript missing %q\n--- transcript ---\n%s", want, got)
				}
			}
		})
	}
}

func TestChatQuit(t *testing.T) {
	for _, line := range []string{"/quit", "/exit", "quit", "exit"} {
		t.Run(line, func(t *testing.T) {
			got := runChat(t, newDefaultEngine(), line+"\nhow to compile java\n")
			if !strings.Contains(got, "Goodbye!") {
				t.Errorf("transcript missing farewell:\n%s", got)
			}
			if strings.Contains(got, "javac") {
				t.Errorf("session kept answering after %q:\n%s", line, got)
			}
		})
	}
}

func TestChatAddAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.txt")
	eng := engine.New(engine.DefaultConfig())

	script := strings.Join([]string{
		"/list",
		"/add How to cancel order | Open your orders page and press Cancel.",
		"cancel my order",
		"/save " + path,
		"/quit",
	}, "\n") + "\n"

	got := runChat(t, eng, script)

	for _, want := range []string{
		"No FAQs loaded yet.",
		"New FAQ added and index rebuilt.",
		"Open your orders page and press Cancel. (confidence: 1.00)",
		"FAQs saved to " + path + ".",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q\n--- transcript ---\n%s", want, got)
		}
	}

	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("saved file not readable: %v", err)
	}
	if want := "How to cancel order | Open your orders page and press Cancel.\n"; string(saved) != want {
		t.Errorf("saved file = %q, want %q", saved, want)
	}
}

func TestChatLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.txt")
	if err := os.WriteFile(path, []byte("How to track parcel | Use the tracking number.\n"), 0o600); err != nil {
		t.Fatalf("Failed to write FAQ file: %v", err)
	}

	eng := newDefaultEngine()
	got := runChat(t, eng, "/load "+path+"\ntrack my parcel\n")

	if !strings.Contains(got, "Loaded 1 FAQs from "+path+". Index rebuilt.") {
		t.Errorf("transcript missing load confirmation:\n%s", got)
	}
	if !strings.Contains(got, "Use the tracking number. (confidence: 1.00)") {
		t.Errorf("transcript missing answer from loaded FAQ:\n%s", got)
	}
	if n := len(eng.FAQs()); n != 11 {
		t.Errorf("engine FAQs after load = %d, want 11", n)
	}
}

func TestChatCancelledContext(t *testing.T) {
	color.NoColor = true
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	chat := NewChat(newDefaultEngine(), Config{}, strings.NewReader("how to compile java\n"), &out)
	if err := chat.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "javac") {
		t.Errorf("cancelled session answered a question:\n%s", out.String())
	}
}

func TestChatLoadDefaultFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	eng := newDefaultEngine()
	script := "/add zebra husbandry | Feed zebras twice a day.\n/save\n/load\n"
	got := runChat(t, eng, script)

	if !strings.Contains(got, "FAQs saved to "+DefaultSavePath+".") {
		t.Errorf("transcript missing save confirmation:\n%s", got)
	}
	if !strings.Contains(got, "Loaded 11 FAQs from "+DefaultSavePath+". Index rebuilt.") {
		t.Errorf("transcript missing load of the default file:\n%s", got)
	}
	if _, err := os.Stat(filepath.Join(dir, DefaultSavePath)); err != nil {
		t.Errorf("default file not written: %v", err)
	}
}

func TestChatCancelWhileWaitingForInput(t *testing.T) {
	color.NoColor = true
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	chat := NewChat(newDefaultEngine(), Config{}, pr, &out)

	done := make(chan error, 1)
	go func() { done <- chat.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancellation while waiting for input")
	}
}
