package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/chriscorrea/faqbot/internal/engine"
	"github.com/chriscorrea/faqbot/internal/faq"
	"github.com/chriscorrea/faqbot/internal/typing"
)

// DefaultSavePath is used by /save and /load without an argument, and read at startup
// when no sources are configured
const DefaultSavePath = "faq.txt"

const welcomeMessage = "Hi! I'm your FAQ assistant. Ask me a question (e.g. 'How to reset password?', 'What is TF IDF?'). Type /help for commands."

const helpMessage = `Commands:
  /load [source]               load FAQs from a file, URL or "-" (default faq.txt) and rebuild
  /save [path]                 save the current FAQs (default faq.txt)
  /add <question> | <answer>   add an FAQ and rebuild the index
  /rebuild                     rebuild the index from the current FAQs
  /list                        list the current questions
  /help                        show this help
  /quit                        leave the chat`

// Chat is an interactive question/answer session over a reader and writer.
type Chat struct {
	engine *engine.Engine
	cfg    Config
	in     io.Reader
	out    io.Writer
	now    func() time.Time

	userLabel func(a ...interface{}) string
	botLabel  func(a ...interface{}) string
}

// NewChat creates a chat session answering from eng.
func NewChat(eng *engine.Engine, cfg Config, in io.Reader, out io.Writer) *Chat {
	return &Chat{
		engine:    eng,
		cfg:       cfg,
		in:        in,
		out:       out,
		now:       time.Now,
		userLabel: color.New(color.FgBlue, color.Bold).SprintFunc(),
		botLabel:  color.New(color.FgMagenta, color.Bold).SprintFunc(),
	}
}

// Run reads lines until EOF, /quit, or ctx is done.
// Lines are read on a separate goroutine so that cancellation ends a session waiting for input.
func (c *Chat) Run(ctx context.Context) error {
	c.reply(ctx, welcomeMessage, false)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go c.readLines(readCtx, lines, readErr)

	for {
		fmt.Fprint(c.out, c.userLabel(fmt.Sprintf("You [%s]: ", c.timestamp())))

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		case line, ok = <-lines:
		}

		if !ok {
			fmt.Fprintln(c.out)
			select {
			case err := <-readErr:
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
			default:
			}
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isCommand(line) {
			if quit := c.command(ctx, line); quit {
				return nil
			}
			continue
		}

		c.reply(ctx, c.engine.Respond(line), true)
	}
}

// readLines sends every input line to lines and closes it at EOF. The scanner error, if
// any, is sent to errc first. A read blocked on c.in outlives a cancelled session until
// the reader returns.
func (c *Chat) readLines(ctx context.Context, lines chan<- string, errc chan<- error) {
	defer close(lines)

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	errc <- scanner.Err()
}

// isCommand reports whether a line is a chat command rather than a question
func isCommand(line string) bool {
	return strings.HasPrefix(line, "/") || line == "exit" || line == "quit"
}

// command executes a chat command and reports whether the session should end
func (c *Chat) command(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "quit", "exit":
		c.reply(ctx, "Goodbye!", false)
		return true
	case "help":
		c.reply(ctx, helpMessage, false)
	case "list":
		c.reply(ctx, c.listing(), false)
	case "rebuild":
		c.engine.Rebuild()
		c.reply(ctx, fmt.Sprintf("Index rebuilt with %d FAQs.", len(c.engine.FAQs())), false)
	case "load":
		c.load(ctx, arg)
	case "save":
		c.save(ctx, arg)
	case "add":
		c.add(ctx, arg)
	default:
		c.reply(ctx, fmt.Sprintf("Unknown command %q. Type /help for the list of commands.", name), false)
	}
	return false
}

// load adds the pairs of source and rebuilds
func (c *Chat) load(ctx context.Context, source string) {
	if source == "" {
		source = DefaultSavePath
	}

	pairs, err := LoadSource(ctx, source, c.cfg.Selector, c.cfg.IncludeAll)
	if err != nil {
		c.reply(ctx, fmt.Sprintf("Could not load FAQs: %v", err), false)
		return
	}

	c.engine.AddAll(pairs)
	c.engine.Rebuild()
	c.reply(ctx, fmt.Sprintf("Loaded %d FAQs from %s. Index rebuilt.", len(pairs), source), false)
}

// save writes the collection to path
func (c *Chat) save(ctx context.Context, path string) {
	if path == "" {
		path = DefaultSavePath
	}

	if err := faq.WriteFile(path, c.engine.FAQs()); err != nil {
		c.reply(ctx, fmt.Sprintf("Could not save FAQs: %v", err), false)
		return
	}
	c.reply(ctx, fmt.Sprintf("FAQs saved to %s.", path), false)
}

// add parses "question | answer", adds it and rebuilds
func (c *Chat) add(ctx context.Context, arg string) {
	question, answer, _ := strings.Cut(arg, faq.Delimiter)
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)

	if question == "" || answer == "" {
		c.reply(ctx, "Both a question and an answer are required: /add <question> | <answer>", false)
		return
	}

	c.engine.Add(question, answer)
	c.engine.Rebuild()
	c.reply(ctx, "New FAQ added and index rebuilt.", false)
}

// listing renders the numbered questions of the collection
func (c *Chat) listing() string {
	pairs := c.engine.FAQs()
	if len(pairs) == 0 {
		return "No FAQs loaded yet."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d FAQs:", len(pairs))
	for i, p := range pairs {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, p.Question)
	}
	return sb.String()
}

// reply prints a bot message, optionally after the typing indicator
func (c *Chat) reply(ctx context.Context, text string, simulateTyping bool) {
	if simulateTyping && c.cfg.TypingDelay > 0 && typing.IsTerminal(c.out) {
		typing.New(c.out, typing.DefaultMessage).Show(ctx, c.cfg.TypingDelay)
	}
	fmt.Fprintf(c.out, "%s%s\n\n", c.botLabel(fmt.Sprintf("Bot [%s]: ", c.timestamp())), text)
}

// timestamp formats the current time for message labels
func (c *Chat) timestamp() string {
	return c.now().Format("15:04:05")
}
