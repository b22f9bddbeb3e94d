// Package app contains the core application logic for the faqbot CLI tool.
// It builds an engine from FAQ sources and answers questions, separated from CLI concerns.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chriscorrea/faqbot/internal/engine"
	"github.com/chriscorrea/faqbot/internal/extract"
	"github.com/chriscorrea/faqbot/internal/faq"
	"github.com/chriscorrea/faqbot/internal/fetch"
)

// OutputFormat defines the output format for one-shot answers
type OutputFormat int

const (
	// plain text output (default)
	Text OutputFormat = iota
	// JSON-encoded match result
	JSON
)

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "Text"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// DefaultTypingDelay is how long the chat shows the typing indicator before each reply
const DefaultTypingDelay = 250 * time.Millisecond

// Config holds all configuration options for the faqbot application.
type Config struct {
	Sources      []string      // FAQ files, URLs, or "-" for stdin
	Selector     string        // CSS selector for questions on HTML pages
	IncludeAll   bool          // search whole HTML pages instead of their main content
	UseDefaults  bool          // seed the built-in FAQs before loading sources
	Threshold    float64       // match-confidence threshold (0 = default)
	TopK         int           // suggestion count (0 = default)
	Query        string        // question for one-shot mode
	OutputFormat OutputFormat  // output format for one-shot mode
	TypingDelay  time.Duration // chat typing indicator duration
	Quiet        bool          // suppress warnings
	Debug        bool
}

// EngineConfig returns the engine tunables of the configuration.
func (c Config) EngineConfig() engine.Config {
	return engine.Config{
		Threshold: c.Threshold,
		TopK:      c.TopK,
	}
}

// Run answers cfg.Query once and returns the formatted response.
//
// Processing Pipeline:
// 1. Build an engine from the built-in FAQs and every source (NewEngine)
// 2. Match the question and format the result (Ask)
func Run(ctx context.Context, cfg Config) (string, error) {
	if strings.TrimSpace(cfg.Query) == "" {
		return "", fmt.Errorf("no question provided")
	}

	eng, err := NewEngine(ctx, cfg)
	if err != nil {
		return "", err
	}

	return Ask(eng, cfg.Query, cfg.OutputFormat)
}

// Ask matches query against eng and renders the result in the given format.
func Ask(eng *engine.Engine, query string, format OutputFormat) (string, error) {
	result := eng.Match(query)

	switch format {
	case JSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return result.String() + "\n", nil
	}
}

// NewEngine creates an engine seeded with the built-in FAQs (unless disabled) and the
// pairs of every source, then builds its index. Without configured sources, the file at
// DefaultSavePath is loaded when it exists. A source that fails to load is reported
// and skipped; it is an error only when nothing at all could be loaded.
func NewEngine(ctx context.Context, cfg Config) (*engine.Engine, error) {
	eng := engine.New(cfg.EngineConfig())
	if cfg.UseDefaults {
		eng.AddAll(faq.Defaults())
	}

	sources := cfg.Sources
	if len(sources) == 0 {
		// pick up a collection saved by an earlier chat session
		if info, err := os.Stat(DefaultSavePath); err == nil && !info.IsDir() {
			slog.Debug("Loading saved FAQs", "path", DefaultSavePath)
			sources = []string{DefaultSavePath}
		}
	}

	loaded := 0
	for _, source := range sources {
		pairs, err := LoadSource(ctx, source, cfg.Selector, cfg.IncludeAll)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: failed to load FAQs from %q: %v\n", source, err)
			}
			continue
		}
		eng.AddAll(pairs)
		loaded++
	}

	if len(cfg.Sources) > 0 && loaded == 0 && !cfg.UseDefaults {
		return nil, fmt.Errorf("no FAQs loaded from any source")
	}

	eng.Rebuild()
	return eng, nil
}

// LoadSource reads the FAQ pairs of a single source. HTML content (or any source when a
// selector is given) is scraped for questions; everything else is parsed as
// "question | answer" lines.
func LoadSource(ctx context.Context, source, selector string, includeAll bool) ([]faq.Pair, error) {
	content, err := fetch.GetContent(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer content.Close()

	if selector != "" || content.IsHTML() {
		var baseURL *url.URL
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			baseURL, _ = url.Parse(source) // ignore parse errors, will use nil
		}

		pairs, err := extract.ToPairs(content, selector, includeAll, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to extract FAQs: %w", err)
		}
		return pairs, nil
	}

	pairs, err := faq.Read(content)
	if err != nil {
		return nil, err
	}
	return pairs, nil
}
