// Package extract pulls question/answer pairs out of HTML FAQ pages.
//
// Questions are recognized structurally: definition terms (dt), details summaries,
// and headings phrased as questions. A CSS selector can replace that heuristic for
// pages with their own markup. Answer HTML is converted to Markdown and flattened
// onto a single line so that it fits the FAQ file format.
package extract

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/chriscorrea/faqbot/internal/faq"
)

// headingSelector matches every heading level
const headingSelector = "h1, h2, h3, h4, h5, h6"

// questionSelector matches the elements considered as questions by default
const questionSelector = "dt, summary, " + headingSelector

// ErrNoPairs is returned when a page contains no recognizable question/answer pairs
var ErrNoPairs = errors.New("no FAQ pairs found")

// ToPairs extracts question/answer pairs from HTML.
//
// Parameters:
//   - content: io.Reader containing HTML
//   - selector: optional CSS selector for question elements; each answer is made of the
//     siblings that follow a question up to the next question or heading
//   - includeAll: if true, skips readability extraction and searches the whole page
//   - baseURL: optional page URL for readability (can be nil)
func ToPairs(content io.Reader, selector string, includeAll bool, baseURL *url.URL) ([]faq.Pair, error) {
	doc, err := loadDocument(content, selector != "" || includeAll, baseURL)
	if err != nil {
		return nil, err
	}

	conv := md.NewConverter("", true, nil)

	var pairs []faq.Pair
	if selector != "" {
		questions := doc.Find(selector)
		if questions.Length() == 0 {
			return nil, fmt.Errorf("no elements found matching selector: %s", selector)
		}
		stop := selector + ", " + headingSelector
		questions.Each(func(_ int, s *goquery.Selection) {
			pairs = appendPair(pairs, conv, s, s.NextUntil(stop))
		})
	} else {
		doc.Find(questionSelector).Each(func(_ int, s *goquery.Selection) {
			if answer, ok := defaultAnswer(s); ok {
				pairs = appendPair(pairs, conv, s, answer)
			}
		})
	}

	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	slog.Debug("Extracted FAQ pairs from HTML", "pairs", len(pairs), "selector", selector)
	return pairs, nil
}

// loadDocument parses the full page when raw is set, otherwise only the main content
// found by go-readability
func loadDocument(content io.Reader, raw bool, baseURL *url.URL) (*goquery.Document, error) {
	if raw {
		doc, err := goquery.NewDocumentFromReader(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML: %w", err)
		}
		return doc, nil
	}

	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract main content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse main content: %w", err)
	}
	return doc, nil
}

// defaultAnswer returns the answer elements belonging to a question element found by
// questionSelector, or false if the element is not a question
func defaultAnswer(s *goquery.Selection) (*goquery.Selection, bool) {
	switch goquery.NodeName(s) {
	case "dt":
		return s.NextUntil("dt").Filter("dd"), true
	case "summary":
		return s.NextAll(), true
	default:
		// headings only count when phrased as a question
		if !strings.HasSuffix(collapseSpace(s.Text()), "?") {
			return nil, false
		}
		return s.NextUntil(headingSelector), true
	}
}

// appendPair converts a question element and its answer elements into a pair;
// pairs with an empty side are dropped
func appendPair(pairs []faq.Pair, conv *md.Converter, question, answer *goquery.Selection) []faq.Pair {
	q := collapseSpace(question.Text())
	if q == "" || answer.Length() == 0 {
		return pairs
	}

	var html strings.Builder
	answer.Each(func(_ int, s *goquery.Selection) {
		if outer, err := goquery.OuterHtml(s); err == nil {
			html.WriteString(outer)
			html.WriteString("\n")
		}
	})

	markdown, err := conv.ConvertString(html.String())
	if err != nil {
		slog.Debug("Failed to convert answer HTML", "question", q, "error", err)
		return pairs
	}

	a := collapseSpace(markdown)
	if a == "" {
		return pairs
	}

	return append(pairs, faq.Pair{Question: q, Answer: a})
}

// collapseSpace trims s and replaces every whitespace run with one space
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
