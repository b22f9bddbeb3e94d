// Package faq defines question/answer pairs and their line-oriented file format.
//
// The file format is one pair per line, question and answer separated by a pipe:
//
//	How to reset password | Click 'Forgot Password' and follow the instructions.
//
// Only the first pipe separates the fields, so answers may contain further pipes.
package faq

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Delimiter separates question and answer on a line
const Delimiter = "|"

// maxLineBytes bounds a single line
const maxLineBytes = 1024 * 1024

// Pair is one stored FAQ entry.
type Pair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Defaults returns the built-in FAQ set that seeds a fresh engine.
func Defaults() []Pair {
	return []Pair{
		{"What is your name", "I'm the FAQ assistant. How are you doing?"},
		{"How are you", "I'm doing well, thanks for asking! How about you?"},
		{"How to reset password", "To reset your password, click 'Forgot Password' and follow the instructions."},
		{"What services do you offer", "I can help with coding questions, explain AI tools and point you to tutorials."},
		{"How to contact support", "Email support@example.com or call 9876543210."},
		{"What is java", "Java is an object-oriented programming language used to build cross-platform applications."},
		{"How to compile java", "In a terminal: javac FileName.java, then run it with: java FileName"},
		{"What is machine learning", "Machine learning is a technique where models learn patterns from data and make predictions."},
		{"How to create account", "Open the signup page, fill in the required fields and submit the form."},
		{"What is tf idf", "TF-IDF is a text representation technique that measures word importance from term frequency and document rarity."},
	}
}

// Read parses pairs from r, one per line.
// Blank lines, lines without a delimiter and lines with an empty question or answer are skipped.
func Read(r io.Reader) ([]Pair, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var pairs []Pair
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		question, answer, found := strings.Cut(line, Delimiter)
		if !found {
			slog.Debug("Skipping line without delimiter", "line", lineNum)
			continue
		}

		question = strings.TrimSpace(question)
		answer = strings.TrimSpace(answer)
		if question == "" || answer == "" {
			slog.Debug("Skipping line with empty field", "line", lineNum)
			continue
		}

		pairs = append(pairs, Pair{Question: question, Answer: answer})
	}

	if err := scanner.Err(); err != nil {
		return pairs, fmt.Errorf("failed to read FAQ lines: %w", err)
	}

	slog.Debug("Parsed FAQ pairs", "pairs", len(pairs), "lines", lineNum)
	return pairs, nil
}

// ReadFile parses the FAQ file at path.
func ReadFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FAQ file %q: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Write serializes pairs to w as "question | answer" lines.
// Line breaks inside a field are replaced by a space so that every pair stays on one line.
func Write(w io.Writer, pairs []Pair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		if _, err := fmt.Fprintf(bw, "%s %s %s\n", flatten(p.Question), Delimiter, flatten(p.Answer)); err != nil {
			return fmt.Errorf("failed to write FAQ pair: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush FAQ pairs: %w", err)
	}
	return nil
}

// WriteFile overwrites path with pairs.
func WriteFile(path string, pairs []Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create FAQ file %q: %w", path, err)
	}

	if err := Write(f, pairs); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close FAQ file %q: %w", path, err)
	}

	slog.Debug("Saved FAQ pairs", "path", path, "pairs", len(pairs))
	return nil
}

// flatten replaces CRLF and LF line breaks with a single space
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
