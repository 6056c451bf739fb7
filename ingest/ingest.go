// Package ingest turns raw input into identified sentences ready for
// annotation.
package ingest

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	// ErrEmptySentence is returned for input that is blank after trimming.
	ErrEmptySentence = errors.New("empty sentence")

	// ErrInvalidUTF8 is returned for input that is not valid UTF-8. Such
	// bytes would otherwise be replaced by U+FFFD when rendered.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")
)

// maxLineBytes caps one input line.
const maxLineBytes = 1 << 20

// Sentence is one unit of input text with an ID used to name its trace files.
type Sentence struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// generateID creates a short random hex id. Falls back to a timestamp string on error.
func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// New trims text and wraps it in a Sentence.
func New(text string) (Sentence, error) {
	if !utf8.ValidString(text) {
		return Sentence{}, ErrInvalidUTF8
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Sentence{}, ErrEmptySentence
	}
	return Sentence{
		ID:        generateID(),
		Text:      trimmed,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// FromArgs builds sentences from command-line arguments, skipping blank ones.
func FromArgs(args []string) ([]Sentence, error) {
	out := make([]Sentence, 0, len(args))
	for i, a := range args {
		s, err := New(a)
		if errors.Is(err, ErrEmptySentence) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Lines reads r line by line and returns one Sentence per non-blank line.
func Lines(r io.Reader) ([]Sentence, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []Sentence
	for line := 1; sc.Scan(); line++ {
		s, err := New(sc.Text())
		if errors.Is(err, ErrEmptySentence) {
			continue
		}
		if err != nil {
			return out, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read input: %w", err)
	}
	return out, nil
}

// Texts returns the text of each sentence.
func Texts(sentences []Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}
