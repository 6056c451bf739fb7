// Package furigana turns Japanese text into position-addressed reading
// annotations and renders them as ruby HTML or bracket-brace notation.
//
// Annotation never fails: when the morphological analyzer is unavailable,
// rejects the input, or finds nothing worth annotating, the Annotator falls
// back to a per-character table lookup. The worst case is an empty list.
package furigana

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"jpnews/kanji"
	"jpnews/model"
	"jpnews/tokenize"
)

// FallbackReason says why the analyzer path was abandoned.
type FallbackReason string

const (
	ReasonAnalyzerError FallbackReason = "analyzer_error"
	ReasonNoAnnotations FallbackReason = "no_annotations"
)

// FallbackHook observes every fallback decision. err is nil for
// ReasonNoAnnotations. Hooks must not block.
type FallbackHook func(reason FallbackReason, text string, err error)

// Annotator is the annotation builder. It holds only immutable
// collaborators and is safe for concurrent use.
type Annotator struct {
	analyzer   tokenize.Analyzer
	fallback   *Fallback
	logger     *slog.Logger
	onFallback FallbackHook
}

// Option configures an Annotator.
type Option func(*Annotator)

// WithLogger sets the logger used for fallback records.
func WithLogger(l *slog.Logger) Option {
	return func(a *Annotator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithFallback replaces the default fallback annotator.
func WithFallback(f *Fallback) Option {
	return func(a *Annotator) {
		if f != nil {
			a.fallback = f
		}
	}
}

// WithFallbackHook registers a callback fired on each fallback.
func WithFallbackHook(h FallbackHook) Option {
	return func(a *Annotator) {
		a.onFallback = h
	}
}

// NewAnnotator wraps analyzer. A nil analyzer behaves as unavailable.
func NewAnnotator(analyzer tokenize.Analyzer, opts ...Option) *Annotator {
	if analyzer == nil {
		analyzer = tokenize.Unavailable(nil)
	}
	a := &Annotator{
		analyzer: analyzer,
		fallback: NewFallback(nil),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Annotate segments text and returns a reading for every token that
// contains kanji, in ascending Start order.
func (a *Annotator) Annotate(ctx context.Context, text string) model.AnnotationResult {
	if text == "" {
		return model.AnnotationResult{Text: text, Furigana: []model.Annotation{}, Source: model.SourceEmpty}
	}

	toks, err := a.analyzer.Tokenize(ctx, text)
	if err != nil {
		return a.fallBack(ReasonAnalyzerError, text, err)
	}

	furigana := make([]model.Annotation, 0, len(toks))
	// Cursors advance in lockstep: byteCur indexes text, runeCur counts runes.
	byteCur, runeCur := 0, 0
	for _, tk := range toks {
		if !needsReading(tk) {
			continue
		}
		idx := strings.Index(text[byteCur:], tk.Surface)
		if idx < 0 {
			a.logger.Debug("token surface not found", "surface", tk.Surface, "cursor", runeCur)
			continue
		}
		startByte := byteCur + idx
		start := runeCur + utf8.RuneCountInString(text[byteCur:startByte])
		end := start + utf8.RuneCountInString(tk.Surface)

		furigana = append(furigana, model.Annotation{
			Text:    tk.Surface,
			Reading: kanji.KatakanaToHiragana(tk.Reading),
			Start:   start,
			End:     end,
		})
		byteCur = startByte + len(tk.Surface)
		runeCur = end
	}

	if len(furigana) == 0 {
		return a.fallBack(ReasonNoAnnotations, text, nil)
	}
	return model.AnnotationResult{Text: text, Furigana: furigana, Source: model.SourceAnalyzer}
}

// posSymbol is the part-of-speech tag kagome gives symbols and punctuation.
const posSymbol = "記号"

// needsReading filters tokens with nothing to annotate.
func needsReading(tk model.Token) bool {
	if !tk.HasReading || tk.Reading == "" || tk.Surface == "" {
		return false
	}
	if len(tk.POS) > 0 && tk.POS[0] == posSymbol {
		return false
	}
	if tk.Reading == tk.Surface || kanji.KatakanaToHiragana(tk.Reading) == tk.Surface {
		return false
	}
	return kanji.ContainsKanji(tk.Surface)
}

func (a *Annotator) fallBack(reason FallbackReason, text string, err error) model.AnnotationResult {
	attrs := []any{"reason", string(reason), "runes", utf8.RuneCountInString(text)}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	a.logger.Info("furigana fallback", attrs...)
	if a.onFallback != nil {
		a.onFallback(reason, text, err)
	}
	return a.fallback.Annotate(text)
}

// Render annotates text and renders it in format f.
func (a *Annotator) Render(ctx context.Context, text string, f Format) string {
	return Render(a.Annotate(ctx, text), f)
}
