package tokenize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"jpnews/model"
)

var (
	// ErrAnalyzerUnavailable means the morphological analyzer could not be
	// initialized. It is permanent for the lifetime of the process.
	ErrAnalyzerUnavailable = errors.New("morphological analyzer unavailable")

	// ErrAnalysis means the analyzer rejected one input. Callers fall back
	// instead of retrying.
	ErrAnalysis = errors.New("morphological analysis failed")

	// ErrUnknownDictionary is returned by New for an unsupported dictionary name.
	ErrUnknownDictionary = errors.New("unknown dictionary")

	// ErrUnknownMode is returned by New for an unsupported tokenize mode.
	ErrUnknownMode = errors.New("unknown tokenize mode")
)

// Analyzer splits text into tokens that concatenate back to the input.
type Analyzer interface {
	Tokenize(ctx context.Context, text string) ([]model.Token, error)
}

// Kagome is an Analyzer backed by a kagome tokenizer. It is built once and
// is safe for concurrent use; it holds no per-call state.
type Kagome struct {
	t    *tokenizer.Tokenizer
	mode tokenizer.TokenizeMode
}

type options struct {
	dictionary string
	mode       string
}

// Option configures New.
type Option func(*options)

// WithDictionary selects the system dictionary: "ipa" (default) or "uni".
func WithDictionary(name string) Option {
	return func(o *options) {
		if name != "" {
			o.dictionary = name
		}
	}
}

// WithMode selects the kagome segmentation mode: "normal" (default),
// "search" or "extended".
func WithMode(name string) Option {
	return func(o *options) {
		if name != "" {
			o.mode = name
		}
	}
}

func systemDict(name string) (*dict.Dict, error) {
	switch strings.ToLower(name) {
	case "ipa":
		return ipa.Dict(), nil
	case "uni":
		return uni.Dict(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDictionary, name)
	}
}

func tokenizeMode(name string) (tokenizer.TokenizeMode, error) {
	switch strings.ToLower(name) {
	case "normal":
		return tokenizer.Normal, nil
	case "search":
		return tokenizer.Search, nil
	case "extended":
		return tokenizer.Extended, nil
	default:
		return tokenizer.Normal, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// New builds a kagome tokenizer, omitting BOS/EOS markers.
func New(opts ...Option) (*Kagome, error) {
	o := options{dictionary: "ipa", mode: "normal"}
	for _, opt := range opts {
		opt(&o)
	}
	mode, err := tokenizeMode(o.mode)
	if err != nil {
		return nil, err
	}
	d, err := systemDict(o.dictionary)
	if err != nil {
		return nil, err
	}
	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalyzerUnavailable, err)
	}
	return &Kagome{t: t, mode: mode}, nil
}

// Tokenize runs kagome over text. A panic inside the engine or a cancelled
// context is reported as ErrAnalysis.
func (k *Kagome) Tokenize(ctx context.Context, text string) (toks []model.Token, err error) {
	if k == nil || k.t == nil {
		return nil, ErrAnalyzerUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}
	defer func() {
		if r := recover(); r != nil {
			toks = nil
			err = fmt.Errorf("%w: %v", ErrAnalysis, r)
		}
	}()

	toks = convertKagomeTokens(k.t.Analyze(text, k.mode))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}
	return toks, nil
}

// feature returns a kagome feature value, treating "*" as absent.
func feature(v string, ok bool) (string, bool) {
	if !ok || v == "" || v == "*" {
		return "", false
	}
	return v, true
}

func convertKagomeTokens(ktoks []tokenizer.Token) []model.Token {
	out := make([]model.Token, 0, len(ktoks))
	for _, kt := range ktoks {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		reading, hasReading := feature(kt.Reading())
		out = append(out, model.Token{
			Surface:    kt.Surface,
			Reading:    reading,
			HasReading: hasReading,
			POS:        kt.POS(),
		})
	}
	return out
}

type unavailable struct {
	cause error
}

// Unavailable returns an Analyzer that fails every call with
// ErrAnalyzerUnavailable. It stands in for an analyzer whose construction
// failed so that callers route straight to their fallback.
func Unavailable(cause error) Analyzer {
	return unavailable{cause: cause}
}

func (u unavailable) Tokenize(context.Context, string) ([]model.Token, error) {
	if u.cause == nil {
		return nil, ErrAnalyzerUnavailable
	}
	if errors.Is(u.cause, ErrAnalyzerUnavailable) {
		return nil, u.cause
	}
	return nil, fmt.Errorf("%w: %v", ErrAnalyzerUnavailable, u.cause)
}
