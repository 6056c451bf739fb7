package furigana

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"jpnews/model"
)

// Format selects the markup produced by Render.
type Format string

const (
	// FormatRuby renders <ruby>漢字<rt>かんじ</rt></ruby>.
	FormatRuby Format = "ruby"
	// FormatBracket renders the editor's inline notation [漢字]{かんじ}.
	FormatBracket Format = "bracket"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown markup format")

// ParseFormat maps a flag or config value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatRuby, FormatBracket:
		return f, nil
	case "html":
		return FormatRuby, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) fragment(span, reading string) string {
	switch f {
	case FormatBracket:
		return "[" + span + "]{" + reading + "}"
	default:
		return "<ruby>" + span + "<rt>" + reading + "</rt></ruby>"
	}
}

// Render splices markup for every annotation into res.Text. Annotations are
// visited by descending Start so every pending offset still refers to the
// original text; the output is assembled from untouched spans and fragments
// rather than by editing a working copy. Out-of-range spans and spans that
// overlap an already placed one are dropped. Offsets count runes, so each
// invalid UTF-8 byte in res.Text comes out as U+FFFD; callers that need the
// input bytes back must validate it first, as ingest.New does.
func Render(res model.AnnotationResult, f Format) string {
	if len(res.Furigana) == 0 {
		return res.Text
	}
	runes := []rune(res.Text)

	anns := slices.Clone(res.Furigana)
	slices.SortStableFunc(anns, func(a, b model.Annotation) int {
		return cmp.Compare(b.Start, a.Start)
	})

	// pieces is filled right to left and reversed at the end.
	pieces := make([]string, 0, 2*len(anns)+1)
	cursor := len(runes)
	for _, ann := range anns {
		if ann.Start < 0 || ann.Start >= ann.End || ann.End > cursor {
			continue
		}
		pieces = append(pieces, string(runes[ann.End:cursor]))
		pieces = append(pieces, f.fragment(string(runes[ann.Start:ann.End]), ann.Reading))
		cursor = ann.Start
	}
	pieces = append(pieces, string(runes[:cursor]))

	var b strings.Builder
	for i := len(pieces) - 1; i >= 0; i-- {
		b.WriteString(pieces[i])
	}
	return b.String()
}
