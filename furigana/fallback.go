package furigana

import (
	"jpnews/kanji"
	"jpnews/model"
)

// Fallback annotates one kanji at a time from static tables.
type Fallback struct {
	extra kanji.Table
}

// NewFallback returns a Fallback that consults the built-in table first and
// then extra (typically loaded from Kanjidic2). extra may be nil.
func NewFallback(extra kanji.Table) *Fallback {
	return &Fallback{extra: extra}
}

// Annotate emits one annotation per kanji rune. A kanji missing from every
// table is annotated with itself.
func (f *Fallback) Annotate(text string) model.AnnotationResult {
	furigana := []model.Annotation{}
	i := 0
	for _, r := range text {
		if kanji.IsKanji(r) {
			furigana = append(furigana, model.Annotation{
				Text:    string(r),
				Reading: f.reading(r),
				Start:   i,
				End:     i + 1,
			})
		}
		i++
	}
	return model.AnnotationResult{Text: text, Furigana: furigana, Source: model.SourceFallback}
}

func (f *Fallback) reading(r rune) string {
	if reading, ok := kanji.DefaultReading(r); ok {
		return reading
	}
	if f != nil && f.extra != nil {
		if reading, ok := f.extra.Reading(r); ok {
			return reading
		}
	}
	return string(r)
}
