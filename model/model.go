package model

// Token represents a token / morpheme produced by the tokenizer.
// Reading is only meaningful when HasReading is true.
type Token struct {
	Surface    string   `json:"surface"`
	Reading    string   `json:"reading,omitempty"`
	HasReading bool     `json:"has_reading"`
	POS        []string `json:"pos,omitempty"`
}

// Source records which tier produced an AnnotationResult.
type Source string

const (
	SourceAnalyzer Source = "analyzer"
	SourceFallback Source = "fallback"
	SourceEmpty    Source = "empty"
)

// Annotation attaches a reading to the span [Start, End) of the input text.
// Offsets count runes, not bytes.
type Annotation struct {
	Text    string `json:"text"`
	Reading string `json:"reading"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// AnnotationResult is the output of the annotation builder.
type AnnotationResult struct {
	Text     string       `json:"text"`
	Furigana []Annotation `json:"furigana"`
	Source   Source       `json:"source,omitempty"`
}

// News is a stored news item owning an ordered list of notes.
type News struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	YouTubeURL string `json:"youtube_url,omitempty"`
	CreatedAt  string `json:"created_at"`
	Notes      []Note `json:"notes"`
}

// Note is a Japanese passage with Chinese commentary belonging to a News item.
type Note struct {
	ID           int64  `json:"id"`
	NewsID       int64  `json:"news_id"`
	JapaneseText string `json:"japanese_text"`
	ChineseNotes string `json:"chinese_notes"`
	TextStyle    string `json:"text_style"`
	Order        int    `json:"order"`
}
