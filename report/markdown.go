// Package report exports a news item and its notes as a Markdown study sheet
// with furigana.
package report

import (
	"context"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"jpnews/furigana"
	"jpnews/model"
)

// Options configures a MarkdownWriter.
type Options struct {
	// Format is the furigana notation used for note text. Ruby HTML is
	// inline HTML and renders in most Markdown viewers.
	Format furigana.Format

	// Concurrency bounds parallel annotation of notes.
	Concurrency int
}

// MarkdownWriter writes news items in Markdown format.
type MarkdownWriter struct {
	output    io.Writer
	annotator *furigana.Annotator
	opts      Options
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, a *furigana.Annotator, opts Options) *MarkdownWriter {
	if opts.Format == "" {
		opts.Format = furigana.FormatBracket
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = furigana.DefaultConcurrency
	}
	return &MarkdownWriter{output: output, annotator: a, opts: opts}
}

// Write annotates every note of news and outputs the sheet.
func (w *MarkdownWriter) Write(ctx context.Context, news *model.News) error {
	texts := make([]string, len(news.Notes))
	for i, n := range news.Notes {
		texts[i] = n.JapaneseText
	}
	results, err := furigana.AnnotateAll(ctx, w.annotator, texts, w.opts.Concurrency)
	if err != nil {
		return err
	}

	md := markdown.NewMarkdown(w.output)
	w.writeHeader(md, news)
	w.writeNotes(md, news.Notes, results)
	w.writeFooter(md)
	return md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, news *model.News) {
	md.H1(news.Title)
	md.PlainText("")

	rows := [][]string{
		{"ID", strconv.FormatInt(news.ID, 10)},
		{"Created", news.CreatedAt},
		{"Notes", strconv.Itoa(len(news.Notes))},
	}
	if news.YouTubeURL != "" {
		rows = append(rows, []string{"Video", news.YouTubeURL})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeNotes(md *markdown.Markdown, notes []model.Note, results []model.AnnotationResult) {
	md.H2("Notes")
	md.PlainText("")

	if len(notes) == 0 {
		md.Note("This news item has no notes yet.")
		md.PlainText("")
		return
	}

	for i, n := range notes {
		md.H3(strconv.Itoa(i+1) + ".")
		md.PlainText("")
		md.PlainText(furigana.Render(results[i], w.opts.Format))
		md.PlainText("")
		if n.ChineseNotes != "" {
			md.Details("中文", n.ChineseNotes)
			md.PlainText("")
		}
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Exported by jpnews*")
}
