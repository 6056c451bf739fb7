package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenMissingWithoutCreate(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "absent"), Options{})
	if err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestNewsCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	created, err := s.CreateNews(ctx, NewsInput{Title: "東京の天気", YouTubeURL: "https://youtu.be/x"})
	if err != nil {
		t.Fatalf("CreateNews() error = %v", err)
	}
	if created.ID == 0 || created.CreatedAt == "" {
		t.Fatalf("unexpected created news: %+v", created)
	}

	got, err := s.GetNews(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetNews() error = %v", err)
	}
	if got.Title != "東京の天気" || got.YouTubeURL != "https://youtu.be/x" {
		t.Errorf("GetNews() = %+v", got)
	}
	if got.Notes == nil || len(got.Notes) != 0 {
		t.Errorf("expected empty notes, got %v", got.Notes)
	}

	updated, err := s.UpdateNews(ctx, created.ID, NewsInput{Title: "大阪の天気"})
	if err != nil {
		t.Fatalf("UpdateNews() error = %v", err)
	}
	if updated.Title != "大阪の天気" || updated.YouTubeURL != "" {
		t.Errorf("UpdateNews() = %+v", updated)
	}

	if _, err := s.CreateNews(ctx, NewsInput{Title: "  "}); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := s.UpdateNews(ctx, 999, NewsInput{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := s.CreateNews(ctx, NewsInput{Title: "二番目"}); err != nil {
		t.Fatal(err)
	}
	list, err := s.ListNews(ctx)
	if err != nil {
		t.Fatalf("ListNews() error = %v", err)
	}
	if len(list) != 2 || list[0].Title != "二番目" {
		t.Errorf("ListNews() = %+v, want newest first", list)
	}

	if err := s.DeleteNews(ctx, created.ID); err != nil {
		t.Fatalf("DeleteNews() error = %v", err)
	}
	if _, err := s.GetNews(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteNews(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestNotesOrderAndCascade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	news, err := s.CreateNews(ctx, NewsInput{Title: "ニュース"})
	if err != nil {
		t.Fatal(err)
	}

	inputs := []NoteInput{
		{JapaneseText: "三番", Order: 3},
		{JapaneseText: "一番", ChineseNotes: "第一", Order: 1},
		{JapaneseText: "二番", Order: 2, TextStyle: `{"bold":true}`},
	}
	var ids []int64
	for _, in := range inputs {
		n, err := s.CreateNote(ctx, news.ID, in)
		if err != nil {
			t.Fatalf("CreateNote() error = %v", err)
		}
		if n.NewsID != news.ID {
			t.Errorf("NewsID = %d, want %d", n.NewsID, news.ID)
		}
		ids = append(ids, n.ID)
	}

	got, err := s.GetNews(ctx, news.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"一番", "二番", "三番"}
	if len(got.Notes) != len(want) {
		t.Fatalf("got %d notes, want %d", len(got.Notes), len(want))
	}
	for i, w := range want {
		if got.Notes[i].JapaneseText != w {
			t.Errorf("note[%d] = %q, want %q", i, got.Notes[i].JapaneseText, w)
		}
	}
	if got.Notes[0].TextStyle != "{}" {
		t.Errorf("default TextStyle = %q, want {}", got.Notes[0].TextStyle)
	}

	upd, err := s.UpdateNote(ctx, ids[0], NoteInput{JapaneseText: "ゼロ番", Order: 0})
	if err != nil {
		t.Fatalf("UpdateNote() error = %v", err)
	}
	if upd.JapaneseText != "ゼロ番" || upd.Order != 0 {
		t.Errorf("UpdateNote() = %+v", upd)
	}

	if err := s.DeleteNote(ctx, ids[1]); err != nil {
		t.Fatalf("DeleteNote() error = %v", err)
	}
	if _, err := s.GetNote(ctx, ids[1]); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := s.CreateNote(ctx, 999, NoteInput{JapaneseText: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("note on missing news: expected ErrNotFound, got %v", err)
	}

	if err := s.DeleteNews(ctx, news.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetNote(ctx, ids[2]); !errors.Is(err, ErrNotFound) {
		t.Errorf("note should be deleted with its news, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	a, _ := s.CreateNews(ctx, NewsInput{Title: "株価が下落"})
	b, _ := s.CreateNews(ctx, NewsInput{Title: "100%の天気"})
	if a == nil || b == nil {
		t.Fatal("CreateNews failed")
	}
	// Decomposed が (か + U+3099) is stored composed.
	if _, err := s.CreateNote(ctx, a.ID, NoteInput{JapaneseText: "株価か\u3099下落した", ChineseNotes: "股价下跌"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateNote(ctx, b.ID, NoteInput{JapaneseText: "晴れ", ChineseNotes: "晴天"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		keyword   string
		wantNews  int
		wantNotes int
	}{
		{"株価", 1, 1},
		{"株価が", 1, 1},
		{"株価か\u3099", 1, 1},
		{"下跌", 0, 1},
		{"晴", 0, 1},
		{"%", 1, 0},
		{"_", 0, 0},
		{"存在しない", 0, 0},
	}
	for _, tt := range tests {
		news, err := s.SearchNews(ctx, tt.keyword)
		if err != nil {
			t.Fatalf("SearchNews(%q) error = %v", tt.keyword, err)
		}
		if len(news) != tt.wantNews {
			t.Errorf("SearchNews(%q) = %d results, want %d", tt.keyword, len(news), tt.wantNews)
		}
		notes, err := s.SearchNotes(ctx, tt.keyword)
		if err != nil {
			t.Fatalf("SearchNotes(%q) error = %v", tt.keyword, err)
		}
		if len(notes) != tt.wantNotes {
			t.Errorf("SearchNotes(%q) = %d results, want %d", tt.keyword, len(notes), tt.wantNotes)
		}
	}
}

// createLegacyDB writes a news table from before the youtube_url column.
func createLegacyDB(t *testing.T, dir string) {
	t.Helper()

	legacy, err := sql.Open("sqlite", filepath.Join(dir, DBFile))
	if err != nil {
		t.Fatal(err)
	}
	defer legacy.Close()
	_, err = legacy.ExecContext(context.Background(), `CREATE TABLE news (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestMigrateExplicit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	createLegacyDB(t, dir)

	opts := DefaultOptions()
	opts.AutoMigrate = false
	s, err := Open(dir, opts)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	added, err := s.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if len(added) != 1 || added[0] != "news.youtube_url" {
		t.Errorf("Migrate() = %v, want [news.youtube_url]", added)
	}
}

func TestMigrateAddsYouTubeURL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	createLegacyDB(t, dir)

	s, err := Open(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	n, err := s.CreateNews(ctx, NewsInput{Title: "旧", YouTubeURL: "https://youtu.be/y"})
	if err != nil {
		t.Fatalf("CreateNews() on migrated db error = %v", err)
	}
	got, err := s.GetNews(ctx, n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.YouTubeURL != "https://youtu.be/y" {
		t.Errorf("YouTubeURL = %q", got.YouTubeURL)
	}

	added, err := s.Migrate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(added) != 0 {
		t.Errorf("second Migrate() added %v, want nothing", added)
	}
}
