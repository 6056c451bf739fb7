package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jpnews/model"
)

// NoteInput holds the writable fields of a note.
type NoteInput struct {
	JapaneseText string
	ChineseNotes string
	TextStyle    string
	Order        int
}

func (in NoteInput) style() string {
	if in.TextStyle == "" {
		return "{}"
	}
	return in.TextStyle
}

const noteColumns = `id, news_id, japanese_text, chinese_notes, text_style, note_order`

// CreateNote appends a note to news item newsID.
func (s *Store) CreateNote(ctx context.Context, newsID int64, in NoteInput) (*model.Note, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM news WHERE id = ?`, newsID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check news: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (news_id, japanese_text, chinese_notes, text_style, note_order)
		 VALUES (?, ?, ?, ?, ?)`,
		newsID, nfc(in.JapaneseText), nfc(in.ChineseNotes), in.style(), in.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get note id: %w", err)
	}
	return s.GetNote(ctx, id)
}

// UpdateNote replaces every writable field of a note.
func (s *Store) UpdateNote(ctx context.Context, id int64, in NoteInput) (*model.Note, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET japanese_text = ?, chinese_notes = ?, text_style = ?, note_order = ?
		 WHERE id = ?`,
		nfc(in.JapaneseText), nfc(in.ChineseNotes), in.style(), in.Order, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}
	return s.GetNote(ctx, id)
}

// GetNote returns one note.
func (s *Store) GetNote(ctx context.Context, id int64) (*model.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return n, nil
}

// DeleteNote removes one note.
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return expectOneRow(res)
}

// SearchNotes returns notes whose Japanese text or Chinese notes contain
// keyword.
func (s *Store) SearchNotes(ctx context.Context, keyword string) ([]model.Note, error) {
	p := likePattern(keyword)
	return s.queryNotes(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE japanese_text LIKE ? ESCAPE '\' OR chinese_notes LIKE ? ESCAPE '\'
		 ORDER BY news_id, note_order, id`, p, p)
}

func (s *Store) notesFor(ctx context.Context, newsID int64) ([]model.Note, error) {
	return s.queryNotes(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE news_id = ? ORDER BY note_order, id`, newsID)
}

func (s *Store) queryNotes(ctx context.Context, query string, args ...any) ([]model.Note, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	out := []model.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func scanNote(sc scanner) (*model.Note, error) {
	var n model.Note
	if err := sc.Scan(&n.ID, &n.NewsID, &n.JapaneseText, &n.ChineseNotes, &n.TextStyle, &n.Order); err != nil {
		return nil, err
	}
	return &n, nil
}
