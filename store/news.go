package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jpnews/model"
)

// NewsInput holds the writable fields of a news item.
type NewsInput struct {
	Title      string
	YouTubeURL string
}

func (in NewsInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateNews inserts a news item and returns it with its ID.
func (s *Store) CreateNews(ctx context.Context, in NewsInput) (*model.News, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	createdAt := time.Now().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO news (title, youtube_url, created_at) VALUES (?, ?, ?)`,
		nfc(in.Title), nullable(in.YouTubeURL), createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert news: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get news id: %w", err)
	}
	return &model.News{
		ID:         id,
		Title:      nfc(in.Title),
		YouTubeURL: in.YouTubeURL,
		CreatedAt:  createdAt,
		Notes:      []model.Note{},
	}, nil
}

// UpdateNews replaces the title and YouTube URL of a news item.
func (s *Store) UpdateNews(ctx context.Context, id int64, in NewsInput) (*model.News, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE news SET title = ?, youtube_url = ? WHERE id = ?`,
		nfc(in.Title), nullable(in.YouTubeURL), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update news: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}
	return s.GetNews(ctx, id)
}

// GetNews returns one news item with its notes in order.
func (s *Store) GetNews(ctx context.Context, id int64) (*model.News, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, youtube_url, created_at FROM news WHERE id = ?`, id)
	n, err := scanNews(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news: %w", err)
	}
	notes, err := s.notesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	n.Notes = notes
	return n, nil
}

// ListNews returns every news item, newest first, with notes.
func (s *Store) ListNews(ctx context.Context) ([]model.News, error) {
	return s.queryNews(ctx,
		`SELECT id, title, youtube_url, created_at FROM news ORDER BY id DESC`)
}

// SearchNews returns news items whose title contains keyword.
func (s *Store) SearchNews(ctx context.Context, keyword string) ([]model.News, error) {
	return s.queryNews(ctx,
		`SELECT id, title, youtube_url, created_at FROM news
		 WHERE title LIKE ? ESCAPE '\' ORDER BY id DESC`, likePattern(keyword))
}

// DeleteNews removes a news item and all of its notes.
func (s *Store) DeleteNews(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE news_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) queryNews(ctx context.Context, query string, args ...any) ([]model.News, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	var out []model.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan news: %w", err)
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	// Notes are loaded after the cursor is closed: the pool has one connection.
	for i := range out {
		notes, err := s.notesFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Notes = notes
	}
	if out == nil {
		out = []model.News{}
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNews(sc scanner) (*model.News, error) {
	var (
		n   model.News
		url sql.NullString
	)
	if err := sc.Scan(&n.ID, &n.Title, &url, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.YouTubeURL = url.String
	return &n, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
