// Package store provides SQLite-based storage for news items and their notes.
//
// A news item owns an ordered list of notes; deleting the item deletes its
// notes. Text is stored NFC-normalised so that keyword search and furigana
// offsets see one canonical form.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite" // SQLite driver
)

// DBFile is the database file name inside the data directory.
const DBFile = "jpnews.db"

var (
	// ErrNotFound is returned when a news item or note does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyTitle is returned when a news item has a blank title.
	ErrEmptyTitle = errors.New("title must not be empty")
)

// Store is a news/notes repository backed by one SQLite file.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Options configures Store behaviour.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool

	// AutoMigrate applies pending column migrations on open.
	AutoMigrate bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		AutoMigrate:       true,
	}
}

// Open opens or creates the store in dbDir and brings the schema up to date.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, DBFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	ctx := context.Background()
	if opts.EnableWAL {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	if opts.AutoMigrate {
		if _, err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS news (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		youtube_url TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_news_title ON news(title);

	CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		news_id INTEGER NOT NULL REFERENCES news(id) ON DELETE CASCADE,
		japanese_text TEXT NOT NULL DEFAULT '',
		chinese_notes TEXT NOT NULL DEFAULT '',
		text_style TEXT NOT NULL DEFAULT '{}',
		note_order INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_notes_news ON notes(news_id, note_order);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// column is an additive schema change applied to databases created by
// older versions.
type column struct {
	table, name, ddl string
}

var migrations = []column{
	{table: "news", name: "youtube_url", ddl: "TEXT"},
}

// Migrate adds columns missing from an older schema and returns the
// "table.column" names it added.
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	var added []string
	for _, m := range migrations {
		ok, err := s.hasColumn(ctx, m.table, m.name)
		if err != nil {
			return added, fmt.Errorf("inspect %s: %w", m.table, err)
		}
		if ok {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.table, m.name, m.ddl)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return added, fmt.Errorf("add column %s.%s: %w", m.table, m.name, err)
		}
		added = append(added, m.table+"."+m.name)
	}
	return added, nil
}

func (s *Store) hasColumn(ctx context.Context, table, name string) (bool, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			colName string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if colName == name {
			return true, nil
		}
	}
	return false, rows.Err()
}

// nfc normalises user text to Unicode NFC.
func nfc(s string) string {
	return norm.NFC.String(s)
}

// likePattern builds a LIKE pattern matching keyword anywhere, escaping
// LIKE wildcards with '\'.
func likePattern(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(nfc(keyword)) + "%"
}
