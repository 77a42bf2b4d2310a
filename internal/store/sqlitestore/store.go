// Package sqlitestore provides a SQLite-backed post store.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/blog/internal/model"
	"github.com/idilsaglam/blog/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Store persists posts in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ store.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens a SQLite post store and creates its table.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) List(ctx context.Context) ([]model.Post, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, title, content FROM posts ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *Store) Get(ctx context.Context, id string) (model.Post, error) {
	var p model.Post
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, title, content FROM posts WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Post{}, store.ErrNotFound
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, d model.Draft) (model.Post, error) {
	now := toMillis(time.Now())
	p := model.Post{ID: uuid.NewString(), Title: d.Title, Content: d.Content}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Content, now, now)
	if err != nil {
		return model.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id string, d model.Draft) (model.Post, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		d.Title, d.Content, toMillis(time.Now()), id)
	if err != nil {
		return model.Post{}, fmt.Errorf("update post: %w", err)
	}
	if err := requireRow(res); err != nil {
		return model.Post{}, err
	}
	return model.Post{ID: id, Title: d.Title, Content: d.Content}, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
