package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/idilsaglam/blog/internal/model"
	"github.com/idilsaglam/blog/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// The whole collection is rewritten on every change; fine for a dev server.
// An empty path keeps everything in memory.

type Store struct {
	mu    sync.Mutex
	path  string
	posts []model.Post
}

var _ store.Store = (*Store)(nil)

// Open loads the collection from path. A missing file starts empty.
func Open(path string) (*Store, error) {
	s := &Store{path: path, posts: []model.Post{}}
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.posts); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return s, nil
}

func (s *Store) List(ctx context.Context) ([]model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (model.Post, error) {
	if err := ctx.Err(); err != nil {
		return model.Post{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Post{}, store.ErrNotFound
	}
	return s.posts[i], nil
}

func (s *Store) Create(ctx context.Context, d model.Draft) (model.Post, error) {
	if err := ctx.Err(); err != nil {
		return model.Post{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := model.Post{ID: uuid.NewString(), Title: d.Title, Content: d.Content}
	s.posts = append(s.posts, p)
	if err := s.save(); err != nil {
		s.posts = s.posts[:len(s.posts)-1]
		return model.Post{}, err
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id string, d model.Draft) (model.Post, error) {
	if err := ctx.Err(); err != nil {
		return model.Post{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Post{}, store.ErrNotFound
	}
	prev := s.posts[i]
	s.posts[i].Title, s.posts[i].Content = d.Title, d.Content
	if err := s.save(); err != nil {
		s.posts[i] = prev
		return model.Post{}, err
	}
	return s.posts[i], nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return store.ErrNotFound
	}
	prev := s.posts
	next := make([]model.Post, 0, len(s.posts)-1)
	next = append(next, s.posts[:i]...)
	next = append(next, s.posts[i+1:]...)
	s.posts = next
	if err := s.save(); err != nil {
		s.posts = prev
		return err
	}
	return nil
}

// Close is a no-op; every change is already on disk.
func (s *Store) Close() error { return nil }

func (s *Store) indexOf(id string) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	b, err := json.MarshalIndent(s.posts, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
