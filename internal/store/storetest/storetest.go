// Package storetest holds behaviour checks shared by every store.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/idilsaglam/blog/internal/model"
	"github.com/idilsaglam/blog/internal/store"
)

// Run exercises s through a full create/list/update/delete cycle.
// s must start empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	posts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", posts)
	}

	a, err := s.Create(ctx, model.Draft{Title: "A", Content: "first"})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := s.Create(ctx, model.Draft{Title: "B", Content: "second"})
	if err != nil {
		t.Fatalf("create b: %v", err)
	}
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}

	posts, err = s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != a.ID || posts[1].ID != b.ID {
		t.Fatalf("expected insertion order [a b], got %+v", posts)
	}

	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != a {
		t.Fatalf("get = %+v, want %+v", got, a)
	}

	upd, err := s.Update(ctx, a.ID, model.Draft{Title: "A2", Content: "edited"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd != (model.Post{ID: a.ID, Title: "A2", Content: "edited"}) {
		t.Fatalf("update = %+v", upd)
	}
	if got, _ := s.Get(ctx, a.ID); got != upd {
		t.Fatalf("get after update = %+v", got)
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	posts, _ = s.List(ctx)
	if len(posts) != 1 || posts[0].ID != b.ID {
		t.Fatalf("expected only b after delete, got %+v", posts)
	}

	if _, err := s.Get(ctx, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get deleted: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Update(ctx, "missing", model.Draft{Title: "x", Content: "y"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update missing: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete missing: expected ErrNotFound, got %v", err)
	}
}
