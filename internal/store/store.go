// Package store defines the persistence contract behind the development
// /items API.
package store

import (
	"context"
	"errors"

	"github.com/idilsaglam/blog/internal/model"
)

// ErrNotFound is returned when no post has the requested id.
var ErrNotFound = errors.New("post not found")

// Store keeps posts in insertion order and assigns their ids.
type Store interface {
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id string) (model.Post, error)
	Create(ctx context.Context, d model.Draft) (model.Post, error)
	Update(ctx context.Context, id string, d model.Draft) (model.Post, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
