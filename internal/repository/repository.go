// Package repository owns the data-access contracts over the document store.
// Not-found results are reported through sentinel errors rather than nil
// documents, and an empty catalog listing is distinguished from a found one
// by ErrNoItems.
package repository

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound means the operation targeted an id with no document.
	ErrNotFound = errors.New("repository: document not found")
	// ErrNoItems means a listing found a collection with zero documents.
	ErrNoItems = errors.New("repository: no items in collection")
)

// collection is the slice of the store adapter the repositories use. It is
// satisfied by *store.Collection[T]; tests substitute in-memory fakes.
type collection[T any] interface {
	Insert(ctx context.Context, id string, doc T) (*T, error)
	All(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Find(ctx context.Context, filter map[string]any) ([]T, error)
	Merge(ctx context.Context, id string, fields map[string]any) (*T, error)
	Replace(ctx context.Context, id string, doc T) (*T, error)
	Take(ctx context.Context, id string) (*T, error)
}
