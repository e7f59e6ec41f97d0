package models

import "context"

type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BookLookup finds the books written by an author.
type BookLookup interface {
	ListByAuthorID(ctx context.Context, authorID int) ([]*Book, error)
}

// Books resolves the author's books in insertion order. It never returns a
// nil slice for a successful lookup.
func (a *Author) Books(ctx context.Context, books BookLookup) ([]*Book, error) {
	result, err := books.ListByAuthorID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []*Book{}
	}
	return result, nil
}

// BookLookupFunc adapts a plain function to BookLookup.
type BookLookupFunc func(ctx context.Context, authorID int) ([]*Book, error)

func (f BookLookupFunc) ListByAuthorID(ctx context.Context, authorID int) ([]*Book, error) {
	return f(ctx, authorID)
}
