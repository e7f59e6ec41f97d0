package models

import "context"

// Book references its author through AuthorID only; the reference is not
// checked and may point at an author that does not exist.
type Book struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	AuthorID int    `json:"authorId"`
}

// AuthorLookup finds a single author by id, returning nil when absent.
type AuthorLookup interface {
	GetByID(ctx context.Context, id int) (*Author, error)
}

// Author resolves the book's author, or nil for a dangling AuthorID.
func (b *Book) Author(ctx context.Context, authors AuthorLookup) (*Author, error) {
	return authors.GetByID(ctx, b.AuthorID)
}

// AuthorLookupFunc adapts a plain function to AuthorLookup.
type AuthorLookupFunc func(ctx context.Context, id int) (*Author, error)

func (f AuthorLookupFunc) GetByID(ctx context.Context, id int) (*Author, error) {
	return f(ctx, id)
}
