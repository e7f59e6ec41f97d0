package interfaces

import (
	"context"

	"github.com/customeros/bookgraph/internal/models"
)

// CatalogService is the read/append surface the GraphQL resolvers use.
type CatalogService interface {
	ListAuthors(ctx context.Context) ([]*models.Author, error)
	GetAuthor(ctx context.Context, id int) (*models.Author, error)
	ListBooks(ctx context.Context) ([]*models.Book, error)
	GetBook(ctx context.Context, id int) (*models.Book, error)
	ListBooksByAuthor(ctx context.Context, authorID int) ([]*models.Book, error)
	AddAuthor(ctx context.Context, name string) (*models.Author, error)
	AddBook(ctx context.Context, name string, authorID int) (*models.Book, error)
	Stats(ctx context.Context) (CatalogStats, error)
}

type CatalogStats struct {
	Authors int `json:"authors"`
	Books   int `json:"books"`
}
