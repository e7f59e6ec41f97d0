package interfaces

import (
	"context"

	"github.com/customeros/bookgraph/internal/models"
)

type BookRepository interface {
	List(ctx context.Context) ([]*models.Book, error)
	GetByID(ctx context.Context, id int) (*models.Book, error)
	ListByAuthorID(ctx context.Context, authorID int) ([]*models.Book, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, name string, authorID int) (*models.Book, error)
}
