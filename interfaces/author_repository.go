package interfaces

import (
	"context"

	"github.com/customeros/bookgraph/internal/models"
)

type AuthorRepository interface {
	List(ctx context.Context) ([]*models.Author, error)
	GetByID(ctx context.Context, id int) (*models.Author, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, name string) (*models.Author, error)
}
