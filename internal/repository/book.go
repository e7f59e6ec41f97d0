package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/samber/lo"

	"github.com/customeros/bookgraph/interfaces"
	"github.com/customeros/bookgraph/internal/models"
	"github.com/customeros/bookgraph/internal/tracing"
	"github.com/customeros/bookgraph/internal/utils"
)

// MemoryBookRepository implements BookRepository on top of the Store
type MemoryBookRepository struct {
	store *Store
}

func NewBookRepository(store *Store) interfaces.BookRepository {
	return &MemoryBookRepository{store: store}
}

// List returns every book in insertion order
func (r *MemoryBookRepository) List(ctx context.Context) ([]*models.Book, error) {
	return r.store.snapshotBooks(), nil
}

// GetByID returns the first book with the given id, or nil when none matches
func (r *MemoryBookRepository) GetByID(ctx context.Context, id int) (*models.Book, error) {
	book, found := lo.Find(r.store.snapshotBooks(), func(b *models.Book) bool {
		return b.ID == id
	})
	if !found {
		return nil, nil
	}
	return book, nil
}

// ListByAuthorID scans all books for the given author id. The result is
// empty, not nil, when the author has no books.
func (r *MemoryBookRepository) ListByAuthorID(ctx context.Context, authorID int) ([]*models.Book, error) {
	return lo.Filter(r.store.snapshotBooks(), func(b *models.Book, _ int) bool {
		return b.AuthorID == authorID
	}), nil
}

func (r *MemoryBookRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.books), nil
}

// Create appends a new book without checking that authorID exists.
func (r *MemoryBookRepository) Create(ctx context.Context, name string, authorID int) (*models.Book, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "BookRepository.Create")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	book := &models.Book{
		ID:       len(r.store.books) + 1,
		Name:     name,
		AuthorID: authorID,
	}
	r.store.books = append(r.store.books, book)
	tracing.TagEntity(span, utils.EntityId(book.ID))
	return book, nil
}
