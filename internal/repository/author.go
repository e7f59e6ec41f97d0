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

// MemoryAuthorRepository implements AuthorRepository on top of the Store
type MemoryAuthorRepository struct {
	store *Store
}

func NewAuthorRepository(store *Store) interfaces.AuthorRepository {
	return &MemoryAuthorRepository{store: store}
}

// List returns every author in insertion order
func (r *MemoryAuthorRepository) List(ctx context.Context) ([]*models.Author, error) {
	return r.store.snapshotAuthors(), nil
}

// GetByID returns the first author with the given id, or nil when none matches
func (r *MemoryAuthorRepository) GetByID(ctx context.Context, id int) (*models.Author, error) {
	author, found := lo.Find(r.store.snapshotAuthors(), func(a *models.Author) bool {
		return a.ID == id
	})
	if !found {
		return nil, nil
	}
	return author, nil
}

func (r *MemoryAuthorRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.authors), nil
}

// Create appends a new author. The id is the current count plus one, which
// stays unique only while records are never removed.
func (r *MemoryAuthorRepository) Create(ctx context.Context, name string) (*models.Author, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "AuthorRepository.Create")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	author := &models.Author{
		ID:   len(r.store.authors) + 1,
		Name: name,
	}
	r.store.authors = append(r.store.authors, author)
	tracing.TagEntity(span, utils.EntityId(author.ID))
	return author, nil
}
