package repository

import (
	"sync"

	"github.com/customeros/bookgraph/internal/models"
)

// Store owns the two record sequences. Records are append-only and never
// mutated after insertion, so readers may share the stored pointers.
type Store struct {
	mu      sync.RWMutex
	authors []*models.Author
	books   []*models.Book
}

func NewStore() *Store {
	return &Store{
		authors: make([]*models.Author, 0),
		books:   make([]*models.Book, 0),
	}
}

func (s *Store) snapshotAuthors() []*models.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Author(nil), s.authors...)
}

func (s *Store) snapshotBooks() []*models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Book(nil), s.books...)
}
