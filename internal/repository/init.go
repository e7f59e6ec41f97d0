package repository

import (
	"github.com/customeros/bookgraph/interfaces"
)

type Repositories struct {
	Store            *Store
	AuthorRepository interfaces.AuthorRepository
	BookRepository   interfaces.BookRepository
}

func InitRepositories(store *Store) *Repositories {
	return &Repositories{
		Store:            store,
		AuthorRepository: NewAuthorRepository(store),
		BookRepository:   NewBookRepository(store),
	}
}

// InitSeededRepositories builds a fresh store loaded with the seed data.
func InitSeededRepositories() *Repositories {
	store := NewStore()
	Seed(store)
	return InitRepositories(store)
}
