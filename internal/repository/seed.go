package repository

import "github.com/customeros/bookgraph/internal/models"

var seedAuthors = []models.Author{
	{ID: 1, Name: "J. K. Rowling"},
	{ID: 2, Name: "J. R. R. Tolkien"},
	{ID: 3, Name: "Brent Weeks"},
}

var seedBooks = []models.Book{
	{ID: 1, Name: "Harry Potter and Chamber of Secreats", AuthorID: 1},
	{ID: 2, Name: "Harry Potter and Prisinor of Azkaban", AuthorID: 1},
	{ID: 3, Name: "Harry Potter and Goblet of Fire", AuthorID: 1},
	{ID: 4, Name: "The fellowship of the Ring", AuthorID: 2},
	{ID: 5, Name: "The Two Towers", AuthorID: 2},
	{ID: 6, Name: "The return of the King", AuthorID: 2},
	{ID: 7, Name: "The Way of shadows", AuthorID: 3},
	{ID: 8, Name: "Beyond the shadows", AuthorID: 3},
}

// Seed replaces the store contents with the fixed startup data set.
func Seed(store *Store) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.authors = make([]*models.Author, 0, len(seedAuthors))
	for i := range seedAuthors {
		author := seedAuthors[i]
		store.authors = append(store.authors, &author)
	}

	store.books = make([]*models.Book, 0, len(seedBooks))
	for i := range seedBooks {
		book := seedBooks[i]
		store.books = append(store.books, &book)
	}
}
