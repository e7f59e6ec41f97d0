package resolver

import (
	"context"
	"fmt"

	"github.com/customeros/bookgraph/api/graphql/executor"
	"github.com/customeros/bookgraph/internal/models"
)

func (r *Resolver) Author() map[string]executor.Field {
	a := &authorResolver{r}
	return map[string]executor.Field{
		"id":    executor.Property(func(author *models.Author) any { return author.ID }),
		"name":  executor.Property(func(author *models.Author) any { return author.Name }),
		"books": executor.Computed(a.Books),
	}
}

func (r *Resolver) Book() map[string]executor.Field {
	b := &bookResolver{r}
	return map[string]executor.Field{
		"id":       executor.Property(func(book *models.Book) any { return book.ID }),
		"name":     executor.Property(func(book *models.Book) any { return book.Name }),
		"authorId": executor.Property(func(book *models.Book) any { return book.AuthorID }),
		"author":   executor.Computed(b.Author),
	}
}

func (r *authorResolver) Books(ctx context.Context, parent any, _ map[string]any) (any, error) {
	author, ok := parent.(*models.Author)
	if !ok {
		return nil, fmt.Errorf("unexpected parent %T for Author.books", parent)
	}
	return author.Books(ctx, models.BookLookupFunc(r.catalog.ListBooksByAuthor))
}

func (r *bookResolver) Author(ctx context.Context, parent any, _ map[string]any) (any, error) {
	book, ok := parent.(*models.Book)
	if !ok {
		return nil, fmt.Errorf("unexpected parent %T for Book.author", parent)
	}
	return book.Author(ctx, models.AuthorLookupFunc(r.catalog.GetAuthor))
}
