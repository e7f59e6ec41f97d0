package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookLookupStub struct {
	books []*Book
}

func (s bookLookupStub) ListByAuthorID(_ context.Context, authorID int) ([]*Book, error) {
	var result []*Book
	for _, b := range s.books {
		if b.AuthorID == authorID {
			result = append(result, b)
		}
	}
	return result, nil
}

type authorLookupStub map[int]*Author

func (s authorLookupStub) GetByID(_ context.Context, id int) (*Author, error) {
	return s[id], nil
}

func TestAuthor_Books(t *testing.T) {
	lookup := bookLookupStub{books: []*Book{
		{ID: 1, Name: "a", AuthorID: 1},
		{ID: 2, Name: "b", AuthorID: 2},
		{ID: 3, Name: "c", AuthorID: 1},
	}}

	books, err := (&Author{ID: 1}).Books(context.Background(), lookup)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 1, books[0].ID)
	assert.Equal(t, 3, books[1].ID)

	none, err := (&Author{ID: 42}).Books(context.Background(), lookup)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestBook_Author(t *testing.T) {
	lookup := authorLookupStub{1: {ID: 1, Name: "J. K. Rowling"}}

	author, err := (&Book{ID: 1, AuthorID: 1}).Author(context.Background(), lookup)
	require.NoError(t, err)
	assert.Equal(t, "J. K. Rowling", author.Name)

	dangling, err := (&Book{ID: 2, AuthorID: 999}).Author(context.Background(), lookup)
	require.NoError(t, err)
	assert.Nil(t, dangling)
}

func TestLookupFuncs(t *testing.T) {
	calls := 0
	authors := AuthorLookupFunc(func(_ context.Context, id int) (*Author, error) {
		calls++
		return &Author{ID: id}, nil
	})
	author, err := (&Book{AuthorID: 5}).Author(context.Background(), authors)
	require.NoError(t, err)
	assert.Equal(t, 5, author.ID)

	books := BookLookupFunc(func(_ context.Context, authorID int) ([]*Book, error) {
		calls++
		return nil, nil
	})
	list, err := (&Author{ID: 5}).Books(context.Background(), books)
	require.NoError(t, err)
	assert.Equal(t, []*Book{}, list)
	assert.Equal(t, 2, calls)
}
