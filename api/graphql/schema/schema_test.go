package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestLoad(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	require.NotNil(t, s.Query)
	require.NotNil(t, s.Mutation)
	assert.Nil(t, s.Subscription)

	for _, name := range []string{"books", "authors", "book", "author"} {
		assert.NotNil(t, s.Query.Fields.ForName(name), name)
	}

	addBook := s.Mutation.Fields.ForName("addBook")
	require.NotNil(t, addBook)
	assert.True(t, addBook.Arguments.ForName("name").Type.NonNull)
	assert.True(t, addBook.Arguments.ForName("authorId").Type.NonNull)

	book := s.Query.Fields.ForName("book")
	require.NotNil(t, book)
	assert.False(t, book.Arguments.ForName("id").Type.NonNull)
	assert.Equal(t, "A single book", book.Description)
}

func TestLoad_EntityShapes(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	author := s.Types["Author"]
	require.NotNil(t, author)
	assert.Equal(t, ast.Object, author.Kind)
	assert.Equal(t, "Int!", author.Fields.ForName("id").Type.String())
	assert.Equal(t, "[Book]", author.Fields.ForName("books").Type.String())

	book := s.Types["Book"]
	require.NotNil(t, book)
	assert.Equal(t, "Int!", book.Fields.ForName("authorId").Type.String())
	assert.Equal(t, "Author", book.Fields.ForName("author").Type.String())
}

func TestSource(t *testing.T) {
	assert.Contains(t, Source(), "type Query")
	assert.Contains(t, Source(), "addAuthor(name: String!): Author")
}
