package api_errors

import (
	"context"
	"testing"

	"github.com/99designs/gqlgen/graphql"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestNewError(t *testing.T) {
	err := NewError("id must be an Int", CodeBadInput, map[string]interface{}{"field": "id"})
	assert.Equal(t, "id must be an Int", err.Message)
	assert.Equal(t, CodeBadInput, err.Extensions["code"])
	assert.Equal(t, "id", err.Extensions["field"])
}

func TestErrorPresenter_KeepsCode(t *testing.T) {
	ctx := graphql.WithFieldContext(context.Background(), &graphql.FieldContext{
		Field: graphql.CollectedField{Field: &ast.Field{Alias: "book"}},
	})

	presented := ErrorPresenter(ctx, errors.WithStack(NewError("bad id", CodeBadInput, nil)))
	assert.Equal(t, "bad id", presented.Message)
	assert.Equal(t, CodeBadInput, presented.Extensions["code"])
	assert.Equal(t, ast.Path{ast.PathName("book")}, presented.Path)
}

func TestErrorPresenter_DefaultsToInternal(t *testing.T) {
	presented := ErrorPresenter(context.Background(), errors.New("boom"))
	assert.Equal(t, "boom", presented.Message)
	assert.Equal(t, CodeInternal, presented.Extensions["code"])
}
