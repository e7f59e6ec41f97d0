package api_errors

import (
	"context"
	"errors"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeBadInput     = "BAD_USER_INPUT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
)

// NewError creates a standardized GraphQL error
func NewError(message string, code string, extensions map[string]interface{}) *gqlerror.Error {
	if extensions == nil {
		extensions = make(map[string]interface{})
	}
	extensions["code"] = code

	return &gqlerror.Error{
		Message:    message,
		Extensions: extensions,
	}
}

// ErrorPresenter attaches the field path to resolver errors and tags every
// error without a code as INTERNAL_ERROR. Errors created with NewError keep
// their code.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) && gqlErr.Extensions["code"] != nil {
		if gqlErr.Path == nil {
			gqlErr.Path = graphql.GetPath(ctx)
		}
		return gqlErr
	}

	presented := graphql.DefaultErrorPresenter(ctx, err)
	if presented.Extensions == nil {
		presented.Extensions = make(map[string]interface{})
	}
	if _, ok := presented.Extensions["code"]; !ok {
		presented.Extensions["code"] = CodeInternal
	}
	return presented
}
