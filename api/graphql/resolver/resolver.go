// api/graphql/resolver/resolver.go
package resolver

import (
	"fmt"

	"github.com/99designs/gqlgen/graphql"

	api_errors "github.com/customeros/bookgraph/api/errors"
	"github.com/customeros/bookgraph/api/graphql/executor"
	"github.com/customeros/bookgraph/interfaces"
)

// Resolver is the base resolver structure
type Resolver struct {
	catalog interfaces.CatalogService
}

func NewResolver(catalog interfaces.CatalogService) *Resolver {
	return &Resolver{
		catalog: catalog,
	}
}

// Bindings maps every field of the schema to its resolver
func (r *Resolver) Bindings() executor.Bindings {
	return executor.Bindings{
		"Query":    r.Query(),
		"Mutation": r.Mutation(),
		"Author":   r.Author(),
		"Book":     r.Book(),
	}
}

type (
	queryResolver    struct{ *Resolver }
	mutationResolver struct{ *Resolver }
	authorResolver   struct{ *Resolver }
	bookResolver     struct{ *Resolver }
)

func optionalIntArg(args map[string]any, name string) (*int, error) {
	value, ok := args[name]
	if !ok || value == nil {
		return nil, nil
	}
	i, err := graphql.UnmarshalInt(value)
	if err != nil {
		return nil, badInput(name, err)
	}
	return &i, nil
}

func intArg(args map[string]any, name string) (int, error) {
	i, err := optionalIntArg(args, name)
	if err != nil {
		return 0, err
	}
	if i == nil {
		return 0, api_errors.NewError(fmt.Sprintf("argument %s is required", name), api_errors.CodeBadInput, nil)
	}
	return *i, nil
}

func stringArg(args map[string]any, name string) (string, error) {
	value, ok := args[name]
	if !ok || value == nil {
		return "", api_errors.NewError(fmt.Sprintf("argument %s is required", name), api_errors.CodeBadInput, nil)
	}
	s, err := graphql.UnmarshalString(value)
	if err != nil {
		return "", badInput(name, err)
	}
	return s, nil
}

func badInput(name string, err error) error {
	return api_errors.NewError(fmt.Sprintf("invalid argument %s: %v", name, err), api_errors.CodeBadInput, nil)
}
