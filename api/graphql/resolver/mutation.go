package resolver

import (
	"context"

	"github.com/customeros/bookgraph/api/graphql/executor"
)

// Mutation returns the Mutation root bindings
func (r *Resolver) Mutation() map[string]executor.Field {
	m := &mutationResolver{r}
	return map[string]executor.Field{
		"addBook":   executor.Computed(m.AddBook),
		"addAuthor": executor.Computed(m.AddAuthor),
	}
}

// AddBook does not check that authorId refers to an existing author
func (r *mutationResolver) AddBook(ctx context.Context, _ any, args map[string]any) (any, error) {
	name, err := stringArg(args, "name")
	if err != nil {
		return nil, err
	}
	authorID, err := intArg(args, "authorId")
	if err != nil {
		return nil, err
	}
	return r.catalog.AddBook(ctx, name, authorID)
}

func (r *mutationResolver) AddAuthor(ctx context.Context, _ any, args map[string]any) (any, error) {
	name, err := stringArg(args, "name")
	if err != nil {
		return nil, err
	}
	return r.catalog.AddAuthor(ctx, name)
}
