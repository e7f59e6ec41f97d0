package resolver

import (
	"context"

	"github.com/customeros/bookgraph/api/graphql/executor"
)

// Query returns the Query root bindings
func (r *Resolver) Query() map[string]executor.Field {
	q := &queryResolver{r}
	return map[string]executor.Field{
		"books":   executor.Computed(q.Books),
		"authors": executor.Computed(q.Authors),
		"book":    executor.Computed(q.Book),
		"author":  executor.Computed(q.Author),
	}
}

func (r *queryResolver) Books(ctx context.Context, _ any, _ map[string]any) (any, error) {
	return r.catalog.ListBooks(ctx)
}

func (r *queryResolver) Authors(ctx context.Context, _ any, _ map[string]any) (any, error) {
	return r.catalog.ListAuthors(ctx)
}

// Book returns null when id is omitted or matches nothing
func (r *queryResolver) Book(ctx context.Context, _ any, args map[string]any) (any, error) {
	id, err := optionalIntArg(args, "id")
	if err != nil || id == nil {
		return nil, err
	}
	return r.catalog.GetBook(ctx, *id)
}

func (r *queryResolver) Author(ctx context.Context, _ any, args map[string]any) (any, error) {
	id, err := optionalIntArg(args, "id")
	if err != nil || id == nil {
		return nil, err
	}
	return r.catalog.GetAuthor(ctx, *id)
}
