package executor

import (
	"context"
	"errors"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/vektah/gqlparser/v2/ast"
)

var errIntrospectionDisabled = errors.New("introspection disabled")

// metaRootFields are the introspection entry points available on the query
// root type. The values they return come from gqlgen's introspection
// package; introspectionBindings only maps its accessors onto the
// introspection types of the schema.
var metaRootFields = map[string]Field{
	"__schema": Computed(func(ctx context.Context, _ any, _ map[string]any) (any, error) {
		if graphql.GetOperationContext(ctx).DisableIntrospection {
			return nil, errIntrospectionDisabled
		}
		return introspection.WrapSchema(schemaFromContext(ctx)), nil
	}),
	"__type": Computed(func(ctx context.Context, _ any, args map[string]any) (any, error) {
		if graphql.GetOperationContext(ctx).DisableIntrospection {
			return nil, errIntrospectionDisabled
		}
		name, err := graphql.UnmarshalString(args["name"])
		if err != nil {
			return nil, err
		}
		schema := schemaFromContext(ctx)
		def := schema.Types[name]
		if def == nil {
			return nil, nil
		}
		return introspection.WrapTypeFromDef(schema, def), nil
	}),
}

type schemaContextKey struct{}

func withSchema(ctx context.Context, schema *ast.Schema) context.Context {
	return context.WithValue(ctx, schemaContextKey{}, schema)
}

func schemaFromContext(ctx context.Context) *ast.Schema {
	schema, _ := ctx.Value(schemaContextKey{}).(*ast.Schema)
	return schema
}

type describer interface {
	Description() *string
}

type deprecatable interface {
	IsDeprecated() bool
	DeprecationReason() *string
}

func description(v any) any {
	if d, ok := v.(describer); ok {
		return d.Description()
	}
	return nil
}

func isDeprecated(v any) bool {
	d, ok := v.(deprecatable)
	return ok && d.IsDeprecated()
}

func deprecationReason(v any) any {
	if d, ok := v.(deprecatable); ok {
		return d.DeprecationReason()
	}
	return nil
}

func includeDeprecatedArg(args map[string]any) bool {
	include, _ := args["includeDeprecated"].(bool)
	return include
}

// pointers lets list items be bound with pointer-receiver accessors.
func pointers[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

func inputValues(values []introspection.InputValue, includeDeprecated bool) []*introspection.InputValue {
	out := make([]*introspection.InputValue, 0, len(values))
	for _, v := range pointers(values) {
		if !includeDeprecated && isDeprecated(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func hasKind(t *introspection.Type, kinds ...ast.DefinitionKind) bool {
	for _, kind := range kinds {
		if t.Kind() == string(kind) {
			return true
		}
	}
	return false
}

func inputFields(t *introspection.Type) []introspection.InputValue {
	switch f := any(t).(type) {
	case interface {
		InputFields() []introspection.InputValue
	}:
		return f.InputFields()
	case interface {
		InputFields(bool) []introspection.InputValue
	}:
		return f.InputFields(true)
	}
	return nil
}

var introspectionBindings = Bindings{
	"__Schema": {
		"description":      Property(func(s *introspection.Schema) any { return description(s) }),
		"types":            Property(func(s *introspection.Schema) any { return pointers(s.Types()) }),
		"queryType":        Property(func(s *introspection.Schema) any { return s.QueryType() }),
		"mutationType":     Property(func(s *introspection.Schema) any { return s.MutationType() }),
		"subscriptionType": Property(func(s *introspection.Schema) any { return s.SubscriptionType() }),
		"directives":       Property(func(s *introspection.Schema) any { return pointers(s.Directives()) }),
	},
	"__Type": {
		"kind":        Property(func(t *introspection.Type) any { return t.Kind() }),
		"name":        Property(func(t *introspection.Type) any { return t.Name() }),
		"description": Property(func(t *introspection.Type) any { return description(t) }),
		"specifiedByURL": Property(func(t *introspection.Type) any {
			if s, ok := any(t).(interface{ SpecifiedByURL() *string }); ok {
				return s.SpecifiedByURL()
			}
			return nil
		}),
		"fields": {Resolve: func(_ context.Context, parent any, args map[string]any) (any, error) {
			t := parent.(*introspection.Type)
			if !hasKind(t, ast.Object, ast.Interface) {
				return nil, nil
			}
			return pointers(t.Fields(includeDeprecatedArg(args))), nil
		}},
		"interfaces": Property(func(t *introspection.Type) any {
			if !hasKind(t, ast.Object, ast.Interface) {
				return nil
			}
			return pointers(t.Interfaces())
		}),
		"possibleTypes": Property(func(t *introspection.Type) any {
			if !hasKind(t, ast.Interface, ast.Union) {
				return nil
			}
			return pointers(t.PossibleTypes())
		}),
		"enumValues": {Resolve: func(_ context.Context, parent any, args map[string]any) (any, error) {
			t := parent.(*introspection.Type)
			if !hasKind(t, ast.Enum) {
				return nil, nil
			}
			return pointers(t.EnumValues(includeDeprecatedArg(args))), nil
		}},
		"inputFields": {Resolve: func(_ context.Context, parent any, args map[string]any) (any, error) {
			t := parent.(*introspection.Type)
			if !hasKind(t, ast.InputObject) {
				return nil, nil
			}
			return inputValues(inputFields(t), includeDeprecatedArg(args)), nil
		}},
		"ofType": Property(func(t *introspection.Type) any { return t.OfType() }),
		"isOneOf": Property(func(t *introspection.Type) any {
			if !hasKind(t, ast.InputObject) {
				return nil
			}
			if o, ok := any(t).(interface{ IsOneOf() bool }); ok {
				return o.IsOneOf()
			}
			return false
		}),
	},
	"__Field": {
		"name":        Property(func(f *introspection.Field) any { return f.Name }),
		"description": Property(func(f *introspection.Field) any { return description(f) }),
		"args": {Resolve: func(_ context.Context, parent any, args map[string]any) (any, error) {
			f := parent.(*introspection.Field)
			return inputValues(f.Args, includeDeprecatedArg(args)), nil
		}},
		"type":              Property(func(f *introspection.Field) any { return f.Type }),
		"isDeprecated":      Property(func(f *introspection.Field) any { return isDeprecated(f) }),
		"deprecationReason": Property(func(f *introspection.Field) any { return deprecationReason(f) }),
	},
	"__InputValue": {
		"name":              Property(func(v *introspection.InputValue) any { return v.Name }),
		"description":       Property(func(v *introspection.InputValue) any { return description(v) }),
		"type":              Property(func(v *introspection.InputValue) any { return v.Type }),
		"defaultValue":      Property(func(v *introspection.InputValue) any { return v.DefaultValue }),
		"isDeprecated":      Property(func(v *introspection.InputValue) any { return isDeprecated(v) }),
		"deprecationReason": Property(func(v *introspection.InputValue) any { return deprecationReason(v) }),
	},
	"__EnumValue": {
		"name":              Property(func(v *introspection.EnumValue) any { return v.Name }),
		"description":       Property(func(v *introspection.EnumValue) any { return description(v) }),
		"isDeprecated":      Property(func(v *introspection.EnumValue) any { return isDeprecated(v) }),
		"deprecationReason": Property(func(v *introspection.EnumValue) any { return deprecationReason(v) }),
	},
	"__Directive": {
		"name":        Property(func(d *introspection.Directive) any { return d.Name }),
		"description": Property(func(d *introspection.Directive) any { return description(d) }),
		"locations":   Property(func(d *introspection.Directive) any { return d.Locations }),
		"args": {Resolve: func(_ context.Context, parent any, args map[string]any) (any, error) {
			d := parent.(*introspection.Directive)
			return inputValues(d.Args, includeDeprecatedArg(args)), nil
		}},
		"isRepeatable": Property(func(d *introspection.Directive) any { return d.IsRepeatable }),
	},
}
