// Package executor runs GraphQL operations against a schema loaded from SDL
// and a binding table that maps each object field to the function computing
// its value. It implements gqlgen's graphql.ExecutableSchema, so gqlgen's
// handler provides transports, parsing, validation and extensions while the
// field-to-resolver mapping stays plain data that can be inspected and tested
// on its own.
package executor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
)

// ResolverFunc computes the value of one field from its parent value and the
// coerced field arguments. Root fields receive a nil parent.
type ResolverFunc func(ctx context.Context, parent any, args map[string]any) (any, error)

// Field binds a schema field to its resolver.
type Field struct {
	Resolve ResolverFunc
	// Computed marks root operations and relationship fields. Field
	// interceptors see them with IsResolver set; plain record properties
	// are reported as simple field reads.
	Computed bool
}

// Property binds a field that reads a value straight off a parent of type T.
func Property[T any](get func(parent T) any) Field {
	return Field{
		Resolve: func(_ context.Context, parent any, _ map[string]any) (any, error) {
			p, ok := parent.(T)
			if !ok {
				var zero T
				return nil, fmt.Errorf("expected parent of type %T, got %T", zero, parent)
			}
			return get(p), nil
		},
	}
}

// Computed binds a field whose value is computed by fn.
func Computed(fn ResolverFunc) Field {
	return Field{Resolve: fn, Computed: true}
}

// Bindings maps an object type name to its field bindings.
type Bindings map[string]map[string]Field

// Typed is implemented by values returned for interface or union fields so
// the executor can pick the concrete object type.
type Typed interface {
	GraphQLTypeName() string
}

type ExecutableSchema struct {
	schema       *ast.Schema
	bindings     Bindings
	implementors map[string][]string
}

var _ graphql.ExecutableSchema = (*ExecutableSchema)(nil)

// New checks that every field of every user-defined object type is bound
// and that no binding refers to a type or field the schema does not declare.
func New(schema *ast.Schema, bindings Bindings) (*ExecutableSchema, error) {
	if schema == nil {
		return nil, errors.New("schema is required")
	}
	if err := ValidateBindings(schema, bindings); err != nil {
		return nil, err
	}

	return &ExecutableSchema{
		schema:       schema,
		bindings:     bindings,
		implementors: buildImplementors(schema),
	}, nil
}

func ValidateBindings(schema *ast.Schema, bindings Bindings) error {
	var problems []string

	for typeName, fields := range bindings {
		def := schema.Types[typeName]
		if def == nil || def.Kind != ast.Object {
			problems = append(problems, fmt.Sprintf("binding for unknown object type %s", typeName))
			continue
		}
		for fieldName, field := range fields {
			if def.Fields.ForName(fieldName) == nil {
				problems = append(problems, fmt.Sprintf("binding for unknown field %s.%s", typeName, fieldName))
			}
			if field.Resolve == nil {
				problems = append(problems, fmt.Sprintf("binding %s.%s has no resolver", typeName, fieldName))
			}
		}
	}

	for typeName, def := range schema.Types {
		if def.BuiltIn || def.Kind != ast.Object || isMetaName(typeName) {
			continue
		}
		for _, fieldDef := range def.Fields {
			if isMetaName(fieldDef.Name) {
				continue
			}
			if _, ok := bindings[typeName][fieldDef.Name]; !ok {
				problems = append(problems, fmt.Sprintf("field %s.%s is not bound", typeName, fieldDef.Name))
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return errors.Errorf("invalid resolver bindings: %s", strings.Join(problems, "; "))
	}
	return nil
}

func isMetaName(name string) bool {
	return strings.HasPrefix(name, "__")
}

// buildImplementors lists, for every object type, the type conditions a
// fragment may use to select it.
func buildImplementors(schema *ast.Schema) map[string][]string {
	result := make(map[string][]string)
	for name, def := range schema.Types {
		if def.Kind != ast.Object {
			continue
		}
		result[name] = append([]string{name}, def.Interfaces...)
	}
	for name, def := range schema.Types {
		if def.Kind != ast.Union {
			continue
		}
		for _, member := range def.Types {
			result[member] = append(result[member], name)
		}
	}
	return result
}

func (e *ExecutableSchema) Schema() *ast.Schema {
	return e.schema
}

// Complexity defers to gqlgen's default of one point per field plus the
// complexity of its children.
func (e *ExecutableSchema) Complexity(typeName, fieldName string, childComplexity int, args map[string]any) (int, bool) {
	return 0, false
}

func (e *ExecutableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)

	var root *ast.Definition
	switch opCtx.Operation.Operation {
	case ast.Query:
		root = e.schema.Query
	case ast.Mutation:
		root = e.schema.Mutation
	case ast.Subscription:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "subscriptions are not supported"))
	}
	if root == nil {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false

		ctx = withSchema(ctx, e.schema)
		ex := &execution{schema: e, opCtx: opCtx}
		data, errored := ex.executeObject(ctx, root, opCtx.Operation.SelectionSet, nil)

		var value any
		if !errored {
			value = data
		}
		buf, err := encodeResult(value)
		if err != nil {
			graphql.AddError(ctx, errors.Wrap(err, "failed to encode result"))
			buf = []byte("null")
		}
		return &graphql.Response{Data: buf}
	}
}

func (e *ExecutableSchema) lookup(typeName, fieldName string) (Field, bool) {
	if field, ok := e.bindings[typeName][fieldName]; ok {
		return field, true
	}
	field, ok := introspectionBindings[typeName][fieldName]
	return field, ok
}
