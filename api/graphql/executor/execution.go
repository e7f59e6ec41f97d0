package executor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
)

// execution holds the state of a single operation. Every complete* method
// returns the completed value together with an errored flag: errored means
// the value is null because an error was already recorded at or below that
// position. A nullable slot absorbs it, a non-null slot passes it upwards.
type execution struct {
	schema *ExecutableSchema
	opCtx  *graphql.OperationContext
}

func (ex *execution) executeObject(ctx context.Context, def *ast.Definition, selSet ast.SelectionSet, parent any) (*orderedObject, bool) {
	fields := graphql.CollectFields(ex.opCtx, selSet, ex.schema.implementors[def.Name])
	out := newOrderedObject(len(fields))

	for _, field := range fields {
		if field.Name == "__typename" {
			out.set(field.Alias, def.Name)
			continue
		}

		fieldDef := field.Definition
		if fieldDef == nil {
			fieldDef = def.Fields.ForName(field.Name)
		}
		if fieldDef == nil {
			graphql.AddErrorf(ctx, "unknown field %s.%s", def.Name, field.Name)
			return nil, true
		}

		value, errored := ex.executeField(ctx, def, fieldDef, field, parent)
		if errored && fieldDef.Type.NonNull {
			return nil, true
		}
		out.set(field.Alias, value)
	}

	return out, false
}

func (ex *execution) executeField(ctx context.Context, object *ast.Definition, fieldDef *ast.FieldDefinition, field graphql.CollectedField, parent any) (any, bool) {
	binding, ok := ex.lookupField(object, field.Name)

	args := field.ArgumentMap(ex.opCtx.Variables)
	fc := &graphql.FieldContext{
		Object:     object.Name,
		Field:      field,
		Args:       args,
		IsMethod:   binding.Computed,
		IsResolver: binding.Computed,
	}
	ctx = graphql.WithFieldContext(ctx, fc)

	if !ok {
		if object.BuiltIn {
			// introspection fields this executor does not know resolve to null
			return ex.completeValue(ctx, fieldDef.Type, field, nil)
		}
		graphql.AddErrorf(ctx, "no resolver bound for %s.%s", object.Name, field.Name)
		return nil, true
	}

	result, err := ex.resolve(ctx, binding, parent, args)
	if err != nil {
		graphql.AddError(ctx, err)
		return nil, true
	}
	fc.Result = result

	return ex.completeValue(ctx, fieldDef.Type, field, result)
}

func (ex *execution) lookupField(object *ast.Definition, fieldName string) (Field, bool) {
	if object == ex.schema.schema.Query && isMetaName(fieldName) {
		field, ok := metaRootFields[fieldName]
		return field, ok
	}
	return ex.schema.lookup(object.Name, fieldName)
}

// resolve runs the binding through the resolver middleware chain registered
// by handler extensions and converts panics into field errors.
func (ex *execution) resolve(ctx context.Context, binding Field, parent any, args map[string]any) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			if ex.opCtx.RecoverFunc != nil {
				err = ex.opCtx.Recover(ctx, r)
			} else {
				err = fmt.Errorf("internal system error: %v", r)
			}
		}
	}()

	next := func(ctx context.Context) (any, error) {
		return binding.Resolve(ctx, parent, args)
	}
	if ex.opCtx.ResolverMiddleware == nil {
		return next(ctx)
	}
	return ex.opCtx.ResolverMiddleware(ctx, next)
}

func (ex *execution) completeValue(ctx context.Context, typ *ast.Type, field graphql.CollectedField, value any) (any, bool) {
	if typ.NonNull {
		nullable := *typ
		nullable.NonNull = false

		completed, errored := ex.completeValue(ctx, &nullable, field, value)
		if errored {
			return nil, true
		}
		if completed == nil {
			if !graphql.HasFieldError(ctx, graphql.GetFieldContext(ctx)) {
				graphql.AddErrorf(ctx, "must not be null")
			}
			return nil, true
		}
		return completed, false
	}

	if isNil(value) {
		return nil, false
	}

	if typ.Elem != nil {
		return ex.completeList(ctx, typ.Elem, field, value)
	}

	def := ex.schema.schema.Types[typ.NamedType]
	if def == nil {
		graphql.AddErrorf(ctx, "unknown type %s", typ.NamedType)
		return nil, true
	}

	switch def.Kind {
	case ast.Scalar:
		coerced, err := coerceScalar(def.Name, value)
		if err != nil {
			graphql.AddError(ctx, err)
			return nil, true
		}
		return coerced, false
	case ast.Enum:
		coerced, err := coerceEnum(def, value)
		if err != nil {
			graphql.AddError(ctx, err)
			return nil, true
		}
		return coerced, false
	case ast.Object:
		obj, errored := ex.executeObject(ctx, def, field.Selections, value)
		if errored {
			return nil, true
		}
		return obj, false
	case ast.Interface, ast.Union:
		concrete, err := ex.resolveAbstract(def, value)
		if err != nil {
			graphql.AddError(ctx, err)
			return nil, true
		}
		obj, errored := ex.executeObject(ctx, concrete, field.Selections, value)
		if errored {
			return nil, true
		}
		return obj, false
	default:
		graphql.AddErrorf(ctx, "type %s of kind %s cannot be used as output", def.Name, def.Kind)
		return nil, true
	}
}

func (ex *execution) completeList(ctx context.Context, elem *ast.Type, field graphql.CollectedField, value any) (any, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		graphql.AddErrorf(ctx, "expected a list, got %T", value)
		return nil, true
	}

	items := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		idx := i
		item := rv.Index(i).Interface()
		itemCtx := graphql.WithFieldContext(ctx, &graphql.FieldContext{
			Index:  &idx,
			Result: item,
		})

		completed, errored := ex.completeValue(itemCtx, elem, field, item)
		if errored && elem.NonNull {
			return nil, true
		}
		items[i] = completed
	}
	return items, false
}

func (ex *execution) resolveAbstract(def *ast.Definition, value any) (*ast.Definition, error) {
	typed, ok := value.(Typed)
	if !ok {
		return nil, fmt.Errorf("cannot determine the concrete type of %T for %s", value, def.Name)
	}
	name := typed.GraphQLTypeName()
	for _, possible := range ex.schema.schema.GetPossibleTypes(def) {
		if possible.Name == name {
			return possible, nil
		}
	}
	return nil, fmt.Errorf("%s is not a possible type for %s", name, def.Name)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
