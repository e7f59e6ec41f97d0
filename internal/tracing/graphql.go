package tracing

import (
	"context"
	"sync"

	"github.com/99designs/gqlgen/graphql"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
)

// GraphQLTracer is a gqlgen handler extension that opens one span per
// operation and one child span per computed field (root fields and
// relationship fields). Plain record properties are not traced.
type GraphQLTracer struct{}

var _ interface {
	graphql.HandlerExtension
	graphql.OperationInterceptor
	graphql.FieldInterceptor
} = GraphQLTracer{}

func (GraphQLTracer) ExtensionName() string {
	return "OpenTracing"
}

func (GraphQLTracer) Validate(graphql.ExecutableSchema) error {
	return nil
}

func (GraphQLTracer) InterceptOperation(ctx context.Context, next graphql.OperationHandler) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	operationName := opCtx.OperationName
	operationType := "query"
	if opCtx.Operation != nil {
		operationType = string(opCtx.Operation.Operation)
		if operationName == "" {
			operationName = opCtx.Operation.Name
		}
	}
	if operationName == "" {
		operationName = "anonymous"
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "graphql."+operationType+"."+operationName)
	SetDefaultGraphqlSpanTags(ctx, span)
	span.SetTag("graphql.operation.type", operationType)
	span.SetTag("graphql.operation.name", operationName)

	handler := next(ctx)

	var once sync.Once
	return func(ctx context.Context) *graphql.Response {
		resp := handler(ctx)
		once.Do(func() {
			if resp != nil && len(resp.Errors) > 0 {
				ext.Error.Set(span, true)
				span.LogFields(log.String("graphql.errors", resp.Errors.Error()))
			}
			span.Finish()
		})
		return resp
	}
}

func (GraphQLTracer) InterceptField(ctx context.Context, next graphql.Resolver) (any, error) {
	fc := graphql.GetFieldContext(ctx)
	if fc == nil || !fc.IsResolver {
		return next(ctx)
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, fc.Object+"."+fc.Field.Name)
	defer span.Finish()
	TagComponentGraphql(span)
	span.SetTag("graphql.path", fc.Path().String())

	res, err := next(ctx)
	TraceErr(span, err)
	return res, err
}
