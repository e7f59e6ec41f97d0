package tracing

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/bookgraph/internal/utils"
)

func withMockTracer(t *testing.T) *mocktracer.MockTracer {
	previous := opentracing.GlobalTracer()
	tracer := mocktracer.New()
	opentracing.SetGlobalTracer(tracer)
	t.Cleanup(func() {
		opentracing.SetGlobalTracer(previous)
	})
	return tracer
}

func TestInitJaeger(t *testing.T) {
	cfg := initJaeger(&JaegerConfig{
		ServiceName:  "bookgraph",
		AgentHost:    "jaeger",
		AgentPort:    "6831",
		SamplerType:  "const",
		SamplerParam: 1,
	})

	assert.True(t, cfg.Disabled)
	assert.Equal(t, "jaeger:6831", cfg.Reporter.LocalAgentHostPort)
	assert.Empty(t, cfg.Reporter.CollectorEndpoint)

	cfg = initJaeger(&JaegerConfig{Enabled: true, Endpoint: "http://collector:14268/api/traces"})
	assert.False(t, cfg.Disabled)
	assert.Equal(t, "http://collector:14268/api/traces", cfg.Reporter.CollectorEndpoint)
}

func TestStartHttpServerTracerSpanWithHeader(t *testing.T) {
	tracer := withMockTracer(t)

	ctx, span := StartHttpServerTracerSpanWithHeader(context.Background(), "POST /graphql", http.Header{})
	span.Finish()

	assert.Equal(t, span, opentracing.SpanFromContext(ctx))
	require.Len(t, tracer.FinishedSpans(), 1)
	assert.Equal(t, "POST /graphql", tracer.FinishedSpans()[0].OperationName)
}

func TestSetDefaultGraphqlSpanTags(t *testing.T) {
	tracer := withMockTracer(t)

	ctx := utils.WithCustomContext(context.Background(), &utils.CustomContext{AppSource: "bookgraph", RequestId: "req-1"})
	span, ctx := StartTracerSpan(ctx, "op")
	SetDefaultGraphqlSpanTags(ctx, span)
	TraceErr(span, errors.New("boom"))
	span.Finish()

	finished := tracer.FinishedSpans()
	require.Len(t, finished, 1)
	assert.Equal(t, "bookgraph", finished[0].Tag(SpanTagAppSource))
	assert.Equal(t, "req-1", finished[0].Tag(SpanTagRequestId))
	assert.Equal(t, SpanTagComponentGraphQL, finished[0].Tag(SpanTagComponent))
	assert.Equal(t, true, finished[0].Tag("error"))
}

func TestTraceErr_NilSafe(t *testing.T) {
	TraceErr(nil, errors.New("ignored"))
	span := mocktracer.New().StartSpan("x")
	TraceErr(span, nil)
	span.Finish()
}
