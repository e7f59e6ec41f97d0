package utils

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNanoIDWithPrefix(t *testing.T) {
	id := GenerateNanoIDWithPrefix("event", 21)
	require.True(t, strings.HasPrefix(id, "event_"))
	assert.Len(t, strings.TrimPrefix(id, "event_"), 21)

	assert.NotEqual(t, id, GenerateNanoIDWithPrefix("event", 21))
	assert.Len(t, GenerateNanoIDWithPrefix("", 8), 8)
}

func TestGetContext_Empty(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetAppSourceFromContext(ctx))
	assert.Equal(t, "", GetRequestIdFromContext(ctx))
	assert.Error(t, ValidateAppSource(ctx))
}

func TestSetAppSourceInContext_DoesNotMutateParent(t *testing.T) {
	parent := WithCustomContext(context.Background(), &CustomContext{AppSource: "a", RequestId: "r1"})
	child := SetAppSourceInContext(parent, "b")

	assert.Equal(t, "a", GetAppSourceFromContext(parent))
	assert.Equal(t, "b", GetAppSourceFromContext(child))
	assert.Equal(t, "r1", GetRequestIdFromContext(child))
	assert.NoError(t, ValidateAppSource(child))
}

func TestWithCustomContextFromGinRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/graphql", nil)
	c.Request.Header.Set("User-Agent", "test-agent")
	c.Set(GinKeyRequestId, "req-1")

	ctx := WithCustomContextFromGinRequest(c, "bookgraph")

	custom := GetContext(ctx)
	assert.Equal(t, "bookgraph", custom.AppSource)
	assert.Equal(t, "req-1", custom.RequestId)
	assert.Equal(t, "test-agent", custom.UserAgent)
}

func TestEntityId(t *testing.T) {
	assert.Equal(t, "4", EntityId(4))
	assert.Equal(t, "120", EntityId(120))
}
