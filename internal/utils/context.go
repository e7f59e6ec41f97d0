package utils

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type CustomContext struct {
	AppSource string
	RequestId string
	ClientIP  string
	UserAgent string
}

type contextKey string

const customContextKey contextKey = "CUSTOM_CONTEXT"

const (
	GinKeyRequestId = "RequestId"

	HeaderRequestId = "X-Request-Id"
)

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey, customContext)
}

func WithCustomContextFromGinRequest(c *gin.Context, appSource string) context.Context {
	customContext := &CustomContext{
		AppSource: appSource,
		RequestId: c.GetString(GinKeyRequestId),
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	return WithCustomContext(c.Request.Context(), customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey).(*CustomContext)
	if !ok {
		return new(CustomContext)
	}
	return customContext
}

func GetAppSourceFromContext(ctx context.Context) string {
	return GetContext(ctx).AppSource
}

func GetRequestIdFromContext(ctx context.Context) string {
	return GetContext(ctx).RequestId
}

func SetAppSourceInContext(ctx context.Context, appSource string) context.Context {
	customContext := *GetContext(ctx)
	customContext.AppSource = appSource
	return WithCustomContext(ctx, &customContext)
}

func ValidateAppSource(ctx context.Context) error {
	if GetAppSourceFromContext(ctx) == "" {
		return errors.New("app source is missing")
	}
	return nil
}
