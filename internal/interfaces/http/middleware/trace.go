package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/LaytonGott/postup-standalone/pkg/logger"
	"github.com/LaytonGott/postup-standalone/pkg/tracer"
)

// Trace 为每个请求开启服务端 span；skipPaths 中的探针端点不产生 span
func Trace(serviceName string, skipPaths ...string) gin.HandlerFunc {
	skip := pathSet(skipPaths)
	return otelgin.Middleware(serviceName,
		otelgin.WithFilter(func(r *http.Request) bool { return !skip[r.URL.Path] }),
	)
}

// TraceContext 把当前 span 的 ID 带进日志上下文，并通过响应头回给调用方
func TraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if traceID := tracer.TraceID(ctx); traceID != "" {
			ctx = logger.WithContext(ctx, logger.TraceIDKey, traceID)
			ctx = logger.WithContext(ctx, logger.SpanIDKey, tracer.SpanID(ctx))
			c.Request = c.Request.WithContext(ctx)

			c.Set(string(logger.TraceIDKey), traceID)
			c.Header(TraceIDHeader, traceID)
		}
		c.Next()
	}
}
