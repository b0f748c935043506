package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LaytonGott/postup-standalone/pkg/metrics"
)

// unmatchedRoute 未命中路由的请求共用一个标签，避免任意路径撑爆基数
const unmatchedRoute = "unmatched"

// Metrics 按路由模板统计请求数、耗时与收发字节数；skipPaths 中的端点不计入
func Metrics(skipPaths ...string) gin.HandlerFunc {
	skip := pathSet(skipPaths)

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		method, route := c.Request.Method, routeLabel(c)
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		if n := c.Request.ContentLength; n > 0 {
			metrics.HTTPRequestSize.WithLabelValues(method, route).Observe(float64(n))
		}
		// gin 未写响应时 Size 为 -1
		if n := c.Writer.Size(); n > 0 {
			metrics.HTTPResponseSize.WithLabelValues(method, route).Observe(float64(n))
		}
	}
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}
