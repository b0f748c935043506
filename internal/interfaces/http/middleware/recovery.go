package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
	"github.com/LaytonGott/postup-standalone/pkg/logger"
)

// Recovery Panic 恢复中间件；堆栈只进日志，响应体只有通用文案
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					fmt.Errorf("%v", r),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": apperrors.ErrUnknown.Message,
				})
			}
		}()

		c.Next()
	}
}
