package router

import (
	"github.com/gin-gonic/gin"

	"github.com/LaytonGott/postup-standalone/internal/interfaces/http/handler"
)

// RegisterAPIRoutes 注册 /api 路由
func RegisterAPIRoutes(api *gin.RouterGroup, postHandler *handler.PostHandler) {
	api.POST("/generate", postHandler.Generate)
	api.GET("/options", postHandler.Options)
}

// RegisterSystemRoutes 注册探针路由
func RegisterSystemRoutes(engine *gin.Engine, healthHandler *handler.HealthHandler) {
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/live", healthHandler.Live)
}
