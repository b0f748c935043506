package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
	"github.com/LaytonGott/postup-standalone/pkg/logger"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	version  string
	checkers map[string]func(ctx context.Context) error
}

// NewHealthHandler 创建健康检查处理器；svc 用于就绪检查中的密钥检查
func NewHealthHandler(version string, svc PostService) *HealthHandler {
	h := &HealthHandler{version: version, checkers: map[string]func(ctx context.Context) error{}}
	if svc != nil {
		h.checkers["llm_credentials"] = svc.Preflight
	}
	return h
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

// Ready 就绪检查接口；密钥未配置时返回 503
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	ready := true
	checks := make(map[string]*readinessCheck, len(h.checkers))
	for name, check := range h.checkers {
		if err := check(ctx); err != nil {
			// 只暴露对外文案，错误码与细节进日志
			logger.Warn(ctx, "readiness check failed", "check", name, "error", err.Error())
			checks[name] = &readinessCheck{Status: "error", Error: apperrors.AsAppError(err).Message}
			ready = false
			continue
		}
		checks[name] = &readinessCheck{Status: "ok"}
	}

	resp := readinessResponse{Status: "ok", Checks: checks}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
