// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	postapp "github.com/LaytonGott/postup-standalone/internal/application/post"
	"github.com/LaytonGott/postup-standalone/internal/interfaces/http/dto"
	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
	"github.com/LaytonGott/postup-standalone/pkg/logger"
)

// PostService 帖子服务的最小依赖
type PostService interface {
	Preflight(ctx context.Context) error
	Generate(ctx context.Context, req *postapp.Request) (*postapp.Result, error)
}

// PostHandler 帖子生成处理器
type PostHandler struct {
	svc PostService
}

// NewPostHandler 创建帖子生成处理器
func NewPostHandler(svc PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// Generate 生成帖子或执行快捷改写
// @Summary 生成 LinkedIn 帖子
// @Description 无 action 时根据 content 生成多个版本；有 action 时改写 currentPost
// @Tags Posts
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "生成请求"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/generate [post]
func (h *PostHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	// 密钥缺失优先于请求体校验
	if err := h.svc.Preflight(ctx); err != nil {
		logger.Error(ctx, "llm credential not configured", err)
		dto.FromError(c, err)
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn(ctx, "invalid generate request body", "error", err.Error())
		dto.FromError(c, apperrors.ErrInvalidParam.WithDetail(err.Error()))
		return
	}

	result, err := h.svc.Generate(ctx, req.ToServiceRequest())
	if err != nil {
		dto.FromError(c, err)
		return
	}
	dto.Success(c, dto.NewGenerateResponse(result))
}

// Options 返回前端下拉选项与字数限制
// @Summary 获取生成选项
// @Tags Posts
// @Produce json
// @Success 200 {object} dto.OptionsResponse
// @Router /api/options [get]
func (h *PostHandler) Options(c *gin.Context) {
	dto.Success(c, dto.NewOptionsResponse())
}
