package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	postapp "github.com/LaytonGott/postup-standalone/internal/application/post"
	"github.com/LaytonGott/postup-standalone/internal/domain/entity"
	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
)

// GenerateResponse 生成成功响应。
// result 为结构化结果（生成）或字符串（改写）；variationStats 仅生成时返回。
type GenerateResponse struct {
	Result         any                     `json:"result"`
	VariationStats []entity.VariationStats `json:"variationStats,omitempty"`
}

// ErrorResponse 错误响应，只有一条可展示的消息
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewGenerateResponse 由应用层结果构造响应
func NewGenerateResponse(r *postapp.Result) GenerateResponse {
	if r.Refinement {
		return GenerateResponse{Result: r.Refined}
	}
	return GenerateResponse{Result: r.Generation, VariationStats: r.Stats}
}

// Success 返回 200
func Success[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, data)
}

// Error 返回错误响应
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, ErrorResponse{Error: message})
}

// FromError 按 AppError 的状态码与消息返回；未知错误统一为 500 通用文案
func FromError(c *gin.Context, err error) {
	if !apperrors.IsAppError(err) {
		Error(c, http.StatusInternalServerError, apperrors.ErrUnknown.Message)
		return
	}
	appErr := apperrors.AsAppError(err)
	status := appErr.HTTPStatus
	if status < http.StatusBadRequest || status > 599 {
		status = http.StatusInternalServerError
	}
	Error(c, status, appErr.Message)
}
