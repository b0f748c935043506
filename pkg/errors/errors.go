// Package errors 提供统一的错误定义
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeUnknown       ErrorCode = "1000"
	CodeInvalidParam  ErrorCode = "1001"
	CodeConfiguration ErrorCode = "1009"

	// 生成错误 (4xxx)
	CodeEmptyResponse     ErrorCode = "4007"
	CodeMalformedResponse ErrorCode = "4008"

	// 外部服务错误 (5xxx)
	CodeLLMProviderError ErrorCode = "5005"
)

// AppError 应用错误；Message 原样返回给客户端，Detail 与 Err 只进日志
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码匹配，便于 errors.Is 与预定义错误比较
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail 返回带详细信息的副本
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Err = err
	return appErr
}

// codeToHTTPStatus 错误码转 HTTP 状态码；除参数错误外一律 500
func codeToHTTPStatus(code ErrorCode) int {
	if code == CodeInvalidParam {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// 预定义错误，Message 即响应体中的 error 文案
var (
	ErrInvalidParam      = New(CodeInvalidParam, "Invalid request body")
	ErrContentRequired   = New(CodeInvalidParam, "Content is required")
	ErrConfiguration     = New(CodeConfiguration, "Anthropic API key not configured")
	ErrUpstream          = New(CodeLLMProviderError, "API request failed")
	ErrEmptyUpstream     = New(CodeEmptyResponse, "Empty response from AI")
	ErrMalformedResponse = New(CodeMalformedResponse, "Failed to parse response")
	ErrUnknown           = New(CodeUnknown, "Failed to generate content")
)

// InvalidParam 创建参数错误
func InvalidParam(message string) *AppError {
	return New(CodeInvalidParam, message)
}

// Configuration 创建配置错误
func Configuration(message string) *AppError {
	if message == "" {
		message = ErrConfiguration.Message
	}
	return New(CodeConfiguration, message)
}

// Upstream 创建上游错误；status 缺失时回落到 500，message 缺失时使用通用文案
func Upstream(status int, message string, err error) *AppError {
	if message == "" {
		message = ErrUpstream.Message
	}
	appErr := Wrap(err, CodeLLMProviderError, message)
	if status >= 400 && status <= 599 {
		appErr.HTTPStatus = status
	}
	return appErr
}

// Malformed 创建模型输出解析错误
func Malformed(detail string, err error) *AppError {
	appErr := Wrap(err, CodeMalformedResponse, ErrMalformedResponse.Message)
	appErr.Detail = detail
	return appErr
}

// IsAppError 检查错误链中是否存在 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, ErrUnknown.Message)
}
