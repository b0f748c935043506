package llm

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	goopenai "github.com/meguminnnnnnnnn/go-openai"

	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
)

// 部分适配层只保留错误文本，如 "error, status code: 429, status: 429 Too Many Requests, message: rate limited"
var statusPattern = regexp.MustCompile(`status code: (\d{3})(?:, status: [^,]*)?, message: (.*?)(?:, body: .*)?$`)

// upstreamError 将提供商错误转为 UpstreamError，尽量保留状态码与提供商给出的消息
func upstreamError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apperrors.Upstream(apiErr.HTTPStatusCode, strings.TrimSpace(apiErr.Message), err)
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return apperrors.Upstream(reqErr.HTTPStatusCode, "", err)
	}

	if m := statusPattern.FindStringSubmatch(err.Error()); m != nil {
		status, _ := strconv.Atoi(m[1])
		return apperrors.Upstream(status, strings.TrimSpace(m[2]), err)
	}
	return apperrors.Upstream(0, "", err)
}
