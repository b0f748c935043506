package node

import "strings"

// IsResponseFormatUnsupportedError 判断提供商是否拒绝了 response_format 参数，
// 命中时调用方去掉该参数重试一次，仅依赖提示词约束输出
func IsResponseFormatUnsupportedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "response_format"):
		return true
	case strings.Contains(msg, "json_object"):
		return true
	case strings.Contains(msg, "unknown parameter") && strings.Contains(msg, "response"):
		return true
	case strings.Contains(msg, "extra inputs are not permitted"):
		return true
	default:
		return false
	}
}
