package model

import (
	"time"

	"github.com/LaytonGott/postup-standalone/internal/domain/entity"
)

// PromptPair 一次请求所用的系统提示与用户提示
type PromptPair struct {
	System string
	User   string
}

// PostInput 生成链输入；Action 非空时为改写已有帖子
type PostInput struct {
	Settings    entity.GenerationSettings
	Content     string
	Action      entity.QuickAction
	CurrentPost string

	Provider string
}

// IsRefinement 是否为快捷改写
func (in *PostInput) IsRefinement() bool {
	return in != nil && in.Action != ""
}

// PostOutput 生成链输出，Result 与 Refined 二选一
type PostOutput struct {
	Result  *entity.GenerationResult
	Refined string
	Raw     string
	Meta    CompletionMeta
}

// CompletionMeta 上游调用的模型与用量，只用于日志和指标
type CompletionMeta struct {
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	CompletedAt      time.Time
}
