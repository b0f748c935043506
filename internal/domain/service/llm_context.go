// Package service 定义跨层共享的 LLM 调用上下文约定
package service

import (
	"context"
	"strings"

	"github.com/LaytonGott/postup-standalone/pkg/logger"
)

// 工作流名称，用于指标标签与日志
const (
	WorkflowPostGenerate = "post_generate"
	WorkflowPostRefine   = "post_refine"
)

type llmCtxKey string

const (
	llmCtxKeyWorkflow llmCtxKey = "llm_workflow"
	llmCtxKeyProvider llmCtxKey = "llm_provider"
)

const unknown = "unknown"

// WithWorkflowProvider 记录当前调用所属工作流与提供商，同时写入日志上下文
func WithWorkflowProvider(ctx context.Context, workflow, provider string) context.Context {
	if ctx == nil {
		return nil
	}
	if w := strings.TrimSpace(workflow); w != "" {
		ctx = context.WithValue(ctx, llmCtxKeyWorkflow, w)
		ctx = logger.WithContext(ctx, logger.WorkflowKey, w)
	}
	if p := strings.TrimSpace(provider); p != "" {
		ctx = context.WithValue(ctx, llmCtxKeyProvider, p)
		ctx = logger.WithContext(ctx, logger.ProviderKey, p)
	}
	return ctx
}

// WorkflowFromContext 读取工作流名称，缺失时为 "unknown"
func WorkflowFromContext(ctx context.Context) string {
	return stringFromContext(ctx, llmCtxKeyWorkflow)
}

// ProviderFromContext 读取提供商名称，缺失时为 "unknown"
func ProviderFromContext(ctx context.Context) string {
	return stringFromContext(ctx, llmCtxKeyProvider)
}

func stringFromContext(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return unknown
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return unknown
	}
	return s
}
