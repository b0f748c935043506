package eino

import (
	"context"

	llmctx "github.com/LaytonGott/postup-standalone/internal/domain/service"
)

// WorkflowFromContext 读取当前调用所属工作流
func WorkflowFromContext(ctx context.Context) string {
	return llmctx.WorkflowFromContext(ctx)
}

// ProviderFromContext 读取当前调用的提供商
func ProviderFromContext(ctx context.Context) string {
	return llmctx.ProviderFromContext(ctx)
}
