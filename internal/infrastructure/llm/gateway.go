package llm

import (
	"context"

	openaiopts "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/LaytonGott/postup-standalone/internal/config"
	"github.com/LaytonGott/postup-standalone/internal/workflow/node"
	"github.com/LaytonGott/postup-standalone/internal/workflow/port"
	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
	"github.com/LaytonGott/postup-standalone/pkg/logger"
	"github.com/LaytonGott/postup-standalone/pkg/metrics"
)

// Gateway 补全网关：一次请求一次上游调用，不做重试
type Gateway struct {
	config  *config.LLMConfig
	factory port.ChatModelFactory
}

var _ port.Completer = (*Gateway)(nil)

// NewGateway 创建补全网关
func NewGateway(cfg *config.Config, factory port.ChatModelFactory) *Gateway {
	return &Gateway{config: &cfg.LLM, factory: factory}
}

// Preflight 检查密钥是否已配置
func (g *Gateway) Preflight(ctx context.Context, provider string) error {
	return g.factory.Preflight(provider)
}

// Complete 发送系统提示与用户提示并返回原始文本。
// 要求 JSON 时先携带 response_format=json_object，提供商不支持该参数则去掉后再发一次。
func (g *Gateway) Complete(ctx context.Context, req port.CompletionRequest) (*port.Completion, error) {
	name, providerCfg, ok := g.config.Provider(req.Provider)
	if !ok {
		return nil, apperrors.Configuration("LLM provider " + name + " not configured")
	}

	chatModel, err := g.factory.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	msgs := []*schema.Message{
		schema.SystemMessage(req.System),
		schema.UserMessage(req.User),
	}

	jsonMode := req.WantsJSON && providerCfg.JSONMode
	outMsg, err := chatModel.Generate(ctx, msgs, buildModelOptions(jsonMode)...)
	if err != nil && jsonMode && node.IsResponseFormatUnsupportedError(err) {
		logger.Warn(ctx, "llm response_format not supported, fallback to prompt-only",
			"provider", name,
			"model", providerCfg.Model,
			"error", err.Error(),
		)
		metrics.LLMJSONModeFallbackTotal.WithLabelValues(name).Inc()
		outMsg, err = chatModel.Generate(ctx, msgs, buildModelOptions(false)...)
	}
	if err != nil {
		return nil, upstreamError(err)
	}
	if outMsg == nil || outMsg.Content == "" {
		return nil, apperrors.ErrEmptyUpstream
	}

	out := &port.Completion{
		Text:     outMsg.Content,
		Provider: name,
		Model:    providerCfg.Model,
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		out.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		out.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
	}
	return out, nil
}

func buildModelOptions(jsonMode bool) []model.Option {
	opts := make([]model.Option, 0, 1)
	if jsonMode {
		opts = append(opts, openaiopts.WithExtraFields(map[string]any{
			"response_format": map[string]any{"type": "json_object"},
		}))
	}
	return opts
}
