// Package post 编排帖子生成与快捷改写
package post

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/LaytonGott/postup-standalone/internal/config"
	"github.com/LaytonGott/postup-standalone/internal/domain/entity"
	"github.com/LaytonGott/postup-standalone/internal/workflow/chain"
	wfmodel "github.com/LaytonGott/postup-standalone/internal/workflow/model"
	workflowport "github.com/LaytonGott/postup-standalone/internal/workflow/port"
	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
	"github.com/LaytonGott/postup-standalone/pkg/logger"
	"github.com/LaytonGott/postup-standalone/pkg/metrics"
	"github.com/LaytonGott/postup-standalone/pkg/tracer"
)

const (
	kindGenerate = "generate"
	kindRefine   = "refine"
)

// Request 原始请求字段，枚举值尚未解析
type Request struct {
	Content     string
	Tone        string
	InputType   string
	Niche       string
	Action      string
	CurrentPost string
}

// Result 生成或改写结果；Refinement 为 true 时仅 Refined 有效
type Result struct {
	Refinement bool
	Generation *entity.GenerationResult
	Refined    string
	Stats      []entity.VariationStats
}

// Service 帖子服务
type Service struct {
	completer workflowport.Completer
	chain     *chain.PostChain
	provider  string
}

func NewService(cfg *config.Config, completer workflowport.Completer, postChain *chain.PostChain) *Service {
	return &Service{
		completer: completer,
		chain:     postChain,
		provider:  cfg.LLM.DefaultProvider,
	}
}

// Preflight 检查默认提供商的密钥，缺失时返回配置错误
func (s *Service) Preflight(ctx context.Context) error {
	return s.completer.Preflight(ctx, s.provider)
}

// Generate 校验请求后执行生成链。
// 密钥检查由调用方先行调用 Preflight 完成；未检查时网关仍会返回配置错误。
func (s *Service) Generate(ctx context.Context, req *Request) (*Result, error) {
	in, err := s.buildInput(req)
	if err != nil {
		return nil, err
	}

	kind := kindGenerate
	if in.IsRefinement() {
		kind = kindRefine
	}

	ctx, span := tracer.Start(ctx, "post."+kind)
	defer span.End()

	start := time.Now()
	out, err := s.chain.Invoke(ctx, in)
	metrics.PostDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		appErr := apperrors.AsAppError(err)
		metrics.PostRequestsTotal.WithLabelValues(kind, "error").Inc()
		if appErr.Code == apperrors.CodeMalformedResponse {
			metrics.ResponseValidationTotal.WithLabelValues(kind, "invalid").Inc()
		}
		tracer.RecordError(span, err)
		logger.Error(ctx, "post "+kind+" failed", err,
			"code", string(appErr.Code),
			"status", appErr.HTTPStatus,
			"detail", appErr.Detail,
		)
		return nil, appErr
	}
	metrics.PostRequestsTotal.WithLabelValues(kind, "success").Inc()
	metrics.ResponseValidationTotal.WithLabelValues(kind, "valid").Inc()

	if in.IsRefinement() {
		logger.Info(ctx, "post refined",
			"action", string(in.Action),
			"characters", utf8.RuneCountInString(out.Refined),
		)
		return &Result{Refinement: true, Refined: out.Refined}, nil
	}

	stats := StatsFor(out.Result)
	for _, st := range stats {
		metrics.PostCharacterCount.Observe(float64(st.CharacterCount))
	}
	metrics.PostConfidenceScore.Observe(float64(out.Result.ConfidenceScore))
	logger.Info(ctx, "post generated",
		"tone", string(in.Settings.Tone),
		"input_type", string(in.Settings.InputType),
		"niche", string(in.Settings.Niche),
		"variations", len(out.Result.Variations),
		"confidence", out.Result.ConfidenceScore,
		"prompt_tokens", out.Meta.PromptTokens,
		"completion_tokens", out.Meta.CompletionTokens,
	)
	return &Result{Generation: out.Result, Stats: stats}, nil
}

// buildInput 解析枚举并确定本次是生成还是改写。
// 未指定 action 时以 content 为输入，content 为空则退回 currentPost。
func (s *Service) buildInput(req *Request) (*wfmodel.PostInput, error) {
	if req == nil {
		req = &Request{}
	}
	hasContent := strings.TrimSpace(req.Content) != ""
	hasPost := strings.TrimSpace(req.CurrentPost) != ""
	if !hasContent && !hasPost {
		return nil, apperrors.ErrContentRequired
	}

	action, isRefinement, err := entity.ParseQuickAction(req.Action)
	if err != nil {
		return nil, apperrors.InvalidParam(err.Error())
	}
	tone, err := entity.ParseTone(req.Tone)
	if err != nil {
		return nil, apperrors.InvalidParam(err.Error())
	}
	inputType, err := entity.ParseInputType(req.InputType)
	if err != nil {
		return nil, apperrors.InvalidParam(err.Error())
	}
	niche, err := entity.ParseNiche(req.Niche)
	if err != nil {
		return nil, apperrors.InvalidParam(err.Error())
	}

	in := &wfmodel.PostInput{
		Settings: entity.GenerationSettings{Tone: tone, InputType: inputType, Niche: niche},
		Provider: s.provider,
	}
	switch {
	case isRefinement && !hasPost:
		return nil, apperrors.InvalidParam(fmt.Sprintf("currentPost is required for action %q", action))
	case isRefinement:
		in.Action = action
		in.CurrentPost = req.CurrentPost
	case hasContent:
		in.Content = req.Content
	default:
		in.Content = req.CurrentPost
	}
	return in, nil
}
