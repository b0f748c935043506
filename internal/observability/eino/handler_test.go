package eino

import (
	"context"
	"testing"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmctx "github.com/LaytonGott/postup-standalone/internal/domain/service"
	"github.com/LaytonGott/postup-standalone/pkg/metrics"
)

func callCount(workflow, provider, modelName, status string) float64 {
	return testutil.ToFloat64(metrics.LLMCallTotal.WithLabelValues(workflow, provider, modelName, status))
}

func TestChatModelCallback_Success(t *testing.T) {
	h := newChatModelCallbackHandler()
	ctx := llmctx.WithWorkflowProvider(context.Background(), "post_generate", "anthropic")

	calls := callCount("post_generate", "anthropic", "cb-success-model", "success")
	prompt := testutil.ToFloat64(metrics.LLMTokensUsed.WithLabelValues("post_generate", "anthropic", "cb-success-model", "prompt"))
	completion := testutil.ToFloat64(metrics.LLMTokensUsed.WithLabelValues("post_generate", "anthropic", "cb-success-model", "completion"))

	ctx = h.OnStart(ctx, &einocb.RunInfo{Name: "chat"}, &model.CallbackInput{
		Config: &model.Config{Model: "cb-success-model"},
	})
	require.NotNil(t, ctx)
	assert.Equal(t, "cb-success-model", modelFromContext(ctx))
	assert.GreaterOrEqual(t, elapsedSeconds(ctx), 0.0)

	h.OnEnd(ctx, &einocb.RunInfo{Name: "chat"}, &model.CallbackOutput{
		Config:     &model.Config{Model: "cb-success-model"},
		TokenUsage: &model.TokenUsage{PromptTokens: 3, CompletionTokens: 4},
	})

	assert.Equal(t, calls+1, callCount("post_generate", "anthropic", "cb-success-model", "success"))
	assert.Equal(t, prompt+3, testutil.ToFloat64(metrics.LLMTokensUsed.WithLabelValues("post_generate", "anthropic", "cb-success-model", "prompt")))
	assert.Equal(t, completion+4, testutil.ToFloat64(metrics.LLMTokensUsed.WithLabelValues("post_generate", "anthropic", "cb-success-model", "completion")))
}

func TestChatModelCallback_EndFallsBackToStartModel(t *testing.T) {
	h := newChatModelCallbackHandler()
	ctx := llmctx.WithWorkflowProvider(context.Background(), "post_refine", "anthropic")

	before := callCount("post_refine", "anthropic", "cb-fallback-model", "success")
	ctx = h.OnStart(ctx, nil, &model.CallbackInput{Config: &model.Config{Model: "cb-fallback-model"}})
	h.OnEnd(ctx, nil, &model.CallbackOutput{})

	assert.Equal(t, before+1, callCount("post_refine", "anthropic", "cb-fallback-model", "success"))
}

func TestChatModelCallback_Error(t *testing.T) {
	h := newChatModelCallbackHandler()
	ctx := llmctx.WithWorkflowProvider(context.Background(), "post_generate", "anthropic")

	failures := callCount("post_generate", "anthropic", "cb-error-model", "error")
	successes := callCount("post_generate", "anthropic", "cb-error-model", "success")

	ctx = h.OnStart(ctx, &einocb.RunInfo{Name: "chat"}, &model.CallbackInput{
		Config: &model.Config{Model: "cb-error-model"},
	})
	h.OnError(ctx, &einocb.RunInfo{Name: "chat"}, assert.AnError)

	assert.Equal(t, failures+1, callCount("post_generate", "anthropic", "cb-error-model", "error"))
	assert.Equal(t, successes, callCount("post_generate", "anthropic", "cb-error-model", "success"))
}

func TestElapsedSeconds_WithoutStart(t *testing.T) {
	assert.Zero(t, elapsedSeconds(context.Background()))
	assert.Empty(t, modelFromContext(context.Background()))
	assert.Empty(t, modelNameFromInput(nil))
	assert.Empty(t, modelNameFromOutput(&model.CallbackOutput{}))
}

func TestHandler(t *testing.T) {
	assert.NotNil(t, Handler())
}
