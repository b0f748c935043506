package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LaytonGott/postup-standalone/internal/domain/entity"
	llmctx "github.com/LaytonGott/postup-standalone/internal/domain/service"
	wfmodel "github.com/LaytonGott/postup-standalone/internal/workflow/model"
	workflowport "github.com/LaytonGott/postup-standalone/internal/workflow/port"
	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
)

type stubCompleter struct {
	text     string
	err      error
	got      []workflowport.CompletionRequest
	workflow string
}

func (s *stubCompleter) Complete(ctx context.Context, req workflowport.CompletionRequest) (*workflowport.Completion, error) {
	s.got = append(s.got, req)
	s.workflow = llmctx.WorkflowFromContext(ctx)
	if s.err != nil {
		return nil, s.err
	}
	return &workflowport.Completion{Text: s.text, Provider: "anthropic", Model: "m", PromptTokens: 3, CompletionTokens: 4}, nil
}

func (s *stubCompleter) Preflight(context.Context, string) error { return nil }

var settings = entity.GenerationSettings{Tone: entity.ToneCasual, InputType: entity.InputRoughIdea}

func TestPostChain_Generate(t *testing.T) {
	stub := &stubCompleter{text: `Here you go: {"variations":[{"hookLine":"h","content":"h\nbody"}],"hookAlternatives":[],"improvementTips":["a"],"confidenceScore":90}`}
	c := NewPostChain(stub, nil)

	out, err := c.Invoke(context.Background(), &wfmodel.PostInput{Settings: settings, Content: "I launched a product", Provider: "anthropic"})
	require.NoError(t, err)
	require.NotNil(t, out.Result)

	assert.Equal(t, 90, out.Result.ConfidenceScore)
	assert.Equal(t, "h", out.Result.Variations[0].HookLine)
	assert.Empty(t, out.Refined)
	assert.Equal(t, 3, out.Meta.PromptTokens)
	assert.Equal(t, 4, out.Meta.CompletionTokens)

	require.Len(t, stub.got, 1)
	assert.True(t, stub.got[0].WantsJSON)
	assert.Equal(t, "anthropic", stub.got[0].Provider)
	assert.Contains(t, stub.got[0].User, "I launched a product")
	assert.Contains(t, stub.got[0].System, "TONE: Casual but Opinionated")
	assert.Equal(t, llmctx.WorkflowPostGenerate, stub.workflow)
}

func TestPostChain_Refine(t *testing.T) {
	stub := &stubCompleter{text: "  Tighter post.\n"}
	c := NewPostChain(stub, nil)

	out, err := c.Invoke(context.Background(), &wfmodel.PostInput{
		Settings:    settings,
		Action:      entity.ActionShorter,
		CurrentPost: "A long post.",
	})
	require.NoError(t, err)
	assert.Nil(t, out.Result)
	assert.Equal(t, "Tighter post.", out.Refined)

	require.Len(t, stub.got, 1)
	assert.False(t, stub.got[0].WantsJSON)
	assert.Contains(t, stub.got[0].User, "Current post:\nA long post.")
	assert.Equal(t, llmctx.WorkflowPostRefine, stub.workflow)
}

func TestPostChain_Errors(t *testing.T) {
	upstream := apperrors.Upstream(429, "Rate limit exceeded", nil)
	tests := []struct {
		name string
		stub *stubCompleter
		in   *wfmodel.PostInput
		want *apperrors.AppError
	}{
		{name: "malformed", stub: &stubCompleter{text: "no json"}, in: &wfmodel.PostInput{Settings: settings, Content: "x"}, want: apperrors.ErrMalformedResponse},
		{name: "empty", stub: &stubCompleter{text: ""}, in: &wfmodel.PostInput{Settings: settings, Content: "x"}, want: apperrors.ErrEmptyUpstream},
		{name: "upstream", stub: &stubCompleter{err: upstream}, in: &wfmodel.PostInput{Settings: settings, Content: "x"}, want: apperrors.ErrUpstream},
		{name: "unknown tone", stub: &stubCompleter{}, in: &wfmodel.PostInput{Settings: entity.GenerationSettings{Tone: "loud", InputType: entity.InputArticle}, Content: "x"}, want: apperrors.ErrInvalidParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPostChain(tt.stub, nil)
			_, err := c.Invoke(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPostChain_UpstreamStatusSurvives(t *testing.T) {
	c := NewPostChain(&stubCompleter{err: apperrors.Upstream(429, "Rate limit exceeded", nil)}, nil)
	_, err := c.Invoke(context.Background(), &wfmodel.PostInput{Settings: settings, Content: "x"})

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, 429, appErr.HTTPStatus)
	assert.Equal(t, "Rate limit exceeded", appErr.Message)
}

func TestPostChain_NotConfigured(t *testing.T) {
	var c *PostChain
	_, err := c.Invoke(context.Background(), &wfmodel.PostInput{})
	assert.Error(t, err)

	_, err = NewPostChain(&stubCompleter{}, nil).Invoke(context.Background(), nil)
	assert.Error(t, err)
}
