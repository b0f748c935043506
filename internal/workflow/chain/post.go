package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"

	llmctx "github.com/LaytonGott/postup-standalone/internal/domain/service"
	wfmodel "github.com/LaytonGott/postup-standalone/internal/workflow/model"
	"github.com/LaytonGott/postup-standalone/internal/workflow/node"
	workflowport "github.com/LaytonGott/postup-standalone/internal/workflow/port"
	workflowprompt "github.com/LaytonGott/postup-standalone/internal/workflow/prompt"
	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
)

// PostChain 单次请求的生成/改写链：拼装提示词、调用模型、解析结果
type PostChain struct {
	completer workflowport.Completer
	prompts   *workflowprompt.Registry

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.PostInput, *wfmodel.PostOutput]
	chainErr  error
}

func NewPostChain(completer workflowport.Completer, prompts *workflowprompt.Registry) *PostChain {
	if prompts == nil {
		prompts = workflowprompt.NewRegistry()
	}
	return &PostChain{completer: completer, prompts: prompts}
}

type postChainState struct {
	In         *wfmodel.PostInput
	Prompt     wfmodel.PromptPair
	Completion *workflowport.Completion
}

// Invoke 执行链；失败时尽量返回链路中产生的 *errors.AppError
func (c *PostChain) Invoke(ctx context.Context, in *wfmodel.PostInput) (*wfmodel.PostOutput, error) {
	if c == nil || c.completer == nil {
		return nil, fmt.Errorf("completion gateway not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	runnable, err := c.getChain()
	if err != nil {
		return nil, err
	}

	workflow := llmctx.WorkflowPostGenerate
	if in.IsRefinement() {
		workflow = llmctx.WorkflowPostRefine
	}
	ctx = llmctx.WithWorkflowProvider(ctx, workflow, in.Provider)

	out, err := runnable.Invoke(ctx, in)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, err
	}
	return out, nil
}

func (c *PostChain) getChain() (compose.Runnable[*wfmodel.PostInput, *wfmodel.PostOutput], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *PostChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.PostInput, *wfmodel.PostOutput], error) {
	chain := compose.NewChain[*wfmodel.PostInput, *wfmodel.PostOutput]()

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, in *wfmodel.PostInput) (*postChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &postChainState{In: in}, nil
		}),
		compose.WithNodeName("post.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *postChainState) (*postChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			pair, err := c.prompts.Build(st.In)
			if err != nil {
				return nil, apperrors.InvalidParam(err.Error())
			}
			st.Prompt = pair
			return st, nil
		}),
		compose.WithNodeName("post.prompt"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *postChainState) (*postChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			completion, err := c.completer.Complete(ctx, workflowport.CompletionRequest{
				Provider:  st.In.Provider,
				System:    st.Prompt.System,
				User:      st.Prompt.User,
				WantsJSON: !st.In.IsRefinement(),
			})
			if err != nil {
				return nil, err
			}
			if completion == nil {
				return nil, apperrors.ErrEmptyUpstream
			}
			st.Completion = completion
			return st, nil
		}),
		compose.WithNodeName("post.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *postChainState) (*wfmodel.PostOutput, error) {
			if st == nil || st.In == nil || st.Completion == nil {
				return nil, fmt.Errorf("state is nil")
			}
			out := &wfmodel.PostOutput{
				Raw: st.Completion.Text,
				Meta: wfmodel.CompletionMeta{
					Provider:         st.Completion.Provider,
					Model:            st.Completion.Model,
					PromptTokens:     st.Completion.PromptTokens,
					CompletionTokens: st.Completion.CompletionTokens,
					CompletedAt:      time.Now().UTC(),
				},
			}

			if st.In.IsRefinement() {
				refined, err := node.ParseRefinement(st.Completion.Text)
				if err != nil {
					return nil, err
				}
				out.Refined = refined
				return out, nil
			}

			result, _, err := node.ParseGenerationResult(st.Completion.Text)
			if err != nil {
				return nil, err
			}
			out.Result = result
			return out, nil
		}),
		compose.WithNodeName("post.finalize"),
	)

	return chain.Compile(ctx, compose.WithGraphName("post_chain"))
}
