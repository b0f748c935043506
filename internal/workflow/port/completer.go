package port

import "context"

// Completer 补全网关：发送系统提示与用户提示，返回模型原始文本。
// 失败时返回 *errors.AppError（上游错误、配置错误或空响应），不做重试。
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
	// Preflight 检查调用前提（如密钥已配置），不发起网络请求
	Preflight(ctx context.Context, provider string) error
}

// CompletionRequest 单次补全请求
type CompletionRequest struct {
	Provider  string
	System    string
	User      string
	WantsJSON bool
}

// Completion 补全结果
type Completion struct {
	Text             string
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
}
