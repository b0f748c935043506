//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"github.com/google/wire"

	postapp "github.com/LaytonGott/postup-standalone/internal/application/post"
	"github.com/LaytonGott/postup-standalone/internal/config"
	"github.com/LaytonGott/postup-standalone/internal/infrastructure/llm"
	"github.com/LaytonGott/postup-standalone/internal/interfaces/http/handler"
	"github.com/LaytonGott/postup-standalone/internal/interfaces/http/router"
	"github.com/LaytonGott/postup-standalone/internal/workflow/chain"
	workflowport "github.com/LaytonGott/postup-standalone/internal/workflow/port"
	"github.com/LaytonGott/postup-standalone/internal/workflow/prompt"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(cfg *config.Config, version string) (*router.Router, func(), error) {
	wire.Build(
		LLMSet,
		PostSet,
		RouterSet,
	)
	return nil, nil, nil
}

// LLMSet 补全网关；密钥在每次请求时从环境读取
var LLMSet = wire.NewSet(
	config.NewCredentials,
	llm.NewEinoFactory,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	llm.NewGateway,
	wire.Bind(new(workflowport.Completer), new(*llm.Gateway)),
)

// PostSet 帖子生成链路
var PostSet = wire.NewSet(
	prompt.NewRegistry,
	chain.NewPostChain,
	postapp.NewService,
	wire.Bind(new(handler.PostService), new(*postapp.Service)),
)

// RouterSet HTTP 层
var RouterSet = wire.NewSet(
	handler.NewPostHandler,
	handler.NewHealthHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
