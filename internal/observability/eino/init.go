package eino

import (
	"context"
	"sync/atomic"

	einocallbacks "github.com/cloudwego/eino/callbacks"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"

	"github.com/LaytonGott/postup-standalone/pkg/logger"
)

var registered atomic.Bool

// Handler 返回只关注 ChatModel 组件的回调，其余组件类型直接跳过
func Handler() einocallbacks.Handler {
	return cbtemplate.NewHandlerHelper().
		ChatModel(newChatModelCallbackHandler()).
		Handler()
}

// Init 把 Handler 追加到全局回调，重复调用不会重复注册。
// eino 只在构建组件时读取全局回调，需早于 wire 装配调用。
func Init() {
	if !registered.CompareAndSwap(false, true) {
		return
	}
	einocallbacks.AppendGlobalHandlers(Handler())
	logger.Debug(context.Background(), "eino chat model callbacks registered")
}
