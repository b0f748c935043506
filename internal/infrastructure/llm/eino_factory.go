package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/LaytonGott/postup-standalone/internal/config"
	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
)

// EinoFactory 管理多个 Eino ChatModel 客户端实例。
// 密钥每次调用时重新读取，缓存键包含密钥指纹，密钥轮换后自动重建客户端。
type EinoFactory struct {
	config *config.LLMConfig
	creds  *config.Credentials
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config, creds *config.Credentials) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		creds:  creds,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定名称的 ChatModel，如果未指定则返回默认提供商
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	name, providerCfg, ok := f.config.Provider(name)
	if !ok {
		return nil, apperrors.Configuration(fmt.Sprintf("LLM provider %s not configured", name))
	}
	apiKey, err := f.apiKey(name, providerCfg)
	if err != nil {
		return nil, err
	}
	key := name + "|" + fingerprint(apiKey)

	f.mu.RLock()
	m, ok := f.models[key]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[key]; ok {
		return m, nil
	}

	// 各提供商均走 OpenAI 兼容接口
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      apiKey,
		BaseURL:     providerCfg.BaseURL,
		Model:       providerCfg.Model,
		MaxTokens:   ptrInt(providerCfg.MaxTokens),
		Temperature: ptrFloat32(float32(providerCfg.Temperature)),
		Timeout:     providerCfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	// 旧密钥对应的实例不再可达
	for k := range f.models {
		if strings.HasPrefix(k, name+"|") {
			delete(f.models, k)
		}
	}
	f.models[key] = chatModel
	return chatModel, nil
}

// Preflight 仅检查提供商与密钥是否就绪，不创建客户端
func (f *EinoFactory) Preflight(name string) error {
	name, providerCfg, ok := f.config.Provider(name)
	if !ok {
		return apperrors.Configuration(fmt.Sprintf("LLM provider %s not configured", name))
	}
	_, err := f.apiKey(name, providerCfg)
	return err
}

func (f *EinoFactory) apiKey(name string, p config.ProviderConfig) (string, error) {
	key, ok := f.creds.APIKey(p)
	if !ok {
		return "", apperrors.Configuration(providerLabel(name) + " API key not configured").
			WithDetail("environment variable " + p.APIKeyEnv + " is empty")
	}
	return key, nil
}

func providerLabel(name string) string {
	switch name {
	case "anthropic":
		return "Anthropic"
	case "openai":
		return "OpenAI"
	case "deepseek":
		return "DeepSeek"
	default:
		return name
	}
}

func fingerprint(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:8])
}

func ptrInt(i int) *int {
	if i <= 0 {
		return nil
	}
	return &i
}

func ptrFloat32(f float32) *float32 {
	return &f
}
