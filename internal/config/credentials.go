package config

import (
	"os"
	"strings"
)

// Credentials 在调用时从进程环境读取提供商密钥，不做缓存。
// 修改环境变量后下一次请求即生效。
type Credentials struct {
	lookup func(string) (string, bool)
}

// NewCredentials 创建基于 os.LookupEnv 的密钥读取器
func NewCredentials() *Credentials {
	return &Credentials{lookup: os.LookupEnv}
}

// NewCredentialsWithLookup 使用自定义查找函数创建密钥读取器
func NewCredentialsWithLookup(lookup func(string) (string, bool)) *Credentials {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Credentials{lookup: lookup}
}

// APIKey 返回提供商密钥；未设置或为空白时 ok 为 false
func (c *Credentials) APIKey(p ProviderConfig) (string, bool) {
	if c == nil || strings.TrimSpace(p.APIKeyEnv) == "" {
		return "", false
	}
	v, ok := c.lookup(strings.TrimSpace(p.APIKeyEnv))
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
