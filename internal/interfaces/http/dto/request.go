// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	postapp "github.com/LaytonGott/postup-standalone/internal/application/post"
)

// GenerateRequest POST /api/generate 请求体。
// content 与 currentPost 至少一个非空；action 非空时改写 currentPost。
type GenerateRequest struct {
	Content     string `json:"content"`
	Tone        string `json:"tone"`
	InputType   string `json:"inputType"`
	Niche       string `json:"niche"`
	Action      string `json:"action"`
	CurrentPost string `json:"currentPost"`
}

// ToServiceRequest 转换为应用层请求
func (r *GenerateRequest) ToServiceRequest() *postapp.Request {
	if r == nil {
		return &postapp.Request{}
	}
	return &postapp.Request{
		Content:     r.Content,
		Tone:        r.Tone,
		InputType:   r.InputType,
		Niche:       r.Niche,
		Action:      r.Action,
		CurrentPost: r.CurrentPost,
	}
}
