package entity

import (
	"fmt"
	"strings"
)

// PostVariation 一个完整的帖子版本
type PostVariation struct {
	HookLine string `json:"hookLine"`
	Content  string `json:"content"`
}

// HookAlternative 备选开头
type HookAlternative struct {
	Text  string    `json:"text"`
	Style HookStyle `json:"style"`
}

// GenerationResult 模型生成结果
type GenerationResult struct {
	Variations       []PostVariation   `json:"variations"`
	HookAlternatives []HookAlternative `json:"hookAlternatives"`
	ImprovementTips  []string          `json:"improvementTips"`
	ConfidenceScore  int               `json:"confidenceScore"`
}

// Normalize 补齐可推导字段：空列表置为 [] ，缺失的 hookLine 取正文首个非空行
func (r *GenerationResult) Normalize() {
	if r.HookAlternatives == nil {
		r.HookAlternatives = []HookAlternative{}
	}
	if r.ImprovementTips == nil {
		r.ImprovementTips = []string{}
	}
	for i := range r.Variations {
		v := &r.Variations[i]
		v.HookLine = strings.TrimSpace(v.HookLine)
		if v.HookLine == "" {
			v.HookLine = FirstLine(v.Content)
		}
	}
}

// Validate 校验结果形状
func (r *GenerationResult) Validate() error {
	if len(r.Variations) == 0 {
		return fmt.Errorf("variations must contain at least one entry")
	}
	for i, v := range r.Variations {
		if strings.TrimSpace(v.Content) == "" {
			return fmt.Errorf("variations[%d].content is empty", i)
		}
	}
	for i, h := range r.HookAlternatives {
		if !h.Style.Valid() {
			return fmt.Errorf("hookAlternatives[%d].style %q is not supported", i, h.Style)
		}
	}
	if r.ConfidenceScore < 0 || r.ConfidenceScore > 100 {
		return fmt.Errorf("confidenceScore %d out of range 0..100", r.ConfidenceScore)
	}
	return nil
}

// VariationStats 单个版本的展示统计
type VariationStats struct {
	ID             string `json:"id"`
	CharacterCount int    `json:"characterCount"`
	WordCount      int    `json:"wordCount"`
	PreviewCutoff  string `json:"previewCutoff"`
	OverLimit      bool   `json:"overLimit"`
}

// FirstLine 返回首个非空行
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
