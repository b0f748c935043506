package node

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/LaytonGott/postup-standalone/internal/domain/entity"
	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
)

type generationPayload struct {
	Variations       []entity.PostVariation   `json:"variations"`
	HookAlternatives []entity.HookAlternative `json:"hookAlternatives"`
	ImprovementTips  []string                 `json:"improvementTips"`
	ConfidenceScore  json.Number              `json:"confidenceScore"`
}

// ParseGenerationResult 解析生成结果：截取 JSON 对象、解码、补齐并校验形状。
// 返回值 raw 为截取出的 JSON 文本。
func ParseGenerationResult(text string) (*entity.GenerationResult, string, error) {
	if text == "" {
		return nil, "", apperrors.ErrEmptyUpstream
	}

	raw, ok := ExtractJSONObject(text)
	if !ok {
		return nil, "", apperrors.Malformed("no JSON object found in completion", nil)
	}

	var p generationPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, raw, apperrors.Malformed("decode generation result", err)
	}

	score, err := parseConfidence(p.ConfidenceScore)
	if err != nil {
		return nil, raw, apperrors.Malformed("decode confidenceScore", err)
	}

	res := &entity.GenerationResult{
		Variations:       p.Variations,
		HookAlternatives: p.HookAlternatives,
		ImprovementTips:  p.ImprovementTips,
		ConfidenceScore:  score,
	}
	res.Normalize()
	if err := res.Validate(); err != nil {
		return nil, raw, apperrors.Malformed(err.Error(), err)
	}
	return res, raw, nil
}

// ParseRefinement 改写结果为去除首尾空白的原文；去空白后为空也视为有效
func ParseRefinement(text string) (string, error) {
	if text == "" {
		return "", apperrors.ErrEmptyUpstream
	}
	return strings.TrimSpace(text), nil
}

// parseConfidence 兼容 80、80.0 与 "80"，缺失时为 0
func parseConfidence(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("confidenceScore %v is not finite", f)
	}
	return int(math.Round(f)), nil
}
