// Package prompt 负责拼装帖子生成与改写所需的提示词
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed templates/*.txt
var templatesFS embed.FS

// BlockID 提示词片段标识
type BlockID string

const (
	BlockBase     BlockID = "base"
	BlockGenerate BlockID = "generate"
	BlockRefine   BlockID = "refine"

	BlockToneProfessional  BlockID = "tone_professional"
	BlockToneCasual        BlockID = "tone_casual"
	BlockToneStorytelling  BlockID = "tone_storytelling"
	BlockToneControversial BlockID = "tone_controversial"

	BlockInputRoughIdea    BlockID = "input_rough_idea"
	BlockInputBulletPoints BlockID = "input_bullet_points"
	BlockInputFullDraft    BlockID = "input_full_draft"
	BlockInputArticle      BlockID = "input_article"

	BlockNicheTechStartup BlockID = "niche_tech_startup"
	BlockNicheSaaS        BlockID = "niche_saas"
	BlockNicheDeveloper   BlockID = "niche_developer"
	BlockNicheProduct     BlockID = "niche_product"
	BlockNicheFounder     BlockID = "niche_founder"

	BlockActionShorter    BlockID = "action_shorter"
	BlockActionPunchier   BlockID = "action_punchier"
	BlockActionStoryAngle BlockID = "action_story_angle"
)

// Registry 按需读取并缓存内嵌的提示词片段，可并发使用
type Registry struct {
	mu    sync.RWMutex
	cache map[BlockID]string
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[BlockID]string),
	}
}

// Block 返回片段文本（已去除首尾空白）
func (r *Registry) Block(id BlockID) (string, error) {
	if r == nil {
		return "", fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if text, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return text, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if text, ok := r.cache[id]; ok {
		return text, nil
	}

	path, err := resolveBlockFile(id)
	if err != nil {
		return "", err
	}
	text, err := readEmbeddedText(path)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("prompt block %s is empty", id)
	}
	r.cache[id] = text
	return text, nil
}

func resolveBlockFile(id BlockID) (string, error) {
	switch id {
	case BlockBase:
		return "templates/base.system.txt", nil
	case BlockGenerate:
		return "templates/generate.user.txt", nil
	case BlockRefine:
		return "templates/refine.user.txt", nil
	case BlockToneProfessional, BlockToneCasual, BlockToneStorytelling, BlockToneControversial,
		BlockInputRoughIdea, BlockInputBulletPoints, BlockInputFullDraft, BlockInputArticle,
		BlockNicheTechStartup, BlockNicheSaaS, BlockNicheDeveloper, BlockNicheProduct, BlockNicheFounder,
		BlockActionShorter, BlockActionPunchier, BlockActionStoryAngle:
		return "templates/" + string(id) + ".txt", nil
	default:
		return "", fmt.Errorf("unknown prompt block: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
