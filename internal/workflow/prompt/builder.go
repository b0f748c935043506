package prompt

import (
	"fmt"
	"strings"

	"github.com/LaytonGott/postup-standalone/internal/domain/entity"
	wfmodel "github.com/LaytonGott/postup-standalone/internal/workflow/model"
)

const (
	inputContextHeader    = "INPUT CONTEXT:"
	audienceContextHeader = "AUDIENCE CONTEXT:"
)

var defaultRegistry = NewRegistry()

// BuildSystemPrompt 按固定顺序拼装：基础块、语气块、输入形态块，指定受众时追加受众块
func BuildSystemPrompt(tone entity.Tone, inputType entity.InputType, niche entity.Niche) (string, error) {
	return defaultRegistry.SystemPrompt(tone, inputType, niche)
}

// BuildGenerationPrompt 将原始输入包装为要求严格 JSON 输出的用户提示
func BuildGenerationPrompt(userInput string) string {
	return defaultRegistry.GenerationPrompt(userInput)
}

// BuildRefinementPrompt 按快捷改写选择指令，并原样附上当前帖子
func BuildRefinementPrompt(currentPost string, action entity.QuickAction) (string, error) {
	return defaultRegistry.RefinementPrompt(currentPost, action)
}

// Build 有 Action 时构造改写提示，否则构造生成提示
func Build(in *wfmodel.PostInput) (wfmodel.PromptPair, error) {
	return defaultRegistry.Build(in)
}

func (r *Registry) SystemPrompt(tone entity.Tone, inputType entity.InputType, niche entity.Niche) (string, error) {
	toneID, err := toneBlock(tone)
	if err != nil {
		return "", err
	}
	inputID, err := inputTypeBlock(inputType)
	if err != nil {
		return "", err
	}

	ids := []BlockID{BlockBase, toneID, inputID}
	if niche != entity.NicheNone {
		nicheID, err := nicheBlock(niche)
		if err != nil {
			return "", err
		}
		ids = append(ids, nicheID)
	}

	texts := make([]string, len(ids))
	for i, id := range ids {
		if texts[i], err = r.Block(id); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	b.WriteString(texts[0])
	b.WriteString("\n\n")
	b.WriteString(texts[1])
	b.WriteString("\n\n" + inputContextHeader + "\n")
	b.WriteString(texts[2])
	if len(texts) > 3 {
		b.WriteString("\n\n" + audienceContextHeader + "\n")
		b.WriteString(texts[3])
	}
	return b.String(), nil
}

func (r *Registry) GenerationPrompt(userInput string) string {
	tpl := r.mustBlock(BlockGenerate)
	return strings.NewReplacer("{input}", userInput).Replace(tpl)
}

func (r *Registry) RefinementPrompt(currentPost string, action entity.QuickAction) (string, error) {
	actionID, err := actionBlock(action)
	if err != nil {
		return "", err
	}
	instruction, err := r.Block(actionID)
	if err != nil {
		return "", err
	}
	tpl, err := r.Block(BlockRefine)
	if err != nil {
		return "", err
	}
	// 单次替换，帖子正文中的占位符样式文本不会被二次展开
	return strings.NewReplacer(
		"{instruction}", instruction,
		"{current_post}", currentPost,
	).Replace(tpl), nil
}

func (r *Registry) Build(in *wfmodel.PostInput) (wfmodel.PromptPair, error) {
	if in == nil {
		return wfmodel.PromptPair{}, fmt.Errorf("input is nil")
	}
	s := in.Settings
	system, err := r.SystemPrompt(s.Tone, s.InputType, s.Niche)
	if err != nil {
		return wfmodel.PromptPair{}, err
	}

	if in.IsRefinement() {
		user, err := r.RefinementPrompt(in.CurrentPost, in.Action)
		if err != nil {
			return wfmodel.PromptPair{}, err
		}
		return wfmodel.PromptPair{System: system, User: user}, nil
	}
	return wfmodel.PromptPair{System: system, User: r.GenerationPrompt(in.Content)}, nil
}

// mustBlock 用于编译期确定存在的片段
func (r *Registry) mustBlock(id BlockID) string {
	text, err := r.Block(id)
	if err != nil {
		panic(err)
	}
	return text
}

func toneBlock(t entity.Tone) (BlockID, error) {
	switch t {
	case entity.ToneProfessional:
		return BlockToneProfessional, nil
	case entity.ToneCasual:
		return BlockToneCasual, nil
	case entity.ToneStorytelling:
		return BlockToneStorytelling, nil
	case entity.ToneControversial:
		return BlockToneControversial, nil
	default:
		return "", fmt.Errorf("no prompt block for tone %q", t)
	}
}

func inputTypeBlock(it entity.InputType) (BlockID, error) {
	switch it {
	case entity.InputRoughIdea:
		return BlockInputRoughIdea, nil
	case entity.InputBulletPoints:
		return BlockInputBulletPoints, nil
	case entity.InputFullDraft:
		return BlockInputFullDraft, nil
	case entity.InputArticle:
		return BlockInputArticle, nil
	default:
		return "", fmt.Errorf("no prompt block for input type %q", it)
	}
}

func nicheBlock(n entity.Niche) (BlockID, error) {
	switch n {
	case entity.NicheTechStartup:
		return BlockNicheTechStartup, nil
	case entity.NicheSaaS:
		return BlockNicheSaaS, nil
	case entity.NicheDeveloper:
		return BlockNicheDeveloper, nil
	case entity.NicheProduct:
		return BlockNicheProduct, nil
	case entity.NicheFounder:
		return BlockNicheFounder, nil
	default:
		return "", fmt.Errorf("no prompt block for niche %q", n)
	}
}

func actionBlock(a entity.QuickAction) (BlockID, error) {
	switch a {
	case entity.ActionShorter:
		return BlockActionShorter, nil
	case entity.ActionPunchier:
		return BlockActionPunchier, nil
	case entity.ActionStoryAngle:
		return BlockActionStoryAngle, nil
	default:
		return "", fmt.Errorf("no prompt block for action %q", a)
	}
}
