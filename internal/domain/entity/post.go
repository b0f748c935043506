package entity

import (
	"fmt"
	"strings"
)

// LinkedIn 展示限制
const (
	LinkedInCharLimit     = 3000
	LinkedInPreviewCutoff = 210
)

// Tone 帖子语气
type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneStorytelling  Tone = "storytelling"
	ToneControversial Tone = "controversial"
)

// Tones 全部语气，顺序即前端展示顺序
var Tones = []Tone{ToneProfessional, ToneCasual, ToneStorytelling, ToneControversial}

// InputType 用户输入形态
type InputType string

const (
	InputRoughIdea    InputType = "rough_idea"
	InputBulletPoints InputType = "bullet_points"
	InputFullDraft    InputType = "full_draft"
	InputArticle      InputType = "article"
)

// InputTypes 全部输入形态
var InputTypes = []InputType{InputRoughIdea, InputBulletPoints, InputFullDraft, InputArticle}

// Niche 受众定位；NicheNone 表示不追加受众块
type Niche string

const (
	NicheNone        Niche = ""
	NicheTechStartup Niche = "tech_startup"
	NicheSaaS        Niche = "saas"
	NicheDeveloper   Niche = "developer"
	NicheProduct     Niche = "product"
	NicheFounder     Niche = "founder"
)

// Niches 全部受众（不含 NicheNone）
var Niches = []Niche{NicheTechStartup, NicheSaaS, NicheDeveloper, NicheProduct, NicheFounder}

// QuickAction 对已有帖子的快捷改写
type QuickAction string

const (
	ActionShorter    QuickAction = "shorter"
	ActionPunchier   QuickAction = "punchier"
	ActionStoryAngle QuickAction = "story_angle"
)

// QuickActions 全部快捷改写
var QuickActions = []QuickAction{ActionShorter, ActionPunchier, ActionStoryAngle}

// HookStyle 备选开头的风格
type HookStyle string

const (
	HookQuestion      HookStyle = "question"
	HookStatistic     HookStyle = "statistic"
	HookStory         HookStyle = "story"
	HookBoldStatement HookStyle = "bold_statement"
)

// 请求未指定时的默认值
const (
	DefaultTone      = ToneCasual
	DefaultInputType = InputRoughIdea
)

// ParseTone 解析语气，空值取默认值
func ParseTone(s string) (Tone, error) {
	switch t := Tone(strings.TrimSpace(s)); t {
	case "":
		return DefaultTone, nil
	case ToneProfessional, ToneCasual, ToneStorytelling, ToneControversial:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tone %q", s)
	}
}

// ParseInputType 解析输入形态，空值取默认值
func ParseInputType(s string) (InputType, error) {
	switch it := InputType(strings.TrimSpace(s)); it {
	case "":
		return DefaultInputType, nil
	case InputRoughIdea, InputBulletPoints, InputFullDraft, InputArticle:
		return it, nil
	default:
		return "", fmt.Errorf("unknown input type %q", s)
	}
}

// ParseNiche 解析受众；空值与 "general" 均视为不指定
func ParseNiche(s string) (Niche, error) {
	switch n := Niche(strings.TrimSpace(s)); n {
	case NicheNone, "general":
		return NicheNone, nil
	case NicheTechStartup, NicheSaaS, NicheDeveloper, NicheProduct, NicheFounder:
		return n, nil
	default:
		return "", fmt.Errorf("unknown niche %q", s)
	}
}

// ParseQuickAction 解析快捷改写；空值返回 ok=false
func ParseQuickAction(s string) (QuickAction, bool, error) {
	switch a := QuickAction(strings.TrimSpace(s)); a {
	case "":
		return "", false, nil
	case ActionShorter, ActionPunchier, ActionStoryAngle:
		return a, true, nil
	default:
		return "", false, fmt.Errorf("unknown action %q", s)
	}
}

// Valid 判断风格是否合法
func (s HookStyle) Valid() bool {
	switch s {
	case HookQuestion, HookStatistic, HookStory, HookBoldStatement:
		return true
	default:
		return false
	}
}

// GenerationSettings 单次请求的生成设置
type GenerationSettings struct {
	Tone      Tone
	InputType InputType
	Niche     Niche
}

// HasNiche 是否指定了受众
func (s GenerationSettings) HasNiche() bool {
	return s.Niche != NicheNone
}
