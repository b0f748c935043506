package dto

import "github.com/LaytonGott/postup-standalone/internal/domain/entity"

// Option 下拉选项
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// OptionsResponse GET /api/options 响应
type OptionsResponse struct {
	Tones         []Option `json:"tones"`
	InputTypes    []Option `json:"inputTypes"`
	Niches        []Option `json:"niches"`
	QuickActions  []Option `json:"quickActions"`
	CharLimit     int      `json:"charLimit"`
	PreviewCutoff int      `json:"previewCutoff"`
	Defaults      Defaults `json:"defaults"`
}

// Defaults 未指定时使用的设置
type Defaults struct {
	Tone      string `json:"tone"`
	InputType string `json:"inputType"`
	Niche     string `json:"niche"`
}

var toneLabels = map[entity.Tone]Option{
	entity.ToneProfessional:  {Label: "Professional", Description: "Authority without arrogance"},
	entity.ToneCasual:        {Label: "Casual", Description: "Conversational and relatable"},
	entity.ToneStorytelling:  {Label: "Storytelling", Description: "Narrative with emotional pull"},
	entity.ToneControversial: {Label: "Controversial", Description: "Bold and contrarian takes"},
}

var inputTypeLabels = map[entity.InputType]Option{
	entity.InputRoughIdea:    {Label: "Rough Idea", Description: "A quick thought or concept"},
	entity.InputBulletPoints: {Label: "Bullet Points", Description: "Key points to weave together"},
	entity.InputFullDraft:    {Label: "Full Draft", Description: "A complete draft to refine"},
	entity.InputArticle:      {Label: "Article/Thread", Description: "Long content to condense"},
}

var nicheLabels = map[entity.Niche]Option{
	entity.NicheTechStartup: {Label: "Tech/Startup", Description: "Building and scaling companies"},
	entity.NicheSaaS:        {Label: "SaaS", Description: "Software as a service focus"},
	entity.NicheDeveloper:   {Label: "Developer", Description: "Engineering and coding"},
	entity.NicheProduct:     {Label: "Product", Description: "Product management and design"},
	entity.NicheFounder:     {Label: "Founder", Description: "Entrepreneurship journey"},
}

var actionLabels = map[entity.QuickAction]Option{
	entity.ActionShorter:    {Label: "Shorter"},
	entity.ActionPunchier:   {Label: "Punchier"},
	entity.ActionStoryAngle: {Label: "Add Story"},
}

// NewOptionsResponse 按枚举顺序构造选项目录；"general" 表示不指定受众
func NewOptionsResponse() OptionsResponse {
	resp := OptionsResponse{
		Tones:         make([]Option, 0, len(entity.Tones)),
		InputTypes:    make([]Option, 0, len(entity.InputTypes)),
		Niches:        make([]Option, 0, len(entity.Niches)+1),
		QuickActions:  make([]Option, 0, len(entity.QuickActions)),
		CharLimit:     entity.LinkedInCharLimit,
		PreviewCutoff: entity.LinkedInPreviewCutoff,
		Defaults: Defaults{
			Tone:      string(entity.DefaultTone),
			InputType: string(entity.DefaultInputType),
			Niche:     "general",
		},
	}
	for _, t := range entity.Tones {
		resp.Tones = append(resp.Tones, withValue(toneLabels[t], string(t)))
	}
	for _, it := range entity.InputTypes {
		resp.InputTypes = append(resp.InputTypes, withValue(inputTypeLabels[it], string(it)))
	}
	resp.Niches = append(resp.Niches, Option{Value: "general", Label: "General", Description: "No specific audience"})
	for _, n := range entity.Niches {
		resp.Niches = append(resp.Niches, withValue(nicheLabels[n], string(n)))
	}
	for _, a := range entity.QuickActions {
		resp.QuickActions = append(resp.QuickActions, withValue(actionLabels[a], string(a)))
	}
	return resp
}

func withValue(o Option, value string) Option {
	o.Value = value
	return o
}
