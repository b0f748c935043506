package post

import (
	"fmt"

	"github.com/LaytonGott/postup-standalone/internal/domain/entity"
	"github.com/LaytonGott/postup-standalone/internal/workflow/node"
)

// StatsFor 计算每个版本的字数、预览截断与超长标记，顺序与 Variations 一致
func StatsFor(r *entity.GenerationResult) []entity.VariationStats {
	if r == nil {
		return []entity.VariationStats{}
	}
	stats := make([]entity.VariationStats, 0, len(r.Variations))
	for i, v := range r.Variations {
		chars := node.CountRunes(v.Content)
		stats = append(stats, entity.VariationStats{
			ID:             fmt.Sprintf("variation-%d", i+1),
			CharacterCount: chars,
			WordCount:      node.CountWords(v.Content),
			PreviewCutoff:  node.TruncateByRunes(v.Content, entity.LinkedInPreviewCutoff),
			OverLimit:      chars > entity.LinkedInCharLimit,
		})
	}
	return stats
}
