package api

import (
	"encoding/json"
	"net/http"
)

// handleConfig reports the effective split parameters and pool state.
// Parameters are read-only at runtime; per-request overrides go on the
// upload form instead.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	p := s.orchestrator.BaseParams()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"params": map[string]any{
			"max_length":                 p.MaxLength,
			"min_length":                 p.MinLength,
			"sentence_integrity_weight":  p.SentenceIntegrityWeight,
			"table_length_factor":        p.TableLengthFactor,
			"image_length_factor":        p.ImageLengthFactor,
			"preserve_images":            p.PreserveImages,
			"min_split_score":            p.MinSplitScore,
			"heading_score_bonus":        p.HeadingScoreBonus,
			"sentence_end_score_bonus":   p.SentenceEndScoreBonus,
			"length_score_factor":        p.LengthScoreFactor,
			"search_window":              p.SearchWindow,
			"heading_after_penalty":      p.HeadingAfterPenalty,
			"force_split_before_heading": p.ForceSplitBeforeHeading,
			"heading_cooldown_elements":  p.HeadingCooldownElements,
			"custom_heading_regex":       p.CustomHeadingRegex,
		},
		"workers":     s.cfg.WorkerCount,
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
