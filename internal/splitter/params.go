// Package splitter selects and refines split points over an element
// sequence. It is a pure algorithm: the sentence-boundary oracle is
// injected, and nothing here touches the document package itself.
package splitter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params is the flat, read-only parameter set for one conversion run.
// Nothing mutates a Params value after the run starts; callers wanting
// different behavior pass a different value.
type Params struct {
	// Document shaping.
	MaxLength               int     `yaml:"max_length"`
	MinLength               int     `yaml:"min_length"`
	SentenceIntegrityWeight float64 `yaml:"sentence_integrity_weight"`
	TableLengthFactor       float64 `yaml:"table_length_factor"`
	ImageLengthFactor       int     `yaml:"image_length_factor"`
	PreserveImages          bool    `yaml:"preserve_images"`

	// Selection and refinement tuning.
	MinSplitScore           float64  `yaml:"min_split_score"`
	HeadingScoreBonus       float64  `yaml:"heading_score_bonus"`
	SentenceEndScoreBonus   float64  `yaml:"sentence_end_score_bonus"`
	LengthScoreFactor       int      `yaml:"length_score_factor"`
	SearchWindow            int      `yaml:"search_window"`
	HeadingAfterPenalty     float64  `yaml:"heading_after_penalty"`
	ForceSplitBeforeHeading bool     `yaml:"force_split_before_heading"`
	HeadingCooldownElements int      `yaml:"heading_cooldown_elements"`
	CustomHeadingRegex      []string `yaml:"custom_heading_regex"`
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		MaxLength:               1000,
		MinLength:               300,
		SentenceIntegrityWeight: 8.0,
		TableLengthFactor:       1.2,
		ImageLengthFactor:       100,
		PreserveImages:          true,

		MinSplitScore:           7,
		HeadingScoreBonus:       10,
		SentenceEndScoreBonus:   6,
		LengthScoreFactor:       100,
		SearchWindow:            5,
		HeadingAfterPenalty:     12,
		ForceSplitBeforeHeading: true,
		HeadingCooldownElements: 2,
	}
}

// Validate rejects parameter combinations the engine cannot work with.
func (p Params) Validate() error {
	if p.MaxLength <= 0 {
		return fmt.Errorf("max_length must be positive, got %d", p.MaxLength)
	}
	if p.MinLength < 0 || p.MinLength > p.MaxLength {
		return fmt.Errorf("min_length must be in [0, max_length], got %d", p.MinLength)
	}
	if p.TableLengthFactor < 0 {
		return fmt.Errorf("table_length_factor must not be negative, got %v", p.TableLengthFactor)
	}
	if p.ImageLengthFactor < 0 {
		return fmt.Errorf("image_length_factor must not be negative, got %d", p.ImageLengthFactor)
	}
	if p.LengthScoreFactor <= 0 {
		return fmt.Errorf("length_score_factor must be positive, got %d", p.LengthScoreFactor)
	}
	if p.SearchWindow < 0 {
		return fmt.Errorf("search_window must not be negative, got %d", p.SearchWindow)
	}
	if p.HeadingCooldownElements < 0 {
		return fmt.Errorf("heading_cooldown_elements must not be negative, got %d", p.HeadingCooldownElements)
	}
	return nil
}

// LoadProfile reads a YAML parameter profile, layered over the defaults
// so partial profiles work.
func LoadProfile(path string) (Params, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}
