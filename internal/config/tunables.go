package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tunables is the optional YAML overlay for the scoring and routing knobs
// that differ between deployments. Absent fields keep their env/default
// values.
type Tunables struct {
	MinConfidence      *float64            `yaml:"min_confidence"`
	SummaryMaxLines    *int                `yaml:"summary_max_lines"`
	SummaryMinChars    *int                `yaml:"summary_min_chars"`
	ShortAbstractChars *int                `yaml:"short_abstract_chars"`
	RankWeights        *RankWeightsSpec    `yaml:"rank_weights"`
	SummaryWeights     *SummaryWeightsSpec `yaml:"summary_weights"`
	SmallTalk          []PhraseSpec        `yaml:"small_talk"`
}

// RankWeightsSpec mirrors rank.Weights for the YAML file.
type RankWeightsSpec struct {
	Cosine     float64 `yaml:"cosine"`
	Jaccard    float64 `yaml:"jaccard"`
	FieldBonus float64 `yaml:"field_bonus"`
}

// SummaryWeightsSpec mirrors summarize.Weights for the YAML file.
type SummaryWeightsSpec struct {
	Cosine  float64 `yaml:"cosine"`
	Jaccard float64 `yaml:"jaccard"`
	Overlap float64 `yaml:"overlap"`
}

// PhraseSpec is one small-talk table entry.
type PhraseSpec struct {
	Phrase string `yaml:"phrase"`
	Reply  string `yaml:"reply"`
}

// LoadTunables parses the overlay file. A missing path is not an error;
// callers get a nil overlay and keep the defaults.
func LoadTunables(path string) (*Tunables, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tunables file: %w", err)
	}
	var t Tunables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tunables file: %w", err)
	}
	return &t, nil
}

// Apply overlays the scalar tunables onto the answer config.
func (c *AnswerConfig) Apply(t *Tunables) {
	if t == nil {
		return
	}
	if t.MinConfidence != nil {
		c.MinConfidence = *t.MinConfidence
	}
	if t.SummaryMaxLines != nil {
		c.SummaryMaxLines = *t.SummaryMaxLines
	}
	if t.SummaryMinChars != nil {
		c.SummaryMinChars = *t.SummaryMinChars
	}
	if t.ShortAbstractChars != nil {
		c.ShortAbstractChars = *t.ShortAbstractChars
	}
}
