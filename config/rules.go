package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/DhavalSuthar-24/crease/internal/innings"
	"github.com/DhavalSuthar-24/crease/internal/models"
	"github.com/DhavalSuthar-24/crease/internal/mvp"
)

// ScoringRules are the playing conditions and MVP weights the service
// scores with.
type ScoringRules struct {
	Rules   innings.Rules
	Weights mvp.Weights
}

// DefaultScoringRules is used when no rules file is present.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{Rules: innings.DefaultRules(), Weights: mvp.DefaultWeights()}
}

type rulesFile struct {
	FreeHitDismissals *[]models.WicketType `yaml:"free_hit_dismissals"`
	MaxOversPerBowler int                  `yaml:"max_overs_per_bowler"`
	HistoryDepth      int                  `yaml:"history_depth"`
	RotateOnExtraRuns bool                 `yaml:"rotate_on_extra_runs"`
	MVP               mvp.Weights          `yaml:"mvp"`
}

// LoadScoringRules reads the YAML rules file at path. A missing file yields
// the defaults; keys left out of the file keep their default values.
func LoadScoringRules(path string) (ScoringRules, error) {
	defaults := DefaultScoringRules()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.WithField("path", path).Info("scoring rules file not found, using defaults")
		return defaults, nil
	}
	if err != nil {
		return ScoringRules{}, fmt.Errorf("read scoring rules: %w", err)
	}
	return ParseScoringRules(data)
}

// ParseScoringRules decodes a rules document over the defaults.
func ParseScoringRules(data []byte) (ScoringRules, error) {
	defaults := DefaultScoringRules()
	f := rulesFile{
		HistoryDepth: defaults.Rules.HistoryDepth,
		MVP:          defaults.Weights,
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ScoringRules{}, fmt.Errorf("parse scoring rules: %w", err)
	}

	rules := defaults.Rules
	if f.FreeHitDismissals != nil {
		for _, w := range *f.FreeHitDismissals {
			if !w.Valid() {
				return ScoringRules{}, fmt.Errorf("free_hit_dismissals: unknown wicket type %q", w)
			}
		}
		rules.FreeHitDismissals = *f.FreeHitDismissals
	}
	if f.MaxOversPerBowler < 0 {
		return ScoringRules{}, fmt.Errorf("max_overs_per_bowler must not be negative, got %d", f.MaxOversPerBowler)
	}
	if f.HistoryDepth < 0 {
		return ScoringRules{}, fmt.Errorf("history_depth must not be negative, got %d", f.HistoryDepth)
	}
	rules.MaxOversPerBowler = f.MaxOversPerBowler
	rules.HistoryDepth = f.HistoryDepth
	rules.RotateOnExtraRuns = f.RotateOnExtraRuns

	return ScoringRules{Rules: rules, Weights: f.MVP}, nil
}
