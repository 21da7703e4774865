package analytics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultIssueStatistics is used for any issue without a configured mean/stdDev.
var DefaultIssueStatistics = IssueStatistics{Mean: 50, StdDev: 10}

type IssueStatistics struct {
	Mean   float64 `yaml:"mean" json:"mean"`
	StdDev float64 `yaml:"stdDev" json:"stdDev"`
}

type ThresholdBound struct {
	Min float64 `yaml:"min" json:"min"`
}

type SeverityThresholds struct {
	Borderline ThresholdBound `yaml:"borderline" json:"borderline"`
	Clinical   ThresholdBound `yaml:"clinical" json:"clinical"`
}

// IssueConfig is the static configuration of one issue. Every field is optional.
type IssueConfig struct {
	Name                string                        `yaml:"name" json:"name"`
	Statistics          *IssueStatistics              `yaml:"statistics" json:"statistics,omitempty"`
	Thresholds          map[string]SeverityThresholds `yaml:"thresholds" json:"thresholds,omitempty"`
	RecommendedCourseID string                        `yaml:"recommendedCourseId" json:"recommendedCourseId,omitempty"`
	Professional        *Professional                 `yaml:"professional" json:"professional,omitempty"`
}

// EducationPolicy holds the product-policy cutoffs of the education analyzer.
type EducationPolicy struct {
	WeakCutoff     float64 `yaml:"weakCutoff" json:"weakCutoff"`
	StrongCutoff   float64 `yaml:"strongCutoff" json:"strongCutoff"`
	TrendEpsilon   float64 `yaml:"trendEpsilon" json:"trendEpsilon"`
	LowConsistency float64 `yaml:"lowConsistency" json:"lowConsistency"`
	MaxGPA         float64 `yaml:"maxGpa" json:"maxGpa"`
}

func DefaultEducationPolicy() EducationPolicy {
	return EducationPolicy{
		WeakCutoff:     60,
		StrongCutoff:   90,
		TrendEpsilon:   0.5,
		LowConsistency: 70,
		MaxGPA:         4,
	}
}

// ScoringConfig is passed explicitly to the engine; there is no process-wide table.
type ScoringConfig struct {
	Issues    map[string]IssueConfig `yaml:"issues" json:"issues"`
	Education EducationPolicy        `yaml:"education" json:"education"`
}

func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Issues:    map[string]IssueConfig{},
		Education: DefaultEducationPolicy(),
	}
}

// Statistics returns the configured mean/stdDev of an issue, or DefaultIssueStatistics.
func (c *ScoringConfig) Statistics(issueID string) IssueStatistics {
	if c == nil {
		return DefaultIssueStatistics
	}
	issue, ok := c.Issues[issueID]
	if !ok || issue.Statistics == nil {
		return DefaultIssueStatistics
	}
	return *issue.Statistics
}

// Thresholds returns the thresholds of an issue for a threshold family.
func (c *ScoringConfig) Thresholds(issueID, family string) (SeverityThresholds, bool) {
	if c == nil {
		return SeverityThresholds{}, false
	}
	issue, ok := c.Issues[issueID]
	if !ok {
		return SeverityThresholds{}, false
	}
	t, ok := issue.Thresholds[family]
	return t, ok
}

func (c *ScoringConfig) Issue(issueID string) (IssueConfig, bool) {
	if c == nil {
		return IssueConfig{}, false
	}
	issue, ok := c.Issues[issueID]
	return issue, ok
}

// normalize fills zero policy values with defaults so a partial file stays usable.
func (c *ScoringConfig) normalize() {
	if c.Issues == nil {
		c.Issues = map[string]IssueConfig{}
	}
	def := DefaultEducationPolicy()
	if c.Education.WeakCutoff <= 0 {
		c.Education.WeakCutoff = def.WeakCutoff
	}
	if c.Education.StrongCutoff <= 0 {
		c.Education.StrongCutoff = def.StrongCutoff
	}
	if c.Education.TrendEpsilon <= 0 {
		c.Education.TrendEpsilon = def.TrendEpsilon
	}
	if c.Education.LowConsistency <= 0 {
		c.Education.LowConsistency = def.LowConsistency
	}
	if c.Education.MaxGPA <= 0 {
		c.Education.MaxGPA = def.MaxGPA
	}
}

// ParseScoringConfig decodes a YAML scoring table.
func ParseScoringConfig(data []byte) (*ScoringConfig, error) {
	cfg := DefaultScoringConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse scoring config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadScoringConfig reads the scoring table at path. A missing file yields the defaults.
func LoadScoringConfig(path string) (*ScoringConfig, error) {
	cfg, err := ReadScoringConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultScoringConfig(), nil
	}
	return cfg, err
}

// ReadScoringConfig reads the scoring table at path. Unlike LoadScoringConfig a
// missing file is an error.
func ReadScoringConfig(path string) (*ScoringConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring config: %w", err)
	}
	return ParseScoringConfig(data)
}
