package config

import (
	"errors"
	"fmt"

	"github.com/viant/objguard/analyzer"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Files lists the configuration file names looked up in a lint root, in priority order
var Files = []string{".objguard.yaml", ".objguard.yml", ".objguard.ini"}

// RuleConfig configures a single rule; a listed rule with no Enabled value is on
type RuleConfig struct {
	Enabled *bool    `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
}

// Config represents lint settings
type Config struct {
	Rules    map[string]RuleConfig `yaml:"rules,omitempty" json:"rules,omitempty"`
	Exclude  []string              `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Format   string                `yaml:"format,omitempty" json:"format,omitempty"`
	Baseline string                `yaml:"baseline,omitempty" json:"baseline,omitempty"`
}

// Default returns settings enabling the guarded rule only
func Default() *Config {
	enabled := true
	return &Config{
		Rules: map[string]RuleConfig{
			analyzer.NoObjectUpdateID: {Enabled: &enabled},
		},
		Format: FormatText,
	}
}

// IsEnabled reports whether rule id is switched on
func (c *Config) IsEnabled(id string) bool {
	rule, ok := c.Rules[id]
	if !ok {
		return false
	}
	return rule.Enabled == nil || *rule.Enabled
}

// Enable switches rule id on, appending options to the configured ones
func (c *Config) Enable(id string, options ...string) {
	if c.Rules == nil {
		c.Rules = map[string]RuleConfig{}
	}
	enabled := true
	rule := c.Rules[id]
	rule.Enabled = &enabled
	rule.Options = append(rule.Options, options...)
	c.Rules[id] = rule
}

// Disable switches rule id off
func (c *Config) Disable(id string) {
	if c.Rules == nil {
		c.Rules = map[string]RuleConfig{}
	}
	disabled := false
	rule := c.Rules[id]
	rule.Enabled = &disabled
	c.Rules[id] = rule
}

// Options returns the options of rule id
func (c *Config) Options(id string) []string {
	return c.Rules[id].Options
}

// EnabledRules returns the switched on rules in registry order
func (c *Config) EnabledRules() []*analyzer.Rule {
	var result []*analyzer.Rule
	for _, rule := range analyzer.Rules() {
		if c.IsEnabled(rule.Meta.ID) {
			result = append(result, rule)
		}
	}
	return result
}

// Validate checks rule IDs, rule options and the output format
func (c *Config) Validate() error {
	var errs []error
	for id, ruleConfig := range c.Rules {
		rule, ok := analyzer.Lookup(id)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown rule: %v", id))
			continue
		}
		if _, err := analyzer.NewConfig(rule.Guarded(), ruleConfig.Options...); err != nil {
			errs = append(errs, fmt.Errorf("rule %v: %w", id, err))
		}
	}
	switch c.Format {
	case "", FormatText, FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("unsupported format: %v", c.Format))
	}
	return errors.Join(errs...)
}

// merge overlays settings read from a file
func (c *Config) merge(other *Config) {
	if c.Rules == nil {
		c.Rules = map[string]RuleConfig{}
	}
	for id, rule := range other.Rules {
		c.Rules[id] = rule
	}
	if len(other.Exclude) > 0 {
		c.Exclude = other.Exclude
	}
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.Baseline != "" {
		c.Baseline = other.Baseline
	}
}
