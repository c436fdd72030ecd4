package analyzer

import (
	"errors"
	"fmt"
	"regexp"
)

var identifierExpr = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Config configures a detector
type Config struct {
	// Guarded enables liveness guard recognition
	Guarded bool
	// GuardUtilityNames lists functions accepted as liveness checks, e.g. isAlive(obj)
	GuardUtilityNames []string
}

// NewConfig builds a validated configuration from positional rule options
func NewConfig(guarded bool, options ...string) (*Config, error) {
	config := &Config{Guarded: guarded, GuardUtilityNames: options}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks utility names and removes duplicates, keeping the first occurrence
func (c *Config) Validate() error {
	if !c.Guarded && len(c.GuardUtilityNames) > 0 {
		return fmt.Errorf("guard utility names %v require guard recognition", c.GuardUtilityNames)
	}
	var errs []error
	seen := map[string]bool{}
	unique := make([]string, 0, len(c.GuardUtilityNames))
	for _, name := range c.GuardUtilityNames {
		if !identifierExpr.MatchString(name) {
			errs = append(errs, fmt.Errorf("invalid guard utility name: %q", name))
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	c.GuardUtilityNames = unique
	return nil
}
