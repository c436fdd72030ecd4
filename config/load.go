package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const generalSection = "general"

// Load reads a YAML or INI file over the defaults
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	var loaded *Config
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		loaded, err = parseYAML(data)
	case ".ini":
		loaded, err = parseINI(data)
	default:
		return nil, fmt.Errorf("unsupported config format: %v", URL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	result := Default()
	result.merge(loaded)
	if err = result.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return result, nil
}

// Discover loads the first configuration file found in root, or returns the defaults.
// The returned URL is empty when no file was found.
func Discover(ctx context.Context, fs afs.Service, root string) (*Config, string, error) {
	for _, name := range Files {
		URL := url.Join(root, name)
		ok, err := fs.Exists(ctx, URL)
		if err != nil {
			return nil, "", err
		}
		if !ok {
			continue
		}
		config, err := Load(ctx, fs, URL)
		return config, URL, err
	}
	return Default(), "", nil
}

func parseYAML(data []byte) (*Config, error) {
	result := &Config{}
	if err := yaml.Unmarshal(data, result); err != nil {
		return nil, err
	}
	return result, nil
}

// parseINI reads one section per rule plus a general section:
//
//	[general]
//	exclude = dist, legacy
//	[no-object-update]
//	options = isAlive, isRemoved
func parseINI(data []byte) (*Config, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, err
	}
	result := &Config{Rules: map[string]RuleConfig{}}
	general := cfg.Section(generalSection)
	result.Exclude = general.Key("exclude").Strings(",")
	result.Format = general.Key("format").MustString("")
	result.Baseline = general.Key("baseline").MustString("")

	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == ini.DefaultSection || name == generalSection {
			continue
		}
		rule := RuleConfig{}
		if section.HasKey("enabled") {
			enabled, err := section.Key("enabled").Bool()
			if err != nil {
				return nil, fmt.Errorf("section %v: invalid enabled value: %w", name, err)
			}
			rule.Enabled = &enabled
		}
		if section.HasKey("options") {
			rule.Options = section.Key("options").Strings(",")
		}
		result.Rules[name] = rule
	}
	return result, nil
}
