package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/viant/objguard/config"
	"github.com/viant/objguard/finding"
	"gopkg.in/yaml.v3"
)

// Write renders result in format; an empty format means text
func Write(w io.Writer, result *finding.Result, format string) error {
	switch format {
	case "", config.FormatText:
		return writeText(w, result)
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported format: %v", format)
}

// writeText prints one `path:line:col: message (rule)` line per finding and a summary
func writeText(w io.Writer, result *finding.Result) error {
	for _, f := range result.Findings {
		if _, err := fmt.Fprintf(w, "%s: %s (%s)\n", f.Location(), f.Message, f.RuleID); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, summary(result))
	return err
}

func summary(result *finding.Result) string {
	count := len(result.Findings)
	if count == 0 {
		return fmt.Sprintf("%d %s checked, no problems found", result.Files, plural(result.Files, "file"))
	}
	byRule := result.ByRule()
	rules := make([]string, 0, len(byRule))
	for id := range byRule {
		rules = append(rules, id)
	}
	sort.Strings(rules)
	text := fmt.Sprintf("%d %s in %d %s checked", count, plural(count, "problem"), result.Files, plural(result.Files, "file"))
	for i, id := range rules {
		separator := ", "
		if i == 0 {
			separator = ": "
		}
		text += fmt.Sprintf("%s%s %d", separator, id, byRule[id])
	}
	return text
}

func plural(count int, noun string) string {
	if count == 1 {
		return noun
	}
	return noun + "s"
}
