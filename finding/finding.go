package finding

import (
	"fmt"
	"sort"
)

// Finding is a reported mutation site
type Finding struct {
	RuleID      string `yaml:"ruleId" json:"ruleId"`
	Message     string `yaml:"message" json:"message"`
	Path        string `yaml:"path" json:"path"`
	Line        int    `yaml:"line" json:"line"`
	Column      int    `yaml:"column" json:"column"`
	EndLine     int    `yaml:"endLine" json:"endLine"`
	EndColumn   int    `yaml:"endColumn" json:"endColumn"`
	Fingerprint string `yaml:"fingerprint" json:"fingerprint"`
}

// Location returns path:line:column
func (f *Finding) Location() string {
	return fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.Column)
}

// Result holds the findings of a lint run
type Result struct {
	Project  *Project   `yaml:"project,omitempty" json:"project,omitempty"`
	Files    int        `yaml:"files" json:"files"`
	Findings []*Finding `yaml:"findings" json:"findings"`
	Paths    []string   `yaml:"-" json:"-"` // linted file paths, in visitation order
}

// Add appends findings
func (r *Result) Add(findings ...*Finding) {
	r.Findings = append(r.Findings, findings...)
}

// Sort orders findings by path, line, column and rule
func (r *Result) Sort() {
	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.RuleID < b.RuleID
	})
}

// ByRule counts findings per rule
func (r *Result) ByRule() map[string]int {
	result := map[string]int{}
	for _, f := range r.Findings {
		result[f.RuleID]++
	}
	return result
}
