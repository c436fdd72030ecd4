package linter

import (
	"strings"

	"github.com/viant/objguard/analyzer"
	"github.com/viant/objguard/finding"
	"github.com/viant/objguard/inspector/ast"
	"github.com/viant/objguard/inspector/javascript"
)

// fileContext collects the findings of all rules run over one file
type fileContext struct {
	file        *javascript.File
	path        string
	findings    []*finding.Finding
	occurrences map[string]int // per rule, message and line text
	err         error
}

// ruleContext binds a rule ID to the shared file context
type ruleContext struct {
	*fileContext
	ruleID string
}

func (c *fileContext) ScopeOf(node ast.Node) *ast.Scope {
	return c.file.Scopes.ScopeOf(node)
}

func (c *ruleContext) Report(node ast.Node, message string) {
	span := node.Span()
	lineText := strings.TrimSpace(c.file.Line(span.Start.Line))
	key := c.ruleID + "|" + message + "|" + lineText
	if c.occurrences == nil {
		c.occurrences = map[string]int{}
	}
	occurrence := c.occurrences[key]
	c.occurrences[key]++
	fingerprint, err := finding.Fingerprint(c.ruleID, c.path, message, lineText, occurrence)
	if err != nil && c.err == nil {
		c.err = err
	}
	c.findings = append(c.findings, &finding.Finding{
		RuleID:      c.ruleID,
		Message:     message,
		Path:        c.path,
		Line:        span.Start.Line,
		Column:      span.Start.Column,
		EndLine:     span.End.Line,
		EndColumn:   span.End.Column,
		Fingerprint: fingerprint,
	})
}

var _ analyzer.Context = (*ruleContext)(nil)

// dispatcher fans visited nodes out to the handlers registered for their kind, in rule order
type dispatcher map[ast.Kind][]analyzer.Handler

func (d dispatcher) register(visitor analyzer.Visitor) {
	for kind, handler := range visitor {
		d[kind] = append(d[kind], handler)
	}
}

func (d dispatcher) run(program *ast.Program) {
	ast.Inspect(program, func(n ast.Node) bool {
		for _, handler := range d[n.Kind()] {
			handler(n)
		}
		return true
	})
}
