package analyzer

import (
	"fmt"

	"github.com/viant/objguard/inspector/ast"
)

const (
	// NoObjectUpdateID reports unguarded mutations in continuation callbacks
	NoObjectUpdateID = "no-object-update"
	// NoPromiseHookUpdateID reports every mutation in continuation callbacks
	NoPromiseHookUpdateID = "no-promise-hook-update"
)

// Handler is invoked once per visited node of a registered kind
type Handler func(node ast.Node)

// Visitor maps node kinds to handlers
type Visitor map[ast.Kind]Handler

// Meta describes a rule
type Meta struct {
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category" json:"category"`
	Recommended bool   `yaml:"recommended" json:"recommended"`
	// Message is the report message rendered for the default object name
	Message string `yaml:"message" json:"message"`
}

// Rule is a detector variant
type Rule struct {
	Meta    Meta
	guarded bool
}

var (
	// NoObjectUpdate reports `obj.set` in continuation callbacks unless a liveness
	// guard encloses it. Options name guard utility functions.
	NoObjectUpdate = &Rule{
		Meta: Meta{
			ID:          NoObjectUpdateID,
			Description: "disallow EmberObject.set in promise hooks without a liveness check",
			Category:    "Possible Errors",
			Recommended: true,
			Message:     GuardMessage("", nil),
		},
		guarded: true,
	}

	// NoPromiseHookUpdate reports every `obj.set` in continuation callbacks
	NoPromiseHookUpdate = &Rule{
		Meta: Meta{
			ID:          NoPromiseHookUpdateID,
			Description: "disallow EmberObject.set in promise hooks",
			Category:    "Stylistic Issues",
			Message:     PromiseHookMessage(""),
		},
	}
)

// Rules returns all rules
func Rules() []*Rule {
	return []*Rule{NoObjectUpdate, NoPromiseHookUpdate}
}

// Lookup returns a rule by ID
func Lookup(id string) (*Rule, bool) {
	for _, rule := range Rules() {
		if rule.Meta.ID == id {
			return rule, true
		}
	}
	return nil, false
}

// Guarded reports whether the rule recognises liveness guards
func (r *Rule) Guarded() bool {
	return r.guarded
}

// Create validates options and returns the rule's visitor bound to ctx
func (r *Rule) Create(ctx Context, options []string) (Visitor, error) {
	config, err := NewConfig(r.guarded, options...)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", r.Meta.ID, err)
	}
	d := &detector{ctx: ctx, config: config}
	if config.Guarded {
		d.guards = NewGuards(config.GuardUtilityNames)
	}
	return Visitor{ast.KindIdentifier: d.checkIdentifier}, nil
}

type detector struct {
	ctx    Context
	config *Config
	guards *Guards
}

func (d *detector) checkIdentifier(node ast.Node) {
	id, ok := node.(*ast.Identifier)
	if !ok {
		return
	}
	member, ok := Candidate(id)
	if !ok {
		return
	}
	objName := ast.Path(member.Object)

	var guarded func(*ast.Scope) bool
	if d.guards != nil {
		guarded = func(scope *ast.Scope) bool {
			return d.guards.Guarded(scope, objName)
		}
	}
	scope, protected := Climb(d.ctx, id, guarded)
	if protected || !IsContinuation(scope) {
		return
	}
	d.ctx.Report(id, d.message(objName))
}

func (d *detector) message(objName string) string {
	if !d.config.Guarded {
		return PromiseHookMessage(objName)
	}
	return GuardMessage(objName, d.config.GuardUtilityNames)
}
