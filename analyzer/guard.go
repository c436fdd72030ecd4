package analyzer

import "github.com/viant/objguard/inspector/ast"

// LivenessProperty is the property checked by an inline liveness guard
const LivenessProperty = "isDestroying"

// Guards matches conditional tests against liveness guard shapes
type Guards struct {
	utilities map[string]bool
}

// NewGuards creates a matcher accepting the listed utility functions besides `obj.isDestroying`
func NewGuards(utilities []string) *Guards {
	result := &Guards{utilities: make(map[string]bool, len(utilities))}
	for _, name := range utilities {
		result.utilities[name] = true
	}
	return result
}

// Flatten decomposes logical and unary compositions of test into atomic member
// accesses and calls. Operators are discarded, so `!a.x || f(b)` yields [a.x, f(b)].
func Flatten(test ast.Node) []ast.Node {
	switch actual := test.(type) {
	case *ast.LogicalExpression:
		return append(Flatten(actual.Left), Flatten(actual.Right)...)
	case *ast.UnaryExpression:
		return Flatten(actual.Argument)
	case *ast.MemberExpression, *ast.CallExpression:
		return []ast.Node{actual}
	}
	return nil
}

// Protects reports whether any atomic part of test is a liveness check of objName.
// Polarity is ignored: `obj.isDestroying` and `!obj.isDestroying` both match.
func (g *Guards) Protects(test ast.Node, objName string) bool {
	if objName == "" {
		return false
	}
	for _, candidate := range Flatten(test) {
		switch actual := candidate.(type) {
		case *ast.MemberExpression:
			if isLivenessCheck(actual, objName) {
				return true
			}
		case *ast.CallExpression:
			if g.isUtilityCheck(actual, objName) {
				return true
			}
		}
	}
	return false
}

// Guarded reports whether scope is the branch of an if statement whose test protects objName
func (g *Guards) Guarded(scope *ast.Scope, objName string) bool {
	if scope == nil || scope.Block == nil {
		return false
	}
	stmt, ok := scope.Block.Parent().(*ast.IfStatement)
	if !ok {
		return false
	}
	return g.Protects(stmt.Test, objName)
}

func isLivenessCheck(member *ast.MemberExpression, objName string) bool {
	if member.Computed {
		return false
	}
	property, ok := member.Property.(*ast.Identifier)
	if !ok || property.Name != LivenessProperty {
		return false
	}
	return ast.Path(member.Object) == objName
}

// isUtilityCheck matches util(<obj>) where an argument renders to objName, so member
// receivers are accepted as well as identifiers
func (g *Guards) isUtilityCheck(call *ast.CallExpression, objName string) bool {
	if !g.utilities[calleeName(call.Callee)] {
		return false
	}
	for _, arg := range call.Arguments {
		if ast.Path(arg) == objName {
			return true
		}
	}
	return false
}

// calleeName returns `f` for f(...) and for ns.f(...)
func calleeName(callee ast.Node) string {
	switch actual := callee.(type) {
	case *ast.Identifier:
		return actual.Name
	case *ast.MemberExpression:
		if actual.Computed {
			return ""
		}
		if property, ok := actual.Property.(*ast.Identifier); ok {
			return property.Name
		}
	}
	return ""
}
