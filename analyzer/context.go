package analyzer

import "github.com/viant/objguard/inspector/ast"

// ScopeResolver maps a node to its innermost lexical scope
type ScopeResolver interface {
	ScopeOf(node ast.Node) *ast.Scope
}

// Reporter receives findings
type Reporter interface {
	Report(node ast.Node, message string)
}

// Context is the host collaborator a rule is created with
type Context interface {
	ScopeResolver
	Reporter
}
