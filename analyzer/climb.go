package analyzer

import "github.com/viant/objguard/inspector/ast"

// Climb walks the scope chain from the innermost scope of n up to the nearest
// function-level scope. When guarded is non nil it is consulted at every level
// first; a guarded level stops the climb and Climb returns (nil, true).
func Climb(resolver ScopeResolver, n ast.Node, guarded func(*ast.Scope) bool) (*ast.Scope, bool) {
	for scope := resolver.ScopeOf(n); scope != nil; scope = scope.Upper() {
		if guarded != nil && guarded(scope) {
			return nil, true
		}
		if scope.IsFunction() {
			return scope, false
		}
	}
	return nil, false
}
