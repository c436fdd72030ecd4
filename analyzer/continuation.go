package analyzer

import "github.com/viant/objguard/inspector/ast"

var continuationHooks = map[string]bool{
	"then":    true,
	"catch":   true,
	"finally": true,
}

// IsContinuation reports whether a function scope belongs to a callback passed to
// `.then`, `.catch` or `.finally`. The receiver is not checked to be promise-like.
func IsContinuation(scope *ast.Scope) bool {
	if scope == nil || scope.Block == nil {
		return false
	}
	call, ok := scope.Block.Parent().(*ast.CallExpression)
	if !ok {
		return false
	}
	callee, ok := call.Callee.(*ast.MemberExpression)
	if !ok || callee.Computed {
		return false
	}
	property, ok := callee.Property.(*ast.Identifier)
	return ok && continuationHooks[property.Name]
}
