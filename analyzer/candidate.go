package analyzer

import "github.com/viant/objguard/inspector/ast"

// MutationMethod is the object mutation method name
const MutationMethod = "set"

// Candidate returns the member access enclosing an identifier named `set`.
// The parent must be a member access rather than a direct call, and its receiver
// must not be `this`. The position of `set` within the access is not checked, so
// `set.foo()` and `obj[set]` match too. Incomplete trees never match.
func Candidate(id *ast.Identifier) (*ast.MemberExpression, bool) {
	if id == nil || id.Name != MutationMethod {
		return nil, false
	}
	member, ok := id.Parent().(*ast.MemberExpression)
	if !ok {
		// a bare set(x) has a CallExpression parent
		return nil, false
	}
	if member.Object == nil {
		return nil, false
	}
	if _, self := member.Object.(*ast.ThisExpression); self {
		return nil, false
	}
	return member, true
}

// IsCandidate reports whether id names an object mutation call
func IsCandidate(id *ast.Identifier) bool {
	_, ok := Candidate(id)
	return ok
}
