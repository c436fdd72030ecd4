package ast

// Syntax forms opening a non-function scope, keyed by Other.Type
var otherScopes = map[string]ScopeKind{
	"ForStatement":     ScopeFor,
	"ForInStatement":   ScopeFor,
	"ForOfStatement":   ScopeFor,
	"SwitchStatement":  ScopeSwitch,
	"CatchClause":      ScopeCatch,
	"ClassDeclaration": ScopeClass,
	"ClassExpression":  ScopeClass,
}

// BuildScopes derives the lexical scope chain of program. A module program gets a
// module scope below the global one.
func BuildScopes(program *Program, module bool) *ScopeTree {
	tree := NewScopeTree()
	if program == nil {
		return tree
	}
	root := tree.Add(ScopeGlobal, program, nil)
	if module {
		root = tree.Add(ScopeModule, program, root)
	}
	for _, stmt := range program.Body {
		buildScopes(tree, stmt, root)
	}
	return tree
}

func buildScopes(tree *ScopeTree, n Node, upper *Scope) {
	current := upper
	switch actual := n.(type) {
	case *Function:
		current = tree.Add(ScopeFunction, actual, upper)
	case *BlockStatement:
		if fn, ok := actual.Parent().(*Function); !ok || fn.Body != Node(actual) {
			current = tree.Add(ScopeBlock, actual, upper)
		}
	case *Other:
		if kind, ok := otherScopes[actual.Type]; ok {
			current = tree.Add(kind, actual, upper)
		}
	}
	for _, child := range Children(n) {
		buildScopes(tree, child, current)
	}
}
