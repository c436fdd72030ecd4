package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/objguard/inspector/ast"
)

// promise.then(() => { if (ok) { obj.set('a', 1) } })
func sampleProgram() (*ast.Program, *ast.Identifier) {
	set := &ast.Identifier{Name: "set"}
	call := &ast.CallExpression{
		Callee:    &ast.MemberExpression{Object: &ast.Identifier{Name: "obj"}, Property: set},
		Arguments: []ast.Node{&ast.Literal{Raw: "'a'"}, &ast.Literal{Raw: "1"}},
	}
	guarded := &ast.BlockStatement{Body: []ast.Node{&ast.Other{Type: "ExpressionStatement", Children: []ast.Node{call}}}}
	callback := &ast.Function{
		Form: ast.ArrowFunction,
		Body: &ast.BlockStatement{Body: []ast.Node{
			&ast.IfStatement{Test: &ast.Identifier{Name: "ok"}, Consequent: guarded},
		}},
	}
	then := &ast.CallExpression{
		Callee:    &ast.MemberExpression{Object: &ast.Identifier{Name: "promise"}, Property: &ast.Identifier{Name: "then"}},
		Arguments: []ast.Node{callback},
	}
	program := &ast.Program{Body: []ast.Node{&ast.Other{Type: "ExpressionStatement", Children: []ast.Node{then}}}}
	ast.Link(program)
	return program, set
}

func TestBuildScopes(t *testing.T) {
	var testCases = []struct {
		description string
		module      bool
		expectKinds []ast.ScopeKind
	}{
		{
			description: "script",
			expectKinds: []ast.ScopeKind{ast.ScopeBlock, ast.ScopeFunction, ast.ScopeGlobal},
		},
		{
			description: "module",
			module:      true,
			expectKinds: []ast.ScopeKind{ast.ScopeBlock, ast.ScopeFunction, ast.ScopeModule, ast.ScopeGlobal},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			program, set := sampleProgram()
			tree := ast.BuildScopes(program, testCase.module)
			scope := tree.ScopeOf(set)
			require.NotNil(t, scope)
			var kinds []ast.ScopeKind
			for ; scope != nil; scope = scope.Upper() {
				kinds = append(kinds, scope.Kind)
			}
			assert.EqualValues(t, testCase.expectKinds, kinds)
			assert.Equal(t, len(testCase.expectKinds), tree.Len())
		})
	}
}

func TestScopeTree_FunctionBodyHasNoBlockScope(t *testing.T) {
	program, set := sampleProgram()
	tree := ast.BuildScopes(program, false)

	fnScope := tree.ScopeOf(set).Upper()
	require.NotNil(t, fnScope)
	assert.True(t, fnScope.IsFunction())
	fn, ok := fnScope.Block.(*ast.Function)
	require.True(t, ok)
	assert.Nil(t, tree.Introduced(fn.Body))
	assert.Same(t, tree.Root(), fnScope.Upper())
	assert.Nil(t, tree.Root().Upper())
}

func TestScopeTree_Detached(t *testing.T) {
	program, _ := sampleProgram()
	tree := ast.BuildScopes(program, false)
	assert.Nil(t, tree.ScopeOf(&ast.Identifier{Name: "orphan"}))
	assert.Nil(t, ast.NewScopeTree().Root())
}

func TestPath(t *testing.T) {
	var testCases = []struct {
		description string
		node        ast.Node
		expect      string
	}{
		{description: "identifier", node: &ast.Identifier{Name: "obj"}, expect: "obj"},
		{description: "this", node: &ast.ThisExpression{}, expect: "this"},
		{
			description: "member chain",
			node: &ast.MemberExpression{
				Object:   &ast.MemberExpression{Object: &ast.ThisExpression{}, Property: &ast.Identifier{Name: "model"}},
				Property: &ast.Identifier{Name: "owner"},
			},
			expect: "this.model.owner",
		},
		{
			description: "computed member",
			node:        &ast.MemberExpression{Object: &ast.Identifier{Name: "a"}, Property: &ast.Identifier{Name: "b"}, Computed: true},
			expect:      "",
		},
		{
			description: "call",
			node:        &ast.CallExpression{Callee: &ast.MemberExpression{Object: &ast.Identifier{Name: "store"}, Property: &ast.Identifier{Name: "get"}}},
			expect:      "store.get()",
		},
		{description: "literal", node: &ast.Literal{Raw: "1"}, expect: ""},
		{description: "nil", node: nil, expect: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, ast.Path(testCase.node))
		})
	}
}

func TestInspect(t *testing.T) {
	program, set := sampleProgram()
	var identifiers []string
	ast.Inspect(program, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok {
			identifiers = append(identifiers, id.Name)
		}
		return true
	})
	assert.EqualValues(t, []string{"promise", "then", "ok", "obj", "set"}, identifiers)
	assert.Equal(t, ast.KindMemberExpression, set.Parent().Kind())

	identifiers = nil
	ast.Inspect(program, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok {
			identifiers = append(identifiers, id.Name)
		}
		return n.Kind() != ast.KindIfStatement
	})
	assert.EqualValues(t, []string{"promise", "then"}, identifiers, "pruned below the if statement")
}
