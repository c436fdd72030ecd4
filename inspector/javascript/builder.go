package javascript

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/objguard/inspector/ast"
)

// estreeNames maps tree-sitter node types kept as ast.Other to ESTree names
var estreeNames = map[string]string{
	"expression_statement":       "ExpressionStatement",
	"return_statement":           "ReturnStatement",
	"lexical_declaration":        "VariableDeclaration",
	"variable_declaration":       "VariableDeclaration",
	"variable_declarator":        "VariableDeclarator",
	"assignment_expression":      "AssignmentExpression",
	"await_expression":           "AwaitExpression",
	"new_expression":             "NewExpression",
	"binary_expression":          "BinaryExpression",
	"ternary_expression":         "ConditionalExpression",
	"sequence_expression":        "SequenceExpression",
	"object":                     "ObjectExpression",
	"array":                      "ArrayExpression",
	"pair":                       "Property",
	"spread_element":             "SpreadElement",
	"for_statement":              "ForStatement",
	"for_in_statement":           "ForInStatement",
	"while_statement":            "WhileStatement",
	"do_statement":               "DoWhileStatement",
	"switch_statement":           "SwitchStatement",
	"switch_body":                "SwitchBody",
	"switch_case":                "SwitchCase",
	"switch_default":             "SwitchCase",
	"try_statement":              "TryStatement",
	"catch_clause":               "CatchClause",
	"finally_clause":             "FinallyClause",
	"throw_statement":            "ThrowStatement",
	"class_declaration":          "ClassDeclaration",
	"abstract_class_declaration": "ClassDeclaration",
	"class":                      "ClassExpression",
	"class_body":                 "ClassBody",
	"import_statement":           "ImportDeclaration",
	"export_statement":           "ExportDeclaration",
	"formal_parameters":          "FormalParameters",
	"ERROR":                      "ERROR",
}

var functionForms = map[string]ast.FunctionForm{
	"function_declaration":           ast.FunctionDeclaration,
	"generator_function_declaration": ast.FunctionDeclaration,
	"function":                       ast.FunctionExpression,
	"function_expression":            ast.FunctionExpression,
	"generator_function":             ast.FunctionExpression,
	"arrow_function":                 ast.ArrowFunction,
	"method_definition":              ast.MethodFunction,
}

var identifierTypes = map[string]bool{
	"identifier":                            true,
	"property_identifier":                   true,
	"shorthand_property_identifier":         true,
	"shorthand_property_identifier_pattern": true,
	"private_property_identifier":           true,
	"statement_identifier":                  true,
}

var literalTypes = map[string]bool{
	"string":          true,
	"template_string": true,
	"number":          true,
	"true":            true,
	"false":           true,
	"null":            true,
	"undefined":       true,
	"regex":           true,
}

// builder converts a tree-sitter concrete tree into the ast union
type builder struct {
	src       []byte
	hasErrors bool
	module    bool
}

func (b *builder) program(root *sitter.Node) *ast.Program {
	program := &ast.Program{}
	ast.Attach(program, nil, span(root))
	for _, child := range namedChildren(root) {
		switch child.Type() {
		case "import_statement", "export_statement":
			b.module = true
		}
		if stmt := b.convert(child, program); stmt != nil {
			program.Body = append(program.Body, stmt)
		}
	}
	if root.HasError() {
		b.hasErrors = true
	}
	return program
}

func (b *builder) convert(n *sitter.Node, parent ast.Node) ast.Node {
	if n == nil || n.IsNull() {
		return nil
	}
	nodeType := n.Type()
	switch {
	case nodeType == "comment" || nodeType == "hash_bang_line":
		return nil
	case nodeType == "parenthesized_expression":
		children := namedChildren(n)
		if len(children) == 1 {
			return b.convert(children[0], parent)
		}
	case identifierTypes[nodeType]:
		node := &ast.Identifier{Name: n.Content(b.src)}
		ast.Attach(node, parent, span(n))
		return node
	case nodeType == "this":
		node := &ast.ThisExpression{}
		ast.Attach(node, parent, span(n))
		return node
	case literalTypes[nodeType]:
		node := &ast.Literal{Raw: n.Content(b.src)}
		ast.Attach(node, parent, span(n))
		return node
	case nodeType == "member_expression":
		node := &ast.MemberExpression{Optional: n.ChildByFieldName("optional_chain") != nil}
		ast.Attach(node, parent, span(n))
		node.Object = b.convert(n.ChildByFieldName("object"), node)
		node.Property = b.convert(n.ChildByFieldName("property"), node)
		return node
	case nodeType == "subscript_expression":
		node := &ast.MemberExpression{Computed: true, Optional: n.ChildByFieldName("optional_chain") != nil}
		ast.Attach(node, parent, span(n))
		node.Object = b.convert(n.ChildByFieldName("object"), node)
		node.Property = b.convert(n.ChildByFieldName("index"), node)
		return node
	case nodeType == "call_expression":
		return b.call(n, parent)
	case nodeType == "binary_expression":
		operator := operatorOf(n)
		if operator == "&&" || operator == "||" || operator == "??" {
			node := &ast.LogicalExpression{Operator: operator}
			ast.Attach(node, parent, span(n))
			node.Left = b.convert(n.ChildByFieldName("left"), node)
			node.Right = b.convert(n.ChildByFieldName("right"), node)
			return node
		}
	case nodeType == "unary_expression":
		node := &ast.UnaryExpression{Operator: operatorOf(n)}
		ast.Attach(node, parent, span(n))
		node.Argument = b.convert(n.ChildByFieldName("argument"), node)
		return node
	case nodeType == "if_statement":
		return b.ifStatement(n, parent)
	case nodeType == "statement_block":
		node := &ast.BlockStatement{}
		ast.Attach(node, parent, span(n))
		node.Body = b.convertAll(namedChildren(n), node)
		return node
	case functionForms[nodeType] != "":
		return b.function(n, parent, functionForms[nodeType])
	case nodeType == "ERROR":
		b.hasErrors = true
	}
	return b.other(n, parent)
}

func (b *builder) other(n *sitter.Node, parent ast.Node) ast.Node {
	name, ok := estreeNames[n.Type()]
	if !ok {
		name = n.Type()
	}
	node := &ast.Other{Type: name}
	ast.Attach(node, parent, span(n))
	node.Children = b.convertAll(namedChildren(n), node)
	return node
}

func (b *builder) call(n *sitter.Node, parent ast.Node) ast.Node {
	node := &ast.CallExpression{Optional: n.ChildByFieldName("optional_chain") != nil}
	ast.Attach(node, parent, span(n))
	node.Callee = b.convert(n.ChildByFieldName("function"), node)
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return node
	}
	if args.Type() == "arguments" {
		node.Arguments = b.convertAll(namedChildren(args), node)
	} else if arg := b.convert(args, node); arg != nil {
		// tagged template
		node.Arguments = append(node.Arguments, arg)
	}
	return node
}

func (b *builder) ifStatement(n *sitter.Node, parent ast.Node) ast.Node {
	node := &ast.IfStatement{}
	ast.Attach(node, parent, span(n))
	node.Test = b.convert(n.ChildByFieldName("condition"), node)
	node.Consequent = b.convert(n.ChildByFieldName("consequence"), node)
	if alternative := n.ChildByFieldName("alternative"); alternative != nil {
		if alternative.Type() == "else_clause" {
			if children := namedChildren(alternative); len(children) > 0 {
				alternative = children[0]
			}
		}
		node.Alternate = b.convert(alternative, node)
	}
	return node
}

func (b *builder) function(n *sitter.Node, parent ast.Node, form ast.FunctionForm) ast.Node {
	node := &ast.Function{Form: form}
	ast.Attach(node, parent, span(n))
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "async":
			node.Async = true
		case "*":
			node.Generator = true
		}
	}
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		if name, ok := b.convert(nameNode, node).(*ast.Identifier); ok {
			node.Name = name
		}
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		node.Params = b.convertAll(namedChildren(params), node)
	} else if param := b.convert(n.ChildByFieldName("parameter"), node); param != nil {
		node.Params = append(node.Params, param)
	}
	node.Body = b.convert(n.ChildByFieldName("body"), node)
	return node
}

func (b *builder) convertAll(nodes []*sitter.Node, parent ast.Node) []ast.Node {
	var result []ast.Node
	for _, n := range nodes {
		if converted := b.convert(n, parent); converted != nil {
			result = append(result, converted)
		}
	}
	return result
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil {
			result = append(result, child)
		}
	}
	return result
}

func operatorOf(n *sitter.Node) string {
	if operator := n.ChildByFieldName("operator"); operator != nil {
		return operator.Type()
	}
	return ""
}

func span(n *sitter.Node) ast.Span {
	start, end := n.StartPoint(), n.EndPoint()
	return ast.Span{
		Start: ast.Position{Offset: int(n.StartByte()), Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		End:   ast.Position{Offset: int(n.EndByte()), Line: int(end.Row) + 1, Column: int(end.Column) + 1},
	}
}
