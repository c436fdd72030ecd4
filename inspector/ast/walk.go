package ast

// Children returns the direct children of n in source order
func Children(n Node) []Node {
	var result []Node
	add := func(nodes ...Node) {
		for _, node := range nodes {
			if node != nil {
				result = append(result, node)
			}
		}
	}
	switch actual := n.(type) {
	case *Program:
		add(actual.Body...)
	case *Identifier, *ThisExpression, *Literal:
	case *MemberExpression:
		add(actual.Object, actual.Property)
	case *CallExpression:
		add(actual.Callee)
		add(actual.Arguments...)
	case *LogicalExpression:
		add(actual.Left, actual.Right)
	case *UnaryExpression:
		add(actual.Argument)
	case *IfStatement:
		add(actual.Test, actual.Consequent, actual.Alternate)
	case *BlockStatement:
		add(actual.Body...)
	case *Function:
		if actual.Name != nil {
			add(actual.Name)
		}
		add(actual.Params...)
		add(actual.Body)
	case *Other:
		add(actual.Children...)
	}
	return result
}

// Inspect traverses the tree rooted at n in pre-order. If fn returns false,
// the children of the node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, fn)
	}
}

// Path renders an identifier, `this`, a dotted member chain or a call on such a chain
// (e.g. `obj`, `this.model`, `a.b.c`, `store.get()`); it returns "" for any other shape.
func Path(n Node) string {
	switch actual := n.(type) {
	case *Identifier:
		return actual.Name
	case *ThisExpression:
		return "this"
	case *MemberExpression:
		if actual.Computed {
			return ""
		}
		property, ok := actual.Property.(*Identifier)
		if !ok {
			return ""
		}
		object := Path(actual.Object)
		if object == "" {
			return ""
		}
		return object + "." + property.Name
	case *CallExpression:
		callee := Path(actual.Callee)
		if callee == "" {
			return ""
		}
		return callee + "()"
	}
	return ""
}
