package ast

// Link sets the parent reference of every node below root, so trees assembled from
// literals behave like parsed ones. It returns root.
func Link(root Node) Node {
	for _, child := range Children(root) {
		SetParent(child, root)
		Link(child)
	}
	return root
}
