package ast

// ScopeKind classifies a lexical scope
type ScopeKind string

const (
	ScopeGlobal   ScopeKind = "global"
	ScopeModule   ScopeKind = "module"
	ScopeFunction ScopeKind = "function"
	ScopeBlock    ScopeKind = "block"
	ScopeFor      ScopeKind = "for"
	ScopeSwitch   ScopeKind = "switch"
	ScopeCatch    ScopeKind = "catch"
	ScopeClass    ScopeKind = "class"
)

const noUpper = -1

// Scope is a record in a ScopeTree arena
type Scope struct {
	Kind  ScopeKind
	Block Node // node introducing the scope
	index int
	upper int
	tree  *ScopeTree
}

// Upper returns the enclosing scope, nil for the root
func (s *Scope) Upper() *Scope {
	if s == nil || s.upper == noUpper {
		return nil
	}
	return s.tree.scopes[s.upper]
}

// IsFunction reports whether s is a function-level scope; top-level scopes qualify
func (s *Scope) IsFunction() bool {
	switch s.Kind {
	case ScopeFunction, ScopeModule, ScopeGlobal:
		return true
	}
	return false
}

// ScopeTree is an append-only arena of scopes linked by parent indices
type ScopeTree struct {
	scopes []*Scope
	byNode map[Node]int
}

// NewScopeTree creates an empty tree
func NewScopeTree() *ScopeTree {
	return &ScopeTree{byNode: map[Node]int{}}
}

// Add appends a scope introduced by block; a nil upper makes it a root
func (t *ScopeTree) Add(kind ScopeKind, block Node, upper *Scope) *Scope {
	scope := &Scope{Kind: kind, Block: block, index: len(t.scopes), upper: noUpper, tree: t}
	if upper != nil {
		scope.upper = upper.index
	}
	t.scopes = append(t.scopes, scope)
	if block != nil {
		t.byNode[block] = scope.index
	}
	return scope
}

// Len returns the number of scopes
func (t *ScopeTree) Len() int {
	return len(t.scopes)
}

// Root returns the first scope added, nil for an empty tree
func (t *ScopeTree) Root() *Scope {
	if len(t.scopes) == 0 {
		return nil
	}
	return t.scopes[0]
}

// Introduced returns the scope whose block is exactly n
func (t *ScopeTree) Introduced(n Node) *Scope {
	if index, ok := t.byNode[n]; ok {
		return t.scopes[index]
	}
	return nil
}

// ScopeOf returns the innermost scope containing n, the scope n introduces included.
// It returns nil when n is detached from every scope block.
func (t *ScopeTree) ScopeOf(n Node) *Scope {
	for current := n; current != nil; current = current.Parent() {
		if scope := t.Introduced(current); scope != nil {
			return scope
		}
	}
	return nil
}
