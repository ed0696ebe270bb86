// Package tree implements the immutable ordered labeled tree used as the
// common representation for method bodies across languages.
package tree

import "sync/atomic"

var nextID int64

// NextID returns the next globally unique node identifier. IDs are assigned
// at construction time and are only required to be unique within a process
// run; they are used as memoization keys by the apted package.
func NextID() int64 {
	return atomic.AddInt64(&nextID, 1)
}

// Node is an immutable tree node. Kind classifies the syntactic role of the
// node (see the kind package for the taxonomy), Value carries the literal
// text for identifier, literal and predefined-type-token nodes and is empty
// otherwise, and Children holds the ordered list of child nodes.
type Node struct {
	ID       int64
	Kind     string
	Value    string
	Children []*Node

	size int
}

// New constructs a node and assigns it a fresh ID. Subtree size is computed
// eagerly so later access is O(1); this mirrors the cached-size invariant
// required by the tree model.
func New(kind, value string, children ...*Node) *Node {
	n := &Node{
		ID:       NextID(),
		Kind:     kind,
		Value:    value,
		Children: children,
	}
	n.size = 1
	for _, c := range children {
		n.size += c.Size()
	}
	return n
}

// Size returns 1 + the sum of the sizes of all children.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	return n.size
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// blockElidableParents lists the parent kinds under which a single-statement
// block child is unwrapped in place of the block node itself.
var blockElidableParents = map[string]bool{
	"if": true, "else": true, "while": true, "for": true, "foreach": true, "do": true,
}

// Normalize applies the one structural normalization the tree model
// requires: a "block" node with exactly one statement child, nested
// directly under an if/else/while/for/foreach/do node, is replaced by that
// single child. This removes the spurious structural difference between
// `if (x) s;` and `if (x) { s; }`.
func Normalize(root *Node) *Node {
	if root == nil {
		return nil
	}
	children := make([]*Node, len(root.Children))
	for i, c := range root.Children {
		children[i] = Normalize(c)
	}
	if blockElidableParents[root.Kind] {
		for i, c := range children {
			if c.Kind == "block" && len(c.Children) == 1 {
				children[i] = c.Children[0]
			}
		}
	}
	return rebuild(root, children)
}

func rebuild(orig *Node, children []*Node) *Node {
	same := len(children) == len(orig.Children)
	if same {
		for i := range children {
			if children[i] != orig.Children[i] {
				same = false
				break
			}
		}
	}
	if same {
		return orig
	}
	n := &Node{ID: orig.ID, Kind: orig.Kind, Value: orig.Value, Children: children}
	n.size = 1
	for _, c := range children {
		n.size += c.Size()
	}
	return n
}
