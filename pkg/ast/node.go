// Package ast describes the syntax-node capability the linter works against.
//
// A Node is an opaque element of an already-parsed source file. The linter
// only needs three things from it: property lookup by dotted path, a place
// to record which rules already looked at it (Marks), and a depth-first
// traversal over every descendant (Walk).
package ast

import "strings"

// MaxTreeDepth is the maximum recursion depth when walking a tree.
const MaxTreeDepth = 1000

// Node is a syntax node.
type Node interface {
	// Kind is the grammar type of the node, e.g. "call_expression".
	Kind() string
	// Field returns the child stored under the given field name, or nil.
	Field(name string) Node
	// Children returns the named children in source order.
	Children() []Node
	// Text returns the source text spanned by the node.
	Text() string
	// ID identifies the node stably for the lifetime of its tree.
	ID() ID
}

// ID identifies a node by its byte span and kind.
type ID struct {
	Start uint32
	End   uint32
	Kind  string
}

// Get follows a dotted field path ("function.object") from node.
// It returns nil as soon as a segment is absent.
func Get(node Node, path string) Node {
	for _, segment := range strings.Split(path, ".") {
		if node == nil {
			return nil
		}
		node = node.Field(segment)
	}
	return node
}

// TextAt returns the text of the node at path, or "" when absent.
func TextAt(node Node, path string) string {
	n := Get(node, path)
	if n == nil {
		return ""
	}
	return n.Text()
}

// KindAt returns the kind of the node at path, or "" when absent.
func KindAt(node Node, path string) string {
	n := Get(node, path)
	if n == nil {
		return ""
	}
	return n.Kind()
}

// Args returns the argument nodes of a call expression, skipping comments.
func Args(call Node) []Node {
	args := call.Field("arguments")
	if args == nil {
		return nil
	}
	var out []Node
	for _, child := range args.Children() {
		if child.Kind() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// Arg returns the i-th argument of a call expression, or nil.
func Arg(call Node, i int) Node {
	args := Args(call)
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i]
}
