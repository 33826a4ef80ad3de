package ast

// Walk visits node and every descendant depth-first in source order.
// The visitor returns false to stop descending into the current node.
func Walk(node Node, visitor func(Node) bool) {
	walkWithDepth(node, visitor, 0)
}

func walkWithDepth(node Node, visitor func(Node) bool, depth int) {
	if node == nil || depth > MaxTreeDepth {
		return
	}

	if !visitor(node) {
		return
	}

	for _, child := range node.Children() {
		walkWithDepth(child, visitor, depth+1)
	}
}

// Inspect visits every node like Walk and never prunes.
func Inspect(node Node, visitor func(Node)) {
	Walk(node, func(n Node) bool {
		visitor(n)
		return true
	})
}
