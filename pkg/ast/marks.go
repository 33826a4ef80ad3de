package ast

// Marks records boolean annotations on nodes without touching the tree.
// A Marks value lives for one build pass over one file and is not safe for
// concurrent use.
type Marks struct {
	flags map[ID]map[string]bool
}

// NewMarks returns an empty annotation table.
func NewMarks() *Marks {
	return &Marks{flags: make(map[ID]map[string]bool)}
}

// Set marks node with key.
func (m *Marks) Set(node Node, key string) {
	id := node.ID()
	keys, ok := m.flags[id]
	if !ok {
		keys = make(map[string]bool)
		m.flags[id] = keys
	}
	keys[key] = true
}

// Has reports whether node was marked with key.
func (m *Marks) Has(node Node, key string) bool {
	return m.flags[node.ID()][key]
}

// HasAll reports whether node was marked with every key.
func (m *Marks) HasAll(node Node, keys []string) bool {
	set := m.flags[node.ID()]
	for _, key := range keys {
		if !set[key] {
			return false
		}
	}
	return true
}

// Len returns the number of annotated nodes.
func (m *Marks) Len() int {
	return len(m.flags)
}
