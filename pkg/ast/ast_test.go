package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	kind     string
	text     string
	start    uint32
	fields   map[string]*fakeNode
	children []*fakeNode
}

func (n *fakeNode) Kind() string { return n.kind }
func (n *fakeNode) Text() string { return n.text }

func (n *fakeNode) ID() ID {
	return ID{Start: n.start, End: n.start + uint32(len(n.text)), Kind: n.kind}
}

func (n *fakeNode) Field(name string) Node {
	if f, ok := n.fields[name]; ok {
		return f
	}
	return nil
}

func (n *fakeNode) Children() []Node {
	out := make([]Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	return out
}

// describeCall builds `describe.skip('x', /* c */ fn)`.
func describeCall() *fakeNode {
	object := &fakeNode{kind: "identifier", text: "describe", start: 0}
	property := &fakeNode{kind: "property_identifier", text: "skip", start: 9}
	member := &fakeNode{
		kind: "member_expression", text: "describe.skip", start: 0,
		fields:   map[string]*fakeNode{"object": object, "property": property},
		children: []*fakeNode{object, property},
	}
	title := &fakeNode{kind: "string", text: "'x'", start: 14}
	comment := &fakeNode{kind: "comment", text: "/* c */", start: 19}
	fn := &fakeNode{kind: "function_expression", text: "fn", start: 27}
	args := &fakeNode{
		kind: "arguments", text: "('x', /* c */ fn)", start: 13,
		children: []*fakeNode{title, comment, fn},
	}
	return &fakeNode{
		kind: "call_expression", text: "describe.skip('x', /* c */ fn)", start: 0,
		fields:   map[string]*fakeNode{"function": member, "arguments": args},
		children: []*fakeNode{member, args},
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	call := describeCall()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "should follow single segment", path: "function", want: "describe.skip"},
		{name: "should follow nested segments", path: "function.object", want: "describe"},
		{name: "should return empty for missing leaf", path: "function.callee", want: ""},
		{name: "should return empty for missing middle", path: "callee.object.name", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TextAt(call, tt.path))
		})
	}

	assert.Nil(t, Get(call, "callee.object"))
	assert.Equal(t, "member_expression", KindAt(call, "function"))
}

func TestArgs(t *testing.T) {
	t.Parallel()

	call := describeCall()

	args := Args(call)
	require.Len(t, args, 2)
	assert.Equal(t, "string", args[0].Kind())
	assert.Equal(t, "function_expression", args[1].Kind())
	assert.Equal(t, "fn", Arg(call, 1).Text())
	assert.Nil(t, Arg(call, 2))
	assert.Nil(t, Args(&fakeNode{kind: "identifier"}))
}

func TestWalk(t *testing.T) {
	t.Parallel()

	t.Run("should visit pre-order in source order", func(t *testing.T) {
		t.Parallel()

		var kinds []string
		Inspect(describeCall(), func(n Node) {
			kinds = append(kinds, n.Kind())
		})

		assert.Equal(t, []string{
			"call_expression",
			"member_expression", "identifier", "property_identifier",
			"arguments", "string", "comment", "function_expression",
		}, kinds)
	})

	t.Run("should prune when visitor returns false", func(t *testing.T) {
		t.Parallel()

		count := 0
		Walk(describeCall(), func(n Node) bool {
			count++
			return n.Kind() != "member_expression"
		})

		// call, member, arguments, string, comment, function
		assert.Equal(t, 6, count)
	})

	t.Run("should tolerate nil", func(t *testing.T) {
		t.Parallel()
		Walk(nil, func(Node) bool {
			t.Fatal("visitor called for nil node")
			return true
		})
	})
}

func TestMarks(t *testing.T) {
	t.Parallel()

	call := describeCall()
	marks := NewMarks()

	assert.False(t, marks.Has(call, "a"))
	assert.True(t, marks.HasAll(call, nil))

	marks.Set(call, "a")
	assert.True(t, marks.Has(call, "a"))
	assert.False(t, marks.HasAll(call, []string{"a", "b"}))

	marks.Set(call, "b")
	assert.True(t, marks.HasAll(call, []string{"a", "b"}))
	assert.Equal(t, 1, marks.Len())

	other := &fakeNode{kind: "call_expression", text: describeCall().text, start: 100}
	assert.False(t, marks.Has(other, "a"), "marks must be keyed by node identity")
}
