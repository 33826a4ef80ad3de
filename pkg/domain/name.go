package domain

import (
	"encoding/json"
)

// NameKind discriminates how a suite or test title was written.
type NameKind int

const (
	// NameLiteral is a non-empty string literal title.
	NameLiteral NameKind = iota
	// NameEmpty is a string literal title equal to "".
	NameEmpty
	// NameDynamic is a title that is not a string literal (identifier, call, concatenation).
	NameDynamic
)

// Placeholders used when a title has no literal text to show.
const (
	EmptyNamePlaceholder   = "(empty)"
	DynamicNamePlaceholder = "(dynamic)"
)

// NodeName is the resolved title of a suite or test.
type NodeName struct {
	Kind  NameKind
	Value string
}

// Literal returns a literal name. An empty value yields the Empty sentinel.
func Literal(value string) NodeName {
	if value == "" {
		return EmptyName()
	}
	return NodeName{Kind: NameLiteral, Value: value}
}

// EmptyName returns the sentinel for an empty literal title.
func EmptyName() NodeName {
	return NodeName{Kind: NameEmpty}
}

// DynamicName returns the sentinel for a title computed at runtime.
func DynamicName() NodeName {
	return NodeName{Kind: NameDynamic}
}

func (n NodeName) IsEmpty() bool   { return n.Kind == NameEmpty }
func (n NodeName) IsDynamic() bool { return n.Kind == NameDynamic }

// String returns the display form of the name.
func (n NodeName) String() string {
	switch n.Kind {
	case NameEmpty:
		return EmptyNamePlaceholder
	case NameDynamic:
		return DynamicNamePlaceholder
	default:
		return n.Value
	}
}

// MarshalText renders the display form, so JSON and YAML reports show plain strings.
func (n NodeName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Key returns a serialization that distinguishes sentinels from literal
// titles that happen to match a placeholder. Keys are prefix-free.
func (n NodeName) Key() string {
	b, _ := json.Marshal(struct {
		Kind  NameKind `json:"k"`
		Value string   `json:"v"`
	}{n.Kind, n.Value})
	return string(b)
}
