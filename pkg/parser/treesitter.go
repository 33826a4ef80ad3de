package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/speclint/pkg/ast"
	"github.com/specvital/speclint/pkg/domain"
	"github.com/specvital/speclint/pkg/parser/tspool"
)

// File is a parsed source file. Callers must Close it to free the tree.
type File struct {
	Path     string
	Language domain.Language

	tree   *sitter.Tree
	source []byte
}

// Parse parses a JavaScript or TypeScript source file.
// The language is chosen from the file extension.
func Parse(ctx context.Context, filename string, source []byte) (*File, error) {
	lang := DetectLanguage(filename)

	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return &File{
		Path:     filename,
		Language: lang,
		tree:     tree,
		source:   source,
	}, nil
}

// Root returns the top-level statement sequence of the file.
func (f *File) Root() ast.Node {
	return wrap(f.tree.RootNode(), f.source)
}

// Close releases the underlying tree-sitter tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// DetectLanguage determines the programming language based on file extension.
func DetectLanguage(filename string) domain.Language {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return domain.LanguageJavaScript
	case ".tsx":
		return domain.LanguageTSX
	default:
		return domain.LanguageTypeScript
	}
}

// IsSupported reports whether the file extension belongs to the JavaScript family.
func IsSupported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts":
		return true
	default:
		return false
	}
}

// tsNode adapts a tree-sitter node to ast.Node.
type tsNode struct {
	node   *sitter.Node
	source []byte
}

func wrap(node *sitter.Node, source []byte) ast.Node {
	if node == nil || node.IsNull() {
		return nil
	}
	return &tsNode{node: node, source: source}
}

func (n *tsNode) Kind() string {
	return n.node.Type()
}

func (n *tsNode) Field(name string) ast.Node {
	return wrap(n.node.ChildByFieldName(name), n.source)
}

func (n *tsNode) Children() []ast.Node {
	count := int(n.node.NamedChildCount())
	children := make([]ast.Node, 0, count)
	for i := 0; i < count; i++ {
		if child := wrap(n.node.NamedChild(i), n.source); child != nil {
			children = append(children, child)
		}
	}
	return children
}

func (n *tsNode) Text() string {
	return GetNodeText(n.node, n.source)
}

func (n *tsNode) ID() ast.ID {
	return ast.ID{
		Start: n.node.StartByte(),
		End:   n.node.EndByte(),
		Kind:  n.node.Type(),
	}
}

// GetNodeText returns the source text for the given AST node.
// Returns empty string if the node's byte range exceeds the source length.
func GetNodeText(node *sitter.Node, source []byte) (result string) {
	start := node.StartByte()
	end := node.EndByte()
	sourceLen := uint32(len(source))

	// Validate bounds before calling tree-sitter C code
	if start > sourceLen || end > sourceLen {
		return ""
	}

	// tree-sitter's C side can read past the slice capacity when a parser
	// was reused across goroutines; recover and report no text.
	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	return node.Content(source)
}
