// Package extract finds the literal string arguments passed to a designated
// translation function in JavaScript and TypeScript sources.
package extract

import (
	"context"

	"github.com/LegacyCodeHQ/i18nscan/depgraph/javascript"
	sitter "github.com/smacker/go-tree-sitter"
)

// Extract parses sourceCode and returns the first-argument string literals of
// every call to extractorName, by identifier (t("…")) or by property access
// (i18n.t("…")), in source pre-order. It returns false when the file cannot
// be parsed; calls whose first argument is not a plain string literal are skipped.
func Extract(extractorName string, sourceCode []byte, filename string) ([]string, bool) {
	return ExtractContext(context.Background(), extractorName, sourceCode, filename)
}

// ExtractContext is Extract with a context bounding the parse.
func ExtractContext(ctx context.Context, extractorName string, sourceCode []byte, filename string) ([]string, bool) {
	tree, ok := parse(ctx, sourceCode, filename)
	if !ok {
		return nil, false
	}
	defer tree.Close()

	found := []string{}
	walk(tree.RootNode(), func(node *sitter.Node) {
		if value, ok := matchCall(node, extractorName, sourceCode); ok {
			found = append(found, value)
		}
	})
	return found, true
}

// parse tries the grammars suitable for filename in order and returns the
// first error-free tree. Plain JavaScript files fall back to TSX so that
// type annotations in .js sources still parse.
func parse(ctx context.Context, sourceCode []byte, filename string) (*sitter.Tree, bool) {
	for _, dialect := range dialectsFor(filename) {
		parser := sitter.NewParser()
		parser.SetLanguage(dialect.Language())
		tree, err := parser.ParseCtx(ctx, nil, sourceCode)
		parser.Close()
		if err != nil {
			continue
		}
		if tree.RootNode().HasError() {
			tree.Close()
			continue
		}
		return tree, true
	}
	return nil, false
}

func dialectsFor(filename string) []javascript.Dialect {
	dialect := javascript.DialectForPath(filename)
	if dialect == javascript.DialectJavaScript {
		return []javascript.Dialect{javascript.DialectJavaScript, javascript.DialectTSX}
	}
	return []javascript.Dialect{dialect}
}

func walk(node *sitter.Node, visit func(*sitter.Node)) {
	if node == nil {
		return
	}
	visit(node)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(node.NamedChild(i), visit)
	}
}

// matchCall returns the literal first argument of node when node is a call to extractorName.
func matchCall(node *sitter.Node, extractorName string, sourceCode []byte) (string, bool) {
	if node.Type() != "call_expression" {
		return "", false
	}

	arg := firstArgument(node.ChildByFieldName("arguments"))
	if arg == nil || arg.Type() != "string" {
		return "", false
	}

	callee, ok := calleeOf(node.ChildByFieldName("function"), sourceCode)
	if !ok || !callee.Matches(extractorName) {
		return "", false
	}

	return unquoteStringLiteral(arg.Content(sourceCode)), true
}

func firstArgument(arguments *sitter.Node) *sitter.Node {
	if arguments == nil || arguments.Type() != "arguments" {
		return nil
	}
	for i := 0; i < int(arguments.NamedChildCount()); i++ {
		child := arguments.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		return child
	}
	return nil
}
