package javascript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Dialect selects the tree-sitter grammar used for a source file.
type Dialect int

const (
	DialectJavaScript Dialect = iota
	DialectTypeScript
	DialectTSX
)

func (d Dialect) String() string {
	switch d {
	case DialectTypeScript:
		return "typescript"
	case DialectTSX:
		return "tsx"
	default:
		return "javascript"
	}
}

// Language returns the tree-sitter grammar for the dialect.
func (d Dialect) Language() *sitter.Language {
	switch d {
	case DialectTypeScript:
		return typescript.GetLanguage()
	case DialectTSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// DialectForPath picks a dialect from the file name. Platform-qualified names
// such as Button.ios.tsx are classified by their last extension.
func DialectForPath(filePath string) Dialect {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	case ".tsx":
		return DialectTSX
	default:
		return DialectJavaScript
	}
}

// Import represents an import specifier found in a JavaScript/TypeScript file.
type Import interface {
	Path() string
	IsTypeOnly() bool
}

// NodeBuiltinImport represents a Node.js built-in module import (fs, path, http, node:fs)
type NodeBuiltinImport struct {
	path       string
	isTypeOnly bool
}

func (n NodeBuiltinImport) Path() string {
	return n.path
}

func (n NodeBuiltinImport) IsTypeOnly() bool {
	return n.isTypeOnly
}

// ExternalImport represents a package import resolved through node_modules
type ExternalImport struct {
	path       string
	isTypeOnly bool
}

func (e ExternalImport) Path() string {
	return e.path
}

func (e ExternalImport) IsTypeOnly() bool {
	return e.isTypeOnly
}

// InternalImport represents a project file import (./, ../ or an absolute path)
type InternalImport struct {
	path       string
	isTypeOnly bool
}

func (i InternalImport) Path() string {
	return i.path
}

func (i InternalImport) IsTypeOnly() bool {
	return i.isTypeOnly
}

// nodeBuiltins contains known Node.js built-in module names
var nodeBuiltins = map[string]bool{
	"assert":         true,
	"buffer":         true,
	"child_process":  true,
	"cluster":        true,
	"crypto":         true,
	"dgram":          true,
	"dns":            true,
	"events":         true,
	"fs":             true,
	"http":           true,
	"https":          true,
	"module":         true,
	"net":            true,
	"os":             true,
	"path":           true,
	"process":        true,
	"querystring":    true,
	"readline":       true,
	"stream":         true,
	"string_decoder": true,
	"timers":         true,
	"tls":            true,
	"tty":            true,
	"url":            true,
	"util":           true,
	"v8":             true,
	"vm":             true,
	"zlib":           true,
	"worker_threads": true,
	"perf_hooks":     true,
	"async_hooks":    true,
	"fs/promises":    true,
	"path/posix":     true,
	"path/win32":     true,
}

// IsCoreModule reports whether the specifier names a Node.js built-in module.
func IsCoreModule(specifier string) bool {
	if strings.HasPrefix(specifier, "node:") {
		return true
	}
	return nodeBuiltins[specifier]
}

// IsRelativeSpecifier reports whether the specifier is resolved against the importing file.
func IsRelativeSpecifier(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// classifyImport classifies an import specifier
func classifyImport(importPath string, isTypeOnly bool) Import {
	if IsCoreModule(importPath) {
		return NodeBuiltinImport{path: importPath, isTypeOnly: isTypeOnly}
	}

	if IsRelativeSpecifier(importPath) || filepath.IsAbs(importPath) {
		return InternalImport{path: importPath, isTypeOnly: isTypeOnly}
	}

	return ExternalImport{path: importPath, isTypeOnly: isTypeOnly}
}

// FileImports parses a file from disk and returns its imports
func FileImports(filePath string) ([]Import, error) {
	sourceCode, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseImports(sourceCode, DialectForPath(filePath))
}

// ParseImports parses source code and extracts import specifiers in source order.
// Syntax errors do not fail the parse; whatever imports tree-sitter recovers are returned.
func ParseImports(sourceCode []byte, dialect Dialect) ([]Import, error) {
	lang := dialect.Language()

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s code: %w", dialect, err)
	}
	defer tree.Close()

	return extractImportsFromTree(tree.RootNode(), sourceCode, lang), nil
}

// Specifiers returns the raw import specifiers, deduplicated, in first-seen order.
// Type-only imports are erased at compile time and are left out.
func Specifiers(imports []Import) []string {
	seen := make(map[string]bool, len(imports))
	specifiers := make([]string, 0, len(imports))
	for _, imp := range imports {
		if imp.IsTypeOnly() || seen[imp.Path()] {
			continue
		}
		seen[imp.Path()] = true
		specifiers = append(specifiers, imp.Path())
	}
	return specifiers
}

type positionedImport struct {
	imp   Import
	start uint32
}

// extractImportsFromTree walks the AST and extracts imports
func extractImportsFromTree(rootNode *sitter.Node, sourceCode []byte, lang *sitter.Language) []Import {
	queries := []string{
		// import ... from 'module'
		`(import_statement
  source: (string) @import.source)`,
		// export ... from 'module'
		`(export_statement
  source: (string) @export.source)`,
		// require('module')
		`(call_expression
  function: (identifier) @require.fn
  arguments: (arguments (string) @require.source)
  (#eq? @require.fn "require"))`,
		// import('module')
		`(call_expression
  function: (import)
  arguments: (arguments (string) @dynamic.source))`,
		// import x = require('module'), TypeScript only
		`(import_require_clause
  source: (string) @importreq.source)`,
	}

	var found []positionedImport
	for _, pattern := range queries {
		results, err := executeQuery(rootNode, sourceCode, lang, pattern)
		if err == nil {
			found = append(found, results...)
		}
	}

	// If queries fail, fall back to manual tree traversal
	if len(found) == 0 {
		found = extractImportsManually(rootNode, sourceCode)
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].start < found[j].start
	})

	imports := make([]Import, 0, len(found))
	for _, f := range found {
		imports = append(imports, f.imp)
	}
	return imports
}

// executeQuery runs a tree-sitter query and extracts imports
func executeQuery(rootNode *sitter.Node, sourceCode []byte, lang *sitter.Language, pattern string) ([]positionedImport, error) {
	query, err := sitter.NewQuery([]byte(pattern), lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	cursor.Exec(query, rootNode)

	var imports []positionedImport

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}

		match = cursor.FilterPredicates(match, sourceCode)

		for _, capture := range match.Captures {
			captureName := query.CaptureNameForId(capture.Index)
			if !strings.HasSuffix(captureName, ".source") {
				continue
			}

			importPath := cleanImportPath(capture.Node.Content(sourceCode))
			if importPath == "" {
				continue
			}

			isTypeOnly := isTypeOnlyImport(capture.Node, sourceCode)
			imports = append(imports, positionedImport{
				imp:   classifyImport(importPath, isTypeOnly),
				start: capture.Node.StartByte(),
			})
		}
	}

	return imports, nil
}

// extractImportsManually walks the AST manually to extract imports
func extractImportsManually(node *sitter.Node, sourceCode []byte) []positionedImport {
	var imports []positionedImport

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		nodeType := n.Type()

		if nodeType == "import_statement" || nodeType == "export_statement" {
			isTypeOnly := false

			// Check for type-only imports (Flow/TS syntax) if present
			for i := 0; i < int(n.ChildCount()); i++ {
				child := n.Child(i)
				if child != nil && child.Type() == "type" {
					isTypeOnly = true
					break
				}
			}

			// Find the source string
			for i := 0; i < int(n.ChildCount()); i++ {
				child := n.Child(i)
				if child != nil && child.Type() == "import_require_clause" {
					child = child.ChildByFieldName("source")
				}
				if child != nil && child.Type() == "string" {
					importPath := cleanImportPath(child.Content(sourceCode))
					if importPath != "" {
						imports = append(imports, positionedImport{
							imp:   classifyImport(importPath, isTypeOnly),
							start: child.StartByte(),
						})
					}
					break
				}
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(node)
	return imports
}

// isTypeOnlyImport checks if an import or re-export is type-only
// (import type ... / export type ... from).
func isTypeOnlyImport(node *sitter.Node, sourceCode []byte) bool {
	parent := node.Parent()
	for parent != nil {
		if parent.Type() == "import_statement" || parent.Type() == "export_statement" {
			for i := 0; i < int(parent.ChildCount()); i++ {
				child := parent.Child(i)
				if child != nil && child.Content(sourceCode) == "type" {
					return true
				}
			}
			return false
		}
		parent = parent.Parent()
	}
	return false
}

// cleanImportPath removes quotes from import path strings
func cleanImportPath(raw string) string {
	cleaned := strings.Trim(raw, "'\"`")
	return strings.TrimSpace(cleaned)
}
