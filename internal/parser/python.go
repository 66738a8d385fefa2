package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{Path: filePath}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"import_statement":      e.extractImport,
		"import_from_statement": e.extractFromImport,
	})
	engine.Walk(ctx, root)

	return file, nil
}

func (e *PythonExtractor) extractImport(ctx *ExtractionContext, node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "dotted_name", "identifier":
			ctx.File.Imports = append(ctx.File.Imports, Import{
				Module:   ctx.Text(child),
				Location: ctx.Location(child),
			})
		case "aliased_import":
			// "import x.y as z" depends on x.y regardless of the alias.
			if name := child.ChildByFieldName("name"); name != nil {
				ctx.File.Imports = append(ctx.File.Imports, Import{
					Module:   ctx.Text(name),
					Location: ctx.Location(child),
				})
			}
		}
	}
	return true
}

func (e *PythonExtractor) extractFromImport(ctx *ExtractionContext, node *sitter.Node) bool {
	imp := Import{Location: ctx.Location(node)}

	if mod := node.ChildByFieldName("module_name"); mod != nil {
		if mod.Kind() == "relative_import" {
			imp.IsRelative = true
			text := ctx.Text(mod)
			imp.Level = len(text) - len(strings.TrimLeft(text, "."))
			imp.Module = strings.TrimLeft(text, ".")
		} else {
			imp.Module = ctx.Text(mod)
		}
	}

	// Imported names sit after the "import" keyword. The grammar emits them
	// as dotted_name/identifier/aliased_import siblings (parenthesized lists
	// included), or a wildcard_import for "import *".
	afterImport := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "import" {
			afterImport = true
			continue
		}
		if !afterImport {
			continue
		}
		switch child.Kind() {
		case "dotted_name", "identifier":
			imp.Items = append(imp.Items, ctx.Text(child))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				imp.Items = append(imp.Items, ctx.Text(name))
			}
		}
	}

	ctx.File.Imports = append(ctx.File.Imports, imp)
	return true
}
