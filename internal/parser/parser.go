package parser

import (
	"impacted/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type Parser struct {
	loader    *GrammarLoader
	extractor *PythonExtractor
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{
		loader:    loader,
		extractor: &PythonExtractor{},
	}
}

// ParseFile parses Python source and returns its raw import statements.
// tree-sitter is error tolerant: files with syntax errors still produce a
// tree, and whatever import nodes survive are extracted. Nothing in the
// source is ever executed.
func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	grammar := p.loader.Language("python")
	if grammar == nil {
		return nil, errors.New(errors.CodeInternal, "python grammar not loaded")
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New(errors.CodeInternal, "parse failed")
	}
	defer tree.Close()

	res, err := p.extractor.Extract(tree.RootNode(), content, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "extraction failed")
	}
	return res, nil
}
