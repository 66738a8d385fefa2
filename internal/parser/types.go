package parser

type Location struct {
	File   string
	Line   int
	Column int
}

// Import is one import statement as it appears in the source, before any
// resolution against the importer's own module name.
type Import struct {
	Module     string   // dotted module path; empty for "from . import x"
	Items      []string // imported names for from-imports, nil for plain imports
	IsRelative bool
	Level      int // leading dot count for relative imports
	Location   Location
}

// File is the parse result for a single source file.
type File struct {
	Path    string
	Imports []Import
}
