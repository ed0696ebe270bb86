// Package parser parses Python source into the AST that internal/extract
// walks to find method and function definitions, using tree-sitter.
//
// It is the substrate internal/extract.PythonExtractor builds on: Parse
// returns a ParseResult, and ASTBuilder turns its tree-sitter tree into the
// *Node AST that the extractor walks directly (by type switch, not by a
// generic visitor) to slice out each def's line range and convert its body
// into the comparison tree the detector runs edit distance over.
//
// Basic usage:
//
//	p := parser.New()
//	result, err := p.Parse(ctx, []byte("def hello(): pass"))
//	if err != nil {
//	    // Handle parsing error
//	}
//	// Use result.RootNode to find def/class nodes
package parser
