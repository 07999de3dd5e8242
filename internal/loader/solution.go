package loader

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
)

// prepareSolution readies the learner's source for evaluation ahead of a
// script. It must be package main; a main function is renamed so that
// evaluating the file never runs the learner's program.
func prepareSolution(src string) (string, error) {
	src = wrapCode(src)

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "solution.go", src, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("solution: %w", err)
	}
	if f.Name.Name != "main" {
		return "", fmt.Errorf("solution must be package main, found package %s", f.Name.Name)
	}

	renamed := false
	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv == nil && fn.Name.Name == "main" {
			fn.Name.Name = "solutionMain"
			renamed = true
		}
	}
	if !renamed {
		return src, nil
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return "", fmt.Errorf("solution: %w", err)
	}
	return buf.String(), nil
}
