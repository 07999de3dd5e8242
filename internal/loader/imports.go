package loader

import (
	"fmt"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"strings"
)

// validateImports checks that code only imports allowed packages.
func validateImports(code string, allowed map[string]bool) error {
	f, err := parser.ParseFile(token.NewFileSet(), "script.go", code, parser.ImportsOnly)
	if err != nil {
		return fmt.Errorf("parse imports: %w", err)
	}

	var forbidden []string
	for _, spec := range f.Imports {
		pkg, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return fmt.Errorf("bad import path %s", spec.Path.Value)
		}
		if pkg == exercisePath || allowed[pkg] {
			continue
		}
		forbidden = append(forbidden, pkg)
	}
	if len(forbidden) > 0 {
		return fmt.Errorf("forbidden imports: %s", strings.Join(forbidden, ", "))
	}
	return nil
}

// wrapCode adds a main package clause when the source has none.
func wrapCode(code string) string {
	f, err := parser.ParseFile(token.NewFileSet(), "", code, parser.PackageClauseOnly)
	if err == nil && f.Name != nil {
		return code
	}
	return "package main\n\n" + code
}

func allowSet(pkgs []string) map[string]bool {
	set := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		set[p] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
