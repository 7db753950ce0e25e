package load

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

type PackageInfo struct {
	Name  string
	Fset  *token.FileSet
	Files []string
}

// Check loads and type-checks the package in dir, including its tests. The
// directory must belong to a module.
func Check(dir string) (*PackageInfo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package path %s: %w", dir, err)
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedModule | packages.NeedDeps,
		Dir:   abs,
		Tests: true,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %s: %w", abs, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found in %s", abs)
	}

	var b strings.Builder
	seen := make(map[string]bool)
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, pkgErr := range pkg.Errors {
			msg := pkgErr.Error()
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(msg)
		}
	})
	if b.Len() > 0 {
		return nil, fmt.Errorf("failed to type-check package in %s: %s", abs, b.String())
	}

	// With Tests set, the test variant lists every file of the package.
	pkg := pkgs[0]
	for _, p := range pkgs {
		if len(p.GoFiles) > len(pkg.GoFiles) {
			pkg = p
		}
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("failed to obtain type information for package in %s", abs)
	}

	return &PackageInfo{
		Name:  pkg.Name,
		Fset:  pkg.Fset,
		Files: pkg.GoFiles,
	}, nil
}
