// Package gocode renders oasgen declarations as Go source.
package gocode

import (
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/goatx/oasgen"
	"github.com/goatx/oasgen/internal/strcase"
)

const (
	// RoutesFile holds the route surface.
	RoutesFile = "routes.go"
	// TestsFile holds the smoke tests.
	TestsFile = "routes_test.go"
)

// Renderer renders declarations into files of a single Go package.
type Renderer struct {
	Package string
}

var _ oasgen.Emitter = (*Renderer)(nil)

// NewRenderer returns a renderer for package pkg, "api" when empty.
func NewRenderer(pkg string) *Renderer {
	if pkg == "" {
		pkg = "api"
	}
	return &Renderer{Package: pkg}
}

// ComponentFile returns the file name of a component declaration.
func ComponentFile(name string) string {
	return strcase.ToSnakeCase(name) + ".go"
}

// EmitComponent renders a component and its nested declarations.
func (r *Renderer) EmitComponent(decl *oasgen.TypeDecl) (oasgen.File, error) {
	var buf strings.Builder
	r.writeHeader(&buf, needsTime(decl))
	writeDecl(&buf, decl.Name, decl, fmt.Sprintf("%s is declared by components.schemas.%s.", decl.Name, decl.Name))

	name := ComponentFile(decl.Name)
	src, err := format(name, buf.String())
	return oasgen.File{Name: name, Content: src}, err
}

func (r *Renderer) writeHeader(buf *strings.Builder, withTime bool, extra ...string) {
	buf.WriteString(oasgen.GeneratedHeader + "\n\n")
	fmt.Fprintf(buf, "package %s\n\n", r.Package)

	var paths []string
	paths = append(paths, extra...)
	if withTime {
		paths = append(paths, "time")
	}
	switch len(paths) {
	case 0:
		return
	case 1:
		fmt.Fprintf(buf, "import %q\n\n", paths[0])
		return
	}
	buf.WriteString("import (\n")
	for _, p := range paths {
		fmt.Fprintf(buf, "\t%q\n", p)
	}
	buf.WriteString(")\n\n")
}

// writeDecl writes decl under goName, followed by its nested declarations
// flattened to top-level types.
func writeDecl(buf *strings.Builder, goName string, decl *oasgen.TypeDecl, doc string) {
	nested := make(map[string]string, len(decl.Nested))
	for _, n := range decl.Nested {
		nested[n.Name] = oasgen.NestedName(goName, n.Name)
	}

	if doc != "" {
		fmt.Fprintf(buf, "// %s\n", doc)
	}

	if decl.Alias != nil {
		if decl.Doc != "" {
			fmt.Fprintf(buf, "// %s\n", decl.Doc)
		}
		var inline string
		if len(decl.Nested) > 0 {
			inline = nested[decl.Nested[0].Name]
		}
		if decl.Alias.IsRef() {
			fmt.Fprintf(buf, "type %s = %s\n\n", goName, typeExpr(decl.Alias, inline))
		} else {
			fmt.Fprintf(buf, "type %s %s\n\n", goName, typeExpr(decl.Alias, inline))
		}
	} else {
		fmt.Fprintf(buf, "type %s struct {\n", goName)
		for _, f := range decl.Fields {
			if f.Doc != "" {
				fmt.Fprintf(buf, "\t// %s\n", f.Doc)
			}
			fmt.Fprintf(buf, "\t%s %s `json:\"%s\"`\n", strcase.ToExported(f.Name), typeExpr(f.Schema, nested[f.Nested]), f.Name)
		}
		buf.WriteString("}\n\n")
	}

	for _, n := range decl.Nested {
		writeDecl(buf, nested[n.Name], n, "")
	}
}

// typeExpr renders s as a Go type. inline names the declaration of an inline
// object; when empty, the object's own name is used.
func typeExpr(s *oasgen.Schema, inline string) string {
	switch {
	case s.IsRef():
		return s.Ref
	case s.IsArray():
		return "[]" + typeExpr(s.ArrayOf, inline)
	case s.IsObject():
		if inline != "" {
			return inline
		}
		return s.Type
	default:
		return s.Type
	}
}

func needsTime(decl *oasgen.TypeDecl) bool {
	if decl.Alias != nil && usesTime(decl.Alias) {
		return true
	}
	for _, f := range decl.Fields {
		if usesTime(f.Schema) {
			return true
		}
	}
	for _, n := range decl.Nested {
		if needsTime(n) {
			return true
		}
	}
	return false
}

func usesTime(s *oasgen.Schema) bool {
	switch {
	case s.IsRef(), s.IsObject():
		return false
	case s.IsArray():
		return usesTime(s.ArrayOf)
	default:
		return strings.HasPrefix(s.Type, "time.")
	}
}

// format formats src and prunes unused imports. On failure the unformatted
// source is returned with the error.
func format(filename, src string) ([]byte, error) {
	out, err := imports.Process(filename, []byte(src), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return []byte(src), fmt.Errorf("failed to format %s: %w", filename, err)
	}
	return out, nil
}
