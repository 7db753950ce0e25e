package gocode

import (
	"fmt"
	"strings"

	"github.com/goatx/oasgen"
	"github.com/goatx/oasgen/internal/strcase"
)

// EmitRoutes renders the Routes interface, the route table and the
// declarations of inline response types.
func (r *Renderer) EmitRoutes(surface *oasgen.RouteSurface) (oasgen.File, error) {
	withTime := false
	for _, route := range surface.Routes {
		for _, p := range route.Params {
			withTime = withTime || usesTime(p.Schema)
		}
		if route.HasBody() {
			withTime = withTime || usesTime(route.Return)
		}
	}
	for _, decl := range surface.Types {
		withTime = withTime || needsTime(decl)
	}

	var buf strings.Builder
	r.writeHeader(&buf, withTime, "context")

	buf.WriteString("// Routes is implemented by servers of the API.\n")
	buf.WriteString("type Routes interface {\n")
	for i, route := range surface.Routes {
		if i > 0 {
			buf.WriteString("\n")
		}
		writeMethod(&buf, route)
	}
	buf.WriteString("}\n\n")

	buf.WriteString("// RouteInfo is the routing metadata of one operation.\n")
	buf.WriteString("type RouteInfo struct {\n")
	buf.WriteString("\tName   string\n")
	buf.WriteString("\tMethod string\n")
	buf.WriteString("\tPath   string\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// RouteTable lists the operations in declaration order.\n")
	buf.WriteString("var RouteTable = []RouteInfo{\n")
	for _, route := range surface.Routes {
		fmt.Fprintf(&buf, "\t{Name: %q, Method: %q, Path: %q},\n", strcase.ToExported(route.OperationID), route.Method, route.Path)
	}
	buf.WriteString("}\n\n")

	for _, decl := range surface.Types {
		writeDecl(&buf, decl.Name, decl, decl.Name+" is the response body of an inline schema.")
	}

	src, err := format(RoutesFile, buf.String())
	return oasgen.File{Name: RoutesFile, Content: src}, err
}

func writeMethod(buf *strings.Builder, route *oasgen.Route) {
	name := strcase.ToExported(route.OperationID)
	fmt.Fprintf(buf, "\t// %s handles %s %s.\n", name, route.Method, route.Path)
	if lines := route.DocLines(); len(lines) > 0 {
		buf.WriteString("\t//\n")
		for _, line := range lines {
			fmt.Fprintf(buf, "\t// %s\n", line)
		}
	}

	params := []string{"ctx context.Context"}
	for _, p := range route.Params {
		params = append(params, p.Ident()+" "+typeExpr(p.Schema, ""))
	}

	if route.HasBody() {
		fmt.Fprintf(buf, "\t%s(%s) (%s, error)\n", name, strings.Join(params, ", "), typeExpr(route.Return, ""))
		return
	}
	fmt.Fprintf(buf, "\t%s(%s) error\n", name, strings.Join(params, ", "))
}
