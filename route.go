package oasgen

import (
	"fmt"
	"strings"

	"github.com/goatx/oasgen/internal/strcase"
)

// httpMethods are the path item keys that declare operations.
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// Route is a callable operation derived from a (path, method) pair.
type Route struct {
	OperationID string
	Method      string
	Path        string
	Summary     string
	Description string
	Params      []Param
	// Return is the success body schema, or NoBody.
	Return    *Schema
	Responses []ResponseDoc
}

// Param is a resolved route parameter.
type Param struct {
	Name        string
	In          string
	Description string
	Required    bool
	Schema      *Schema
}

// Ident returns the Go identifier of the parameter in generated signatures.
func (p Param) Ident() string {
	ident := strcase.ToUnexported(p.Name)
	if ident == "ctx" {
		return "ctxParam"
	}
	return ident
}

// ResponseDoc documents one declared response.
type ResponseDoc struct {
	Status      string
	Description string
}

// HasBody reports whether the route returns a JSON body.
func (r *Route) HasBody() bool {
	return !r.Return.IsNoBody()
}

// DocLines assembles the route documentation: summary and description, one
// line per parameter and one line per declared response.
func (r *Route) DocLines() []string {
	var lines []string
	if r.Summary != "" {
		lines = append(lines, r.Summary)
	}
	if r.Description != "" && r.Description != r.Summary {
		lines = append(lines, r.Description)
	}
	for _, p := range r.Params {
		line := fmt.Sprintf("%s of type %s.", p.Name, p.Schema.StrictType)
		if p.Description != "" {
			line += " " + strings.TrimSuffix(p.Description, ".") + "."
		}
		lines = append(lines, line)
	}
	for _, resp := range r.Responses {
		lines = append(lines, fmt.Sprintf("%s (Status Code %s)", resp.Description, resp.Status))
	}
	return lines
}

// IsOperation reports whether a path item key declares an operation.
func IsOperation(key string) bool {
	return httpMethods[strings.ToLower(key)]
}

// SynthesizeRoute derives the route for one operation. item is the enclosing
// path item; parameters declared on it apply to the operation unless the
// operation redeclares them.
func SynthesizeRoute(path, method string, item, op *Node, reg *Registry) (*Route, error) {
	route := &Route{
		Method: strings.ToUpper(method),
		Path:   path,
	}
	fail := func(err error) (*Route, error) {
		return nil, &RouteError{OperationID: route.OperationID, Method: route.Method, Path: path, Err: err}
	}

	if !op.IsMap() {
		return fail(newResolutionError(op, ErrMalformedNode, "operation must be an object"))
	}
	route.OperationID = op.Get("operationId").String()
	if route.OperationID == "" {
		return fail(newResolutionError(op, ErrMalformedNode, "operation must declare operationId"))
	}
	route.Summary = op.Get("summary").String()
	route.Description = op.Get("description").String()

	params, err := resolveParams(item, op, reg)
	if err != nil {
		return fail(err)
	}
	route.Params = params

	responses := op.Get("responses")
	if !responses.IsMap() {
		return fail(newResolutionError(op, ErrMalformedNode, "operation must declare responses"))
	}
	ret, err := resolveReturn(responses, reg, strcase.ToExported(route.OperationID)+"Response")
	if err != nil {
		return fail(err)
	}
	route.Return = ret

	for _, pair := range responses.Pairs() {
		route.Responses = append(route.Responses, ResponseDoc{
			Status:      pair.Key,
			Description: pair.Value.Get("description").String(),
		})
	}

	return route, nil
}

func resolveParams(item, op *Node, reg *Registry) ([]Param, error) {
	declared := append(item.Get("parameters").Items(), op.Get("parameters").Items()...)

	params := make([]Param, 0, len(declared))
	index := make(map[string]int, len(declared))
	idents := make(map[string]string, len(declared))
	for _, node := range declared {
		param, err := resolveParam(node, reg)
		if err != nil {
			return nil, err
		}
		key := param.In + ":" + param.Name
		if i, ok := index[key]; ok {
			params[i] = param
			continue
		}
		if other, ok := idents[param.Ident()]; ok {
			return nil, newResolutionError(node, ErrMalformedNode, "parameter %q clashes with parameter %q", param.Name, other)
		}
		idents[param.Ident()] = param.Name
		index[key] = len(params)
		params = append(params, param)
	}
	return params, nil
}

func resolveParam(node *Node, reg *Registry) (Param, error) {
	name := node.Get("name").String()
	if name == "" {
		return Param{}, newResolutionError(node, ErrMalformedNode, "parameter must declare a name")
	}
	schemaNode := node.Get("schema")
	if schemaNode == nil {
		return Param{}, newResolutionError(node, ErrMalformedNode, "parameter %q must declare a schema", name)
	}

	schema, err := Resolve(schemaNode, reg, strcase.Capitalize(name))
	if err != nil {
		return Param{}, &ChildError{Path: node.Path(), Err: err}
	}
	if !schema.IsRef() && !schema.IsPrimitive() {
		return Param{}, newResolutionError(schemaNode, ErrMalformedNode, "parameter %q must be a primitive or a reference", name)
	}

	in := node.Get("in").String()
	if in == "" {
		in = "query"
	}

	return Param{
		Name:        name,
		In:          in,
		Description: node.Get("description").String(),
		Required:    in == "path" || node.Get("required").String() == "true",
		Schema:      schema,
	}, nil
}

// resolveReturn resolves the JSON body of the 200 response, or returns NoBody
// when there is no such response or it has no JSON body.
func resolveReturn(responses *Node, reg *Registry, candidateName string) (*Schema, error) {
	ok := responses.Get("200")
	if ok == nil {
		return NoBody, nil
	}
	schemaNode := ok.Lookup("content", "application/json", "schema")
	if schemaNode == nil {
		return NoBody, nil
	}
	schema, err := Resolve(schemaNode, reg, candidateName)
	if err != nil {
		return nil, &ChildError{Path: ok.Path(), Err: err}
	}
	return schema, nil
}
