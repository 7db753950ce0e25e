package oasgen

import (
	"net/url"
	"strings"

	"github.com/goatx/oasgen/internal/strcase"
)

// TestDecl is a smoke test for one route.
type TestDecl struct {
	Name   string
	Route  *Route
	Method string
	// Target is the full request URL: base URL, substituted path and query.
	Target  string
	Samples []SampleValue
	// DecodeInto is the type the response body is decoded into, or nil when
	// the test only checks for status 200.
	DecodeInto *Schema
}

// TestSuite collects the smoke tests of a document.
type TestSuite struct {
	BaseURL string
	Tests   []*TestDecl
}

// SynthesizeTest builds the smoke test for route. Parameters that appear as
// {name} in the path template are substituted there; the rest form the query
// string.
func SynthesizeTest(route *Route, baseURL string, sampler *Sampler) *TestDecl {
	decl := &TestDecl{
		Name:    "Test" + strcase.ToExported(route.OperationID),
		Route:   route,
		Method:  route.Method,
		Samples: make([]SampleValue, 0, len(route.Params)),
	}

	path := route.Path
	var query []string
	for _, p := range route.Params {
		v := sampler.Sample(p.Name, p.Schema)
		decl.Samples = append(decl.Samples, v)

		placeholder := "{" + p.Name + "}"
		if strings.Contains(path, placeholder) {
			path = strings.ReplaceAll(path, placeholder, url.PathEscape(v.Value))
			continue
		}
		query = append(query, v.Query())
	}

	decl.Target = strings.TrimSuffix(baseURL, "/") + path
	if len(query) > 0 {
		decl.Target += "?" + strings.Join(query, "&")
	}

	if route.HasBody() {
		decl.DecodeInto = route.Return
	}
	return decl
}
