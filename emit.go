package oasgen

import "fmt"

// GeneratedHeader opens every generated file. Files carrying it are owned by
// the generator and may be replaced or removed.
const GeneratedHeader = "// Code generated by oasgen. DO NOT EDIT."

// File is one rendered artifact.
type File struct {
	Name    string
	Content []byte
}

// Emitter renders declarations into concrete source files.
type Emitter interface {
	EmitComponent(decl *TypeDecl) (File, error)
	EmitRoutes(surface *RouteSurface) (File, error)
	EmitTests(suite *TestSuite) (File, error)
}

// Emit renders every bundle of the result. The route and test files are
// skipped when the document has no routes.
func (r *Result) Emit(e Emitter) ([]File, error) {
	files := make([]File, 0, len(r.Components)+2)
	for _, decl := range r.Components {
		f, err := e.EmitComponent(decl)
		if err != nil {
			return nil, fmt.Errorf("failed to emit component %s: %w", decl.Name, err)
		}
		files = append(files, f)
	}

	if r.Routes == nil || len(r.Routes.Routes) == 0 {
		return files, nil
	}

	f, err := e.EmitRoutes(r.Routes)
	if err != nil {
		return nil, fmt.Errorf("failed to emit routes: %w", err)
	}
	files = append(files, f)

	f, err = e.EmitTests(r.Tests)
	if err != nil {
		return nil, fmt.Errorf("failed to emit tests: %w", err)
	}
	files = append(files, f)

	return files, nil
}
