package oasgen

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/goatx/oasgen/internal/strcase"
)

// Options configures a generation run.
type Options struct {
	// FailFast aborts the run on the first failing component or route.
	// Otherwise failures are logged, skipped and collected in Result.Failures.
	FailFast bool

	// BaseURL overrides servers[0].url of the document.
	BaseURL string

	// Sampler generates test parameter values.
	// Defaults to NewSampler(NewFakeProvider(Seed)).
	Sampler *Sampler

	// Seed seeds the default sampler. Zero means random.
	Seed uint64

	// Logger receives warnings for skipped components and routes.
	// Defaults to a logger that discards everything.
	Logger *log.Logger
}

// Result holds the three artifact bundles of a run.
type Result struct {
	Components []*TypeDecl
	Routes     *RouteSurface
	Tests      *TestSuite
	Failures   []error
}

// RouteSurface is the callable surface of a document: its routes and the
// declarations of inline response types.
type RouteSurface struct {
	Routes []*Route
	Types  []*TypeDecl
}

// Component returns the declaration of the named component.
func (r *Result) Component(name string) (*TypeDecl, bool) {
	for _, decl := range r.Components {
		if decl.Name == name {
			return decl, true
		}
	}
	return nil, false
}

// Generate runs the component, route and test passes over doc. Every call
// starts from a fresh registry.
func Generate(doc *Document, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Sampler == nil {
		opts.Sampler = NewSampler(NewFakeProvider(opts.Seed))
	}
	if opts.BaseURL == "" {
		opts.BaseURL = doc.BaseURL()
	}

	g := &generator{
		opts:     opts,
		registry: NewRegistry(),
		declared: make(map[string]bool),
		methods:  make(map[string]bool),
		result: &Result{
			Routes: &RouteSurface{},
			Tests:  &TestSuite{BaseURL: opts.BaseURL},
		},
	}

	if err := g.generateComponents(doc); err != nil {
		return nil, err
	}
	g.registry.Seal()

	if err := g.generateRoutes(doc); err != nil {
		return nil, err
	}

	return g.result, nil
}

type generator struct {
	opts     Options
	registry *Registry
	declared map[string]bool
	methods  map[string]bool
	result   *Result
}

// fail applies the failure policy. It returns err when the run must stop.
func (g *generator) fail(err error, msg string, keyvals ...any) error {
	if g.opts.FailFast {
		return err
	}
	g.opts.Logger.Warn(msg, append(keyvals, "err", err)...)
	g.result.Failures = append(g.result.Failures, err)
	return nil
}

func (g *generator) generateComponents(doc *Document) error {
	for _, pair := range doc.Components() {
		schema, err := ResolveComponent(pair.Key, pair.Value, g.registry)
		if err != nil {
			if err := g.fail(&ComponentError{Name: pair.Key, Err: err}, "skipping component", "component", pair.Key); err != nil {
				return err
			}
			continue
		}

		var decl *TypeDecl
		if schema.IsObject() && schema.Ref == pair.Key {
			decl = SynthesizeComponent(schema)
		} else {
			decl = SynthesizeAlias(pair.Key, schema)
		}
		if err := g.declare(decl); err != nil {
			if err := g.registry.Unregister(pair.Key); err != nil {
				return err
			}
			if err := g.fail(&ComponentError{Name: pair.Key, Err: err}, "skipping component", "component", pair.Key); err != nil {
				return err
			}
			continue
		}
		g.result.Components = append(g.result.Components, decl)
		g.opts.Logger.Debug("resolved component", "component", pair.Key, "type", schema.Type)
	}
	return nil
}

func (g *generator) generateRoutes(doc *Document) error {
	for _, item := range doc.Paths() {
		if !item.Value.IsMap() {
			err := &RouteError{Path: item.Key, Err: newResolutionError(item.Value, ErrMalformedNode, "path item must be an object")}
			if err := g.fail(err, "skipping path", "path", item.Key); err != nil {
				return err
			}
			continue
		}

		for _, op := range item.Value.Pairs() {
			if !IsOperation(op.Key) {
				continue
			}

			route, err := g.synthesizeRoute(item, op)
			if err != nil {
				if err := g.fail(err, "skipping route", "path", item.Key, "method", op.Key); err != nil {
					return err
				}
				continue
			}

			g.result.Routes.Routes = append(g.result.Routes.Routes, route)
			g.result.Tests.Tests = append(g.result.Tests.Tests, SynthesizeTest(route, g.opts.BaseURL, g.opts.Sampler))
			g.opts.Logger.Debug("synthesized route", "operation", route.OperationID, "returns", route.Return.Type)
		}
	}
	return nil
}

func (g *generator) synthesizeRoute(item, op Pair) (*Route, error) {
	route, err := SynthesizeRoute(item.Key, op.Key, item.Value, op.Value, g.registry)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*Route, error) {
		return nil, &RouteError{OperationID: route.OperationID, Method: route.Method, Path: route.Path, Err: err}
	}

	method := strcase.ToExported(route.OperationID)
	if g.methods[method] {
		return fail(fmt.Errorf("%w: operation %s is already declared", ErrMalformedNode, method))
	}

	if inline := inlineObject(route.Return); inline != nil {
		decl := SynthesizeComponent(inline)
		if err := g.declare(decl); err != nil {
			return fail(err)
		}
		g.result.Routes.Types = append(g.result.Routes.Types, decl)
	}
	g.methods[method] = true
	return route, nil
}

// declare reserves the Go type names of decl. Nothing is reserved when one of
// them is taken.
func (g *generator) declare(decl *TypeDecl) error {
	names, err := decl.GoNames(decl.Name)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if g.declared[name] || seen[name] {
			return fmt.Errorf("%w: type %s is already declared", ErrMalformedNode, name)
		}
		seen[name] = true
	}
	for _, name := range names {
		g.declared[name] = true
	}
	return nil
}
