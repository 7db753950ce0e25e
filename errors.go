package oasgen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedReference is returned for a $ref to a component that has
	// not been registered (yet).
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrUnknownFormatOrType is returned for a primitive type or format that
	// has no entry in the type table.
	ErrUnknownFormatOrType = errors.New("unknown format or type")
	// ErrMalformedNode is returned for a schema node that matches none of the
	// recognized shapes.
	ErrMalformedNode = errors.New("malformed schema node")
)

// ResolutionError is a failure at a single schema node.
type ResolutionError struct {
	Path   string
	Line   int
	Column int
	Detail string
	Err    error
}

func newResolutionError(n *Node, err error, format string, args ...any) *ResolutionError {
	return &ResolutionError{
		Path:   n.Path(),
		Line:   n.Line(),
		Column: n.Column(),
		Detail: fmt.Sprintf(format, args...),
		Err:    err,
	}
}

func (e *ResolutionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, column %d): %v: %s", e.Path, e.Line, e.Column, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s: %v: %s", e.Path, e.Err, e.Detail)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ChildError reports that a nested property, array item, parameter or
// response failed and took its parent down with it. Path is the parent node;
// the message is the child's, whose pointer already extends Path.
type ChildError struct {
	Path string
	Err  error
}

func (e *ChildError) Error() string {
	return e.Err.Error()
}

func (e *ChildError) Unwrap() error {
	return e.Err
}

// ComponentError is a failed component generation.
type ComponentError struct {
	Name string
	Err  error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("component %s: %v", e.Name, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

// RouteError is a failed route generation.
type RouteError struct {
	OperationID string
	Method      string
	Path        string
	Err         error
}

func (e *RouteError) Error() string {
	name := e.OperationID
	if name == "" {
		name = "<no operationId>"
	}
	return fmt.Sprintf("route %s (%s %s): %v", name, e.Method, e.Path, e.Err)
}

func (e *RouteError) Unwrap() error {
	return e.Err
}
