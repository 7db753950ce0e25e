package oasgen

import (
	"regexp"

	"github.com/goatx/oasgen/internal/strcase"
)

var componentRefPattern = regexp.MustCompile(`^#/components/schemas/(\w+)$`)

// Resolve turns a schema node into a Schema. candidateName names the result
// when the node is an inline object; nested inline objects are named after
// their property key, array items after the array. References are looked up
// in reg and never resolved ahead of registration.
func Resolve(node *Node, reg *Registry, candidateName string) (*Schema, error) {
	if !node.IsMap() {
		return nil, newResolutionError(node, ErrMalformedNode, "schema must be an object")
	}

	switch {
	case node.Has("properties"):
		return resolveObject(node, reg, candidateName)
	case node.Get("type").String() == "array":
		return resolveArray(node, reg, candidateName)
	case node.Has("type") && node.Has("format"):
		return resolvePrimitive(node.Get("format"))
	case node.Has("type"):
		return resolvePrimitive(node.Get("type"))
	case node.Has("$ref"):
		return resolveRef(node, reg)
	default:
		return nil, newResolutionError(node, ErrMalformedNode, "expected properties, type or $ref")
	}
}

// ResolveComponent resolves a top-level component and registers it under name.
// A component that is itself a reference keeps pointing at its target.
func ResolveComponent(name string, node *Node, reg *Registry) (*Schema, error) {
	schema, err := Resolve(node, reg, name)
	if err != nil {
		return nil, err
	}
	if !schema.IsRef() {
		schema = schema.withRef(name)
	}
	if err := reg.Register(name, schema); err != nil {
		return nil, newResolutionError(node, ErrMalformedNode, "%v", err)
	}
	return schema, nil
}

func resolveObject(node *Node, reg *Registry, name string) (*Schema, error) {
	if name == "" {
		return nil, newResolutionError(node, ErrMalformedNode, "inline object has no name")
	}
	props := node.Get("properties")
	if !props.IsMap() {
		return nil, newResolutionError(props, ErrMalformedNode, "properties must be an object")
	}

	pairs := props.Pairs()
	properties := make([]Property, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		if seen[pair.Key] {
			return nil, newResolutionError(pair.Value, ErrMalformedNode, "duplicate property %q", pair.Key)
		}
		seen[pair.Key] = true

		child, err := Resolve(pair.Value, reg, strcase.Capitalize(pair.Key))
		if err != nil {
			return nil, &ChildError{Path: node.Path(), Err: err}
		}
		properties = append(properties, Property{Name: pair.Key, Schema: child})
	}
	return newObject(name, properties), nil
}

func resolveArray(node *Node, reg *Registry, name string) (*Schema, error) {
	items := node.Get("items")
	if items == nil {
		return nil, newResolutionError(node, ErrMalformedNode, "array must declare items")
	}
	item, err := Resolve(items, reg, strcase.Capitalize(name))
	if err != nil {
		return nil, &ChildError{Path: node.Path(), Err: err}
	}
	return newArray(item), nil
}

func resolvePrimitive(key *Node) (*Schema, error) {
	abstract := key.String()
	if abstract == "" {
		return nil, newResolutionError(key, ErrMalformedNode, "type and format must be non-empty strings")
	}
	typ, ok := LookupType(abstract)
	if !ok {
		return nil, newResolutionError(key, ErrUnknownFormatOrType, "%q has no Go type", abstract)
	}
	return newPrimitive(typ, abstract), nil
}

func resolveRef(node *Node, reg *Registry) (*Schema, error) {
	ref := node.Get("$ref")
	m := componentRefPattern.FindStringSubmatch(ref.String())
	if m == nil {
		return nil, newResolutionError(ref, ErrMalformedNode, "unsupported reference %q", ref.String())
	}
	name := m[1]
	schema, ok := reg.Lookup(name)
	if !ok {
		return nil, newResolutionError(ref, ErrUnresolvedReference, "component %q is not defined before this point", name)
	}
	return schema.withRef(name), nil
}
