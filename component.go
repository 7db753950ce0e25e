package oasgen

import (
	"fmt"

	"github.com/goatx/oasgen/internal/strcase"
)

// TypeDecl is a named type declaration. Declarations for inline objects are
// attached to their parent through Nested instead of being emitted on their
// own.
type TypeDecl struct {
	Name   string
	Doc    string
	Fields []FieldDecl
	Nested []*TypeDecl
	// Alias is set for components that are not objects (arrays, primitives).
	Alias *Schema
}

// FieldDecl is one member of a struct declaration.
type FieldDecl struct {
	Name   string
	Schema *Schema
	Doc    string
	// Nested names the declaration of an inline object field, or of the
	// element of an array of inline objects.
	Nested string
}

// SynthesizeComponent builds the declaration of an object schema. It panics
// when the schema is not an object.
func SynthesizeComponent(schema *Schema) *TypeDecl {
	if !schema.IsObject() {
		panic(fmt.Sprintf("cannot synthesize a type declaration from non-object schema %q", schema.Type))
	}

	decl := &TypeDecl{
		Name:   schema.Type,
		Fields: make([]FieldDecl, 0, len(schema.Properties)),
	}

	for _, prop := range schema.Properties {
		field := FieldDecl{
			Name:   prop.Name,
			Schema: prop.Schema,
		}

		if inline := inlineObject(prop.Schema); inline != nil {
			nested := SynthesizeComponent(inline)
			decl.Nested = append(decl.Nested, nested)
			field.Nested = nested.Name
		}
		if field.Nested == "" || prop.Schema.IsArray() {
			field.Doc = "Type of " + prop.Schema.StrictType
		}

		decl.Fields = append(decl.Fields, field)
	}

	return decl
}

// SynthesizeAlias builds the declaration of a non-object component.
func SynthesizeAlias(name string, schema *Schema) *TypeDecl {
	target := schema
	if target.Ref == name {
		target = schema.withRef("")
	}
	decl := &TypeDecl{
		Name:  name,
		Doc:   "Type of " + schema.StrictType,
		Alias: target,
	}
	if schema.IsArray() {
		if inline := inlineObject(schema.ArrayOf); inline != nil {
			decl.Nested = append(decl.Nested, SynthesizeComponent(inline))
		}
	}
	return decl
}

// inlineObject returns the object declared in place by s: s itself, or the
// innermost element of a (nested) array. References never count as inline.
func inlineObject(s *Schema) *Schema {
	for s.IsArray() && !s.IsRef() {
		s = s.ArrayOf
	}
	if s.IsObject() && !s.IsRef() {
		return s
	}
	return nil
}

// NestedName flattens a nested declaration into a top-level type name.
func NestedName(parent, child string) string {
	if child == parent {
		return parent + "Item"
	}
	return parent + child
}

// GoNames returns the top-level Go type names introduced by decl when it is
// emitted as goName, nested declarations included. Field names that map to the
// same Go identifier fail with ErrMalformedNode.
func (d *TypeDecl) GoNames(goName string) ([]string, error) {
	fields := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		ident := strcase.ToExported(f.Name)
		if other, ok := fields[ident]; ok {
			return nil, fmt.Errorf("%w: fields %q and %q of %s are both named %s", ErrMalformedNode, other, f.Name, goName, ident)
		}
		fields[ident] = f.Name
	}

	names := []string{goName}
	for _, n := range d.Nested {
		nested, err := n.GoNames(NestedName(goName, n.Name))
		if err != nil {
			return nil, err
		}
		names = append(names, nested...)
	}
	return names, nil
}
