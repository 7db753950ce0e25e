package oasgen

// Schema is a resolved data shape. Exactly one of the three forms is
// populated: a primitive (Type/StrictType only), an object (Properties) or an
// array (ArrayOf).
type Schema struct {
	// Type is the target type name for primitives, the declared name for
	// objects and "<item type>[]" for arrays.
	Type string
	// StrictType is the abstract format or type the schema was declared with.
	StrictType string

	Properties []Property
	ArrayOf    *Schema

	// Ref is the component name when the schema was reached through a
	// reference. It does not take part in equality.
	Ref string
}

// Property is a named object member.
type Property struct {
	Name   string
	Schema *Schema
}

// NoBody marks a route whose success response carries no JSON body.
var NoBody = &Schema{Type: "void", StrictType: "void"}

func newPrimitive(typ, strictType string) *Schema {
	return &Schema{Type: typ, StrictType: strictType}
}

func newObject(name string, properties []Property) *Schema {
	if properties == nil {
		properties = []Property{}
	}
	return &Schema{Type: name, StrictType: name, Properties: properties}
}

func newArray(item *Schema) *Schema {
	typ := item.Type + "[]"
	return &Schema{Type: typ, StrictType: typ, ArrayOf: item}
}

func (s *Schema) IsObject() bool {
	return s != nil && s.Properties != nil
}

func (s *Schema) IsArray() bool {
	return s != nil && s.ArrayOf != nil
}

func (s *Schema) IsPrimitive() bool {
	return s != nil && !s.IsObject() && !s.IsArray()
}

// IsRef reports whether the schema stands for a named component.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// IsNoBody reports whether s is the no-body marker.
func (s *Schema) IsNoBody() bool {
	return s == NoBody
}

// Property returns the schema of the named member.
func (s *Schema) Property(name string) (*Schema, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// Equal reports structural equality. Objects are equal when their names match
// and every member of s has an equal member in other; members present only in
// other are not compared. Member order is irrelevant.
func (s *Schema) Equal(other *Schema) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}

	if s.IsObject() && other.IsObject() {
		if s.Type != other.Type {
			return false
		}
		for _, p := range s.Properties {
			o, ok := other.Property(p.Name)
			if !ok {
				return false
			}
			if !p.Schema.Equal(o) {
				return false
			}
		}
		return true
	}

	if s.IsArray() && other.IsArray() {
		return s.ArrayOf.Equal(other.ArrayOf)
	}

	return s.Type == other.Type
}

// withRef returns a shallow copy of s that records the component name.
func (s *Schema) withRef(name string) *Schema {
	c := *s
	c.Ref = name
	return &c
}
