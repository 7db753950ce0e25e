package oasgen

import "testing"

func TestSchemaEqual(t *testing.T) {
	t.Parallel()

	pet := func(props ...Property) *Schema { return newObject("Pet", props) }
	id := Property{Name: "id", Schema: newPrimitive("int64", "int64")}
	name := Property{Name: "name", Schema: newPrimitive("string", "string")}
	tag := Property{Name: "tag", Schema: newPrimitive("string", "string")}

	tests := []struct {
		name  string
		left  *Schema
		right *Schema
		want  bool
	}{
		{
			name:  "same pointer",
			left:  NoBody,
			right: NoBody,
			want:  true,
		},
		{
			name:  "nil against schema",
			left:  nil,
			right: pet(),
			want:  false,
		},
		{
			name:  "objects with members in different order",
			left:  pet(id, name),
			right: pet(name, id),
			want:  true,
		},
		{
			name:  "objects with different names",
			left:  pet(id),
			right: newObject("Owner", []Property{id}),
			want:  false,
		},
		{
			name:  "extra member on the right is ignored",
			left:  pet(id, name),
			right: pet(id, name, tag),
			want:  true,
		},
		{
			name:  "extra member on the left is not ignored",
			left:  pet(id, name, tag),
			right: pet(id, name),
			want:  false,
		},
		{
			name:  "member with different type",
			left:  pet(Property{Name: "id", Schema: newPrimitive("int32", "int32")}),
			right: pet(id),
			want:  false,
		},
		{
			name:  "arrays of equal elements",
			left:  newArray(pet(id)),
			right: newArray(pet(id)),
			want:  true,
		},
		{
			name:  "arrays of different elements",
			left:  newArray(newPrimitive("string", "string")),
			right: newArray(newPrimitive("int", "integer")),
			want:  false,
		},
		{
			name:  "primitives compare target types",
			left:  newPrimitive("float64", "number"),
			right: newPrimitive("float64", "double"),
			want:  true,
		},
		{
			name:  "reference name does not take part",
			left:  pet(id).withRef("Pet"),
			right: pet(id),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.left.Equal(tt.right); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSchemaShape(t *testing.T) {
	t.Parallel()

	obj := newObject("Empty", nil)
	if !obj.IsObject() || obj.IsArray() || obj.IsPrimitive() {
		t.Errorf("object without members must still be an object")
	}

	arr := newArray(newPrimitive("string", "string"))
	if arr.Type != "string[]" || arr.StrictType != "string[]" {
		t.Errorf("array type = %q/%q, want string[]", arr.Type, arr.StrictType)
	}
	if !arr.IsArray() || arr.IsObject() {
		t.Errorf("array shape predicates are wrong")
	}

	if !NoBody.IsNoBody() || newPrimitive("void", "void").IsNoBody() {
		t.Errorf("IsNoBody must only match the marker")
	}

	ref := obj.withRef("Empty")
	if obj.IsRef() || !ref.IsRef() {
		t.Errorf("withRef must copy the schema")
	}
}
