package oasgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSynthesizeTest(t *testing.T) {
	t.Parallel()

	str := newPrimitive("string", "string")
	i32 := newPrimitive("int32", "int32")
	pet := newObject("Pet", nil).withRef("Pet")

	tests := []struct {
		name       string
		route      *Route
		baseURL    string
		wantName   string
		wantTarget string
		wantDecode *Schema
	}{
		{
			name: "query parameters",
			route: &Route{
				OperationID: "listPets",
				Method:      "GET",
				Path:        "/pets",
				Params: []Param{
					{Name: "limit", In: "query", Schema: i32},
					{Name: "firstname", In: "query", Schema: str},
				},
				Return: pet,
			},
			baseURL:    "http://petstore.swagger.io/v1",
			wantName:   "TestListPets",
			wantTarget: "http://petstore.swagger.io/v1/pets?limit=42&firstname=first+name",
			wantDecode: pet,
		},
		{
			name: "path parameter",
			route: &Route{
				OperationID: "show_pet_by_id",
				Method:      "GET",
				Path:        "/pets/{name}",
				Params:      []Param{{Name: "name", In: "path", Schema: str}},
				Return:      pet,
			},
			baseURL:    "http://localhost:8080/",
			wantName:   "TestShowPetById",
			wantTarget: "http://localhost:8080/pets/name",
			wantDecode: pet,
		},
		{
			name: "no body",
			route: &Route{
				OperationID: "checkHealth",
				Method:      "POST",
				Path:        "/health",
				Return:      NoBody,
			},
			baseURL:    "http://localhost",
			wantName:   "TestCheckHealth",
			wantTarget: "http://localhost/health",
			wantDecode: nil,
		},
	}

	sampler := NewSampler(stubProvider{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SynthesizeTest(tt.route, tt.baseURL, sampler)

			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Target != tt.wantTarget {
				t.Errorf("Target = %q, want %q", got.Target, tt.wantTarget)
			}
			if got.Method != tt.route.Method {
				t.Errorf("Method = %q, want %q", got.Method, tt.route.Method)
			}
			if got.DecodeInto != tt.wantDecode {
				t.Errorf("DecodeInto = %+v, want %+v", got.DecodeInto, tt.wantDecode)
			}
			if len(got.Samples) != len(tt.route.Params) {
				t.Errorf("got %d samples for %d parameters", len(got.Samples), len(tt.route.Params))
			}
		})
	}
}

func TestSynthesizeTestEscapesPathValues(t *testing.T) {
	t.Parallel()

	route := &Route{
		OperationID: "showOwner",
		Method:      "GET",
		Path:        "/owners/{address}",
		Params:      []Param{{Name: "address", In: "path", Schema: newPrimitive("string", "string")}},
		Return:      NoBody,
	}
	got := SynthesizeTest(route, "http://localhost", NewSampler(stubProvider{}))

	want := []SampleValue{{Name: "address", Value: "1 Main St"}}
	if diff := cmp.Diff(want, got.Samples); diff != "" {
		t.Errorf("Samples mismatch (-want +got):\n%s", diff)
	}
	if got.Target != "http://localhost/owners/1%20Main%20St" {
		t.Errorf("Target = %q", got.Target)
	}
}
