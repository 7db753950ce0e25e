package oasgen

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func TestGeneratePetstore(t *testing.T) {
	t.Parallel()

	for _, fixture := range []string{"petstore.json", "petstore.yaml"} {
		t.Run(fixture, func(t *testing.T) {
			t.Parallel()
			res, err := Generate(mustLoadFixture(t, fixture), Options{
				FailFast: true,
				Sampler:  NewSampler(stubProvider{}),
			})
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(res.Failures) != 0 {
				t.Errorf("Failures = %v, want none", res.Failures)
			}

			list := res.Tests.Tests[0]
			if list.Name != "TestListPets" || list.Target != "http://petstore.swagger.io/v1/pets?limit=42" {
				t.Errorf("first test = %s %s", list.Name, list.Target)
			}
			if list.DecodeInto == nil || list.DecodeInto.Ref != "Pets" {
				t.Errorf("listPets must decode into Pets, got %+v", list.DecodeInto)
			}
		})
	}
}

func TestGeneratePetstoreSurface(t *testing.T) {
	t.Parallel()

	res, err := Generate(mustLoadFixture(t, "petstore.json"), Options{
		FailFast: true,
		BaseURL:  "http://localhost:8080",
		Sampler:  NewSampler(stubProvider{}),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var components []string
	for _, decl := range res.Components {
		components = append(components, decl.Name)
	}
	if diff := cmp.Diff([]string{"Pet", "Pets", "Owner", "Error"}, components); diff != "" {
		t.Errorf("components mismatch (-want +got):\n%s", diff)
	}

	pets, ok := res.Component("Pets")
	if !ok || pets.Alias == nil || pets.Alias.ArrayOf.Ref != "Pet" {
		t.Errorf("Pets must alias an array of Pet, got %+v", pets)
	}
	owner, _ := res.Component("Owner")
	if len(owner.Nested) != 1 || owner.Nested[0].Name != "Address" {
		t.Errorf("Owner.Nested = %+v, want Address", owner.Nested)
	}

	type routeSummary struct {
		Name, Method, Path, Returns string
	}
	var routes []routeSummary
	for _, r := range res.Routes.Routes {
		routes = append(routes, routeSummary{r.OperationID, r.Method, r.Path, r.Return.Type})
	}
	wantRoutes := []routeSummary{
		{"listPets", "GET", "/pets", "Pet[]"},
		{"createPets", "POST", "/pets", "void"},
		{"showPetById", "GET", "/pets/{petId}", "Pet"},
		{"findOwners", "GET", "/owners", "FindOwnersResponse"},
		{"checkHealth", "GET", "/health", "void"},
	}
	if diff := cmp.Diff(wantRoutes, routes); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}

	if len(res.Routes.Types) != 1 || res.Routes.Types[0].Name != "FindOwnersResponse" {
		t.Errorf("Routes.Types = %+v, want FindOwnersResponse", res.Routes.Types)
	}

	var targets []string
	for _, tc := range res.Tests.Tests {
		targets = append(targets, tc.Target)
	}
	wantTargets := []string{
		"http://localhost:8080/pets?limit=42",
		"http://localhost:8080/pets",
		"http://localhost:8080/pets/word",
		"http://localhost:8080/owners?firstname=first+name",
		"http://localhost:8080/health",
	}
	if diff := cmp.Diff(wantTargets, targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}

	health := res.Tests.Tests[4]
	if health.DecodeInto != nil {
		t.Errorf("checkHealth has no body and must only assert the status")
	}
}

func TestGenerateSkipsFailures(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	res, err := Generate(mustLoadFixture(t, "broken.json"), Options{
		Logger: log.New(&logs),
		Seed:   1,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(res.Components) != 1 || res.Components[0].Name != "Tag" {
		t.Errorf("Components = %+v, want only Tag", res.Components)
	}
	if len(res.Routes.Routes) != 0 {
		t.Errorf("Routes = %+v, want none", res.Routes.Routes)
	}
	if len(res.Failures) != 4 {
		t.Fatalf("Failures = %v, want 4", res.Failures)
	}

	var comp *ComponentError
	if !errors.As(res.Failures[0], &comp) || comp.Name != "Order" || !errors.Is(comp, ErrUnresolvedReference) {
		t.Errorf("Failures[0] = %v, want Order with an unresolved reference", res.Failures[0])
	}
	if !errors.As(res.Failures[1], &comp) || comp.Name != "Item" || !errors.Is(comp, ErrUnknownFormatOrType) {
		t.Errorf("Failures[1] = %v, want Item with an unknown format", res.Failures[1])
	}
	var route *RouteError
	if !errors.As(res.Failures[2], &route) || route.OperationID != "listOrders" {
		t.Errorf("Failures[2] = %v, want listOrders", res.Failures[2])
	}
	if !strings.Contains(res.Failures[3].Error(), "/paths/~1items/get/responses/200/content/application~1json/schema/$ref") {
		t.Errorf("Failures[3] = %v, want the pointer of the failing reference", res.Failures[3])
	}

	if got := strings.Count(logs.String(), "skipping"); got != 4 {
		t.Errorf("logged %d skips, want 4:\n%s", got, logs.String())
	}
}

func TestGenerateFailFast(t *testing.T) {
	t.Parallel()

	res, err := Generate(mustLoadFixture(t, "broken.json"), Options{FailFast: true})
	if res != nil {
		t.Errorf("Generate() = %+v, want nil", res)
	}
	var comp *ComponentError
	if !errors.As(err, &comp) || comp.Name != "Order" {
		t.Errorf("Generate() error = %v, want the Order component", err)
	}
}

func TestGenerateFreshRegistry(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"components":{"schemas":{"Pet":`+petSchema+`}}}`)
	for i := range 2 {
		res, err := Generate(doc, Options{FailFast: true})
		if err != nil {
			t.Fatalf("run %d: Generate() error = %v", i, err)
		}
		if len(res.Components) != 1 {
			t.Fatalf("run %d: Components = %d, want 1", i, len(res.Components))
		}
	}
}

func TestGenerateInlineResponseCollision(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"components":{"schemas":{"ListPetsResponse":{"type":"string"}}},
		"paths":{"/pets":{"get":{"operationId":"listPets","responses":{"200":{"content":{"application/json":
			{"schema":{"properties":{"total":{"type":"integer"}}}}}}}}}}
	}`)
	res, err := Generate(doc, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Failures) != 1 || !errors.Is(res.Failures[0], ErrMalformedNode) {
		t.Errorf("Failures = %v, want one name collision", res.Failures)
	}
}

func TestGenerateNameCollisions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		src            string
		wantComponents []string
		wantRoutes     []string
		wantFailure    string
	}{
		{
			name: "nested type declared before component",
			src: `{"components":{"schemas":{
				"Pet":{"properties":{"owner":{"properties":{"name":{"type":"string"}}}}},
				"PetOwner":{"properties":{"id":{"type":"integer"}}}
			}}}`,
			wantComponents: []string{"Pet"},
			wantFailure:    "component PetOwner",
		},
		{
			name: "component declared before nested type",
			src: `{"components":{"schemas":{
				"PetOwner":{"properties":{"id":{"type":"integer"}}},
				"Pet":{"properties":{"owner":{"properties":{"name":{"type":"string"}}}}}
			}}}`,
			wantComponents: []string{"PetOwner"},
			wantFailure:    "component Pet",
		},
		{
			name: "properties differing in case",
			src: `{"components":{"schemas":{
				"Pet":{"properties":{"foo":{"properties":{"a":{"type":"string"}}},"Foo":{"properties":{"b":{"type":"string"}}}}},
				"Tag":{"properties":{"name":{"type":"string"}}}
			}}}`,
			wantComponents: []string{"Tag"},
			wantFailure:    "component Pet",
		},
		{
			name: "path and query parameter with one name",
			src: `{"paths":{"/pets/{id}":{"get":{"operationId":"showPet","parameters":[
				{"name":"id","in":"path","schema":{"type":"string"}},
				{"name":"id","in":"query","schema":{"type":"string"}}
			],"responses":{"200":{"description":"ok"}}}}}}`,
			wantFailure: "route showPet",
		},
		{
			name: "duplicate operationId",
			src: `{"paths":{
				"/pets":{"get":{"operationId":"op","responses":{"200":{"description":"ok"}}}},
				"/owners":{"get":{"operationId":"op","responses":{"200":{"description":"ok"}}}}
			}}`,
			wantRoutes:  []string{"/pets"},
			wantFailure: "route op (GET /owners)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := Generate(mustParse(t, tt.src), Options{})
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(res.Failures) != 1 {
				t.Fatalf("Failures = %v, want one", res.Failures)
			}
			failure := res.Failures[0]
			if !errors.Is(failure, ErrMalformedNode) || !strings.Contains(failure.Error(), tt.wantFailure) {
				t.Errorf("failure = %v, want %q to be malformed", failure, tt.wantFailure)
			}

			var components, routes []string
			for _, decl := range res.Components {
				components = append(components, decl.Name)
			}
			for _, route := range res.Routes.Routes {
				routes = append(routes, route.Path)
			}
			if diff := cmp.Diff(tt.wantComponents, components); diff != "" {
				t.Errorf("Components mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRoutes, routes); diff != "" {
				t.Errorf("Routes mismatch (-want +got):\n%s", diff)
			}

			if _, err := Generate(mustParse(t, tt.src), Options{FailFast: true}); !errors.Is(err, ErrMalformedNode) {
				t.Errorf("Generate() with FailFast error = %v, want %v", err, ErrMalformedNode)
			}
		})
	}
}

func TestGenerateSkippedComponentIsNotReferenced(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"components":{"schemas":{
			"Pet":{"properties":{"owner":{"properties":{"name":{"type":"string"}}}}},
			"PetOwner":{"properties":{"id":{"type":"integer"}}}
		}},
		"paths":{"/owners":{"get":{"operationId":"showOwner","responses":{"200":{"content":{"application/json":
			{"schema":{"$ref":"#/components/schemas/PetOwner"}}}}}}}}
	}`)
	res, err := Generate(doc, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Failures) != 2 || !errors.Is(res.Failures[1], ErrUnresolvedReference) {
		t.Errorf("Failures = %v, want the component clash and an unresolved route", res.Failures)
	}
	if len(res.Routes.Routes) != 0 {
		t.Errorf("Routes = %d, want none", len(res.Routes.Routes))
	}
}
