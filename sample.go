package oasgen

import (
	"net/url"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"
)

// UnknownSample is the value produced when no rule matches.
const UnknownSample = "UNKNOWN"

// SampleProvider supplies sample literals by semantic category.
type SampleProvider interface {
	Name() string
	FullName() string
	FirstName() string
	LastName() string
	Address() string
	Word() string
	IntBetween(lo, hi int) int
}

// SampleValue is a generated literal for one parameter.
type SampleValue struct {
	Name  string
	Value string
}

// Query renders the value as a name=value query pair.
func (v SampleValue) Query() string {
	return url.QueryEscape(v.Name) + "=" + url.QueryEscape(v.Value)
}

// SampleRule generates a value when Match accepts the parameter.
type SampleRule struct {
	Match    func(name string, s *Schema) bool
	Generate func(p SampleProvider) string
}

func nameIs(want string) func(string, *Schema) bool {
	return func(name string, _ *Schema) bool { return name == want }
}

func typeIn(types ...string) func(string, *Schema) bool {
	return func(_ string, s *Schema) bool {
		for _, t := range types {
			if s.Type == t {
				return true
			}
		}
		return false
	}
}

// DefaultSampleRules are evaluated top to bottom: parameter names first, then
// resolved types.
var DefaultSampleRules = []SampleRule{
	{Match: nameIs("name"), Generate: SampleProvider.Name},
	{Match: nameIs("fullname"), Generate: SampleProvider.FullName},
	{Match: nameIs("firstname"), Generate: SampleProvider.FirstName},
	{Match: nameIs("lastname"), Generate: SampleProvider.LastName},
	{Match: nameIs("address"), Generate: SampleProvider.Address},
	{Match: typeIn("string"), Generate: SampleProvider.Word},
	{
		Match: typeIn("int", "int32", "int64"),
		Generate: func(p SampleProvider) string {
			return strconv.Itoa(p.IntBetween(1, 100))
		},
	},
	{Match: typeIn("bool"), Generate: func(SampleProvider) string { return "true" }},
}

// Sampler produces sample values from an ordered rule table.
type Sampler struct {
	provider SampleProvider
	rules    []SampleRule
}

// NewSampler returns a Sampler over DefaultSampleRules.
func NewSampler(p SampleProvider) *Sampler {
	return &Sampler{provider: p, rules: DefaultSampleRules}
}

// WithRules returns a copy of the sampler that evaluates rules before the
// current table.
func (s *Sampler) WithRules(rules ...SampleRule) *Sampler {
	merged := make([]SampleRule, 0, len(rules)+len(s.rules))
	merged = append(merged, rules...)
	merged = append(merged, s.rules...)
	return &Sampler{provider: s.provider, rules: merged}
}

// Sample generates a value for the named parameter of the given type.
func (s *Sampler) Sample(name string, schema *Schema) SampleValue {
	for _, rule := range s.rules {
		if rule.Match(name, schema) {
			return SampleValue{Name: name, Value: rule.Generate(s.provider)}
		}
	}
	return SampleValue{Name: name, Value: UnknownSample}
}

type fakeProvider struct {
	faker *gofakeit.Faker
}

// NewFakeProvider returns a provider backed by gofakeit. A zero seed draws a
// random seed; any other value makes the output reproducible.
func NewFakeProvider(seed uint64) SampleProvider {
	return &fakeProvider{faker: gofakeit.New(seed)}
}

func (f *fakeProvider) Name() string      { return f.faker.Name() }
func (f *fakeProvider) FirstName() string { return f.faker.FirstName() }
func (f *fakeProvider) LastName() string  { return f.faker.LastName() }
func (f *fakeProvider) Word() string      { return f.faker.Word() }

func (f *fakeProvider) FullName() string {
	return f.faker.FirstName() + " " + f.faker.LastName()
}

func (f *fakeProvider) Address() string {
	return f.faker.Address().Address
}

func (f *fakeProvider) IntBetween(lo, hi int) int {
	return f.faker.IntRange(lo, hi)
}
