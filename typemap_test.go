package oasgen

import "testing"

func TestLookupType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		abstract string
		want     string
		wantOK   bool
	}{
		{abstract: "integer", want: "int", wantOK: true},
		{abstract: "int32", want: "int32", wantOK: true},
		{abstract: "int64", want: "int64", wantOK: true},
		{abstract: "number", want: "float64", wantOK: true},
		{abstract: "float", want: "float32", wantOK: true},
		{abstract: "boolean", want: "bool", wantOK: true},
		{abstract: "byte", want: "[]byte", wantOK: true},
		{abstract: "date-time", want: "time.Time", wantOK: true},
		{abstract: "uuid", want: "string", wantOK: true},
		{abstract: "decimal128", want: "", wantOK: false},
		{abstract: "", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.abstract, func(t *testing.T) {
			t.Parallel()
			got, ok := LookupType(tt.abstract)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("LookupType(%q) = %q, %v; want %q, %v", tt.abstract, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
