package test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goatx/oasgen"
)

func FixtureDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata")
}

func ReadGolden(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(FixtureDir(t), name)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", path, err)
	}
	return string(b)
}

// LoadFixture parses a document from testdata.
func LoadFixture(t *testing.T, name string) *oasgen.Document {
	t.Helper()
	doc, err := oasgen.Load(filepath.Join(FixtureDir(t), name))
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return doc
}

// ParseDocument parses an inline document.
func ParseDocument(t *testing.T, src string) *oasgen.Document {
	t.Helper()
	doc, err := oasgen.Parse([]byte(src))
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return doc
}
