package oasgen

import (
	"os"
	"path/filepath"
	"testing"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func mustLoadFixture(t *testing.T, name string) *Document {
	t.Helper()
	doc, err := Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Load(%s) error = %v", name, err)
	}
	return doc
}

// schemaNode parses src as a standalone schema object.
func schemaNode(t *testing.T, src string) *Node {
	t.Helper()
	return mustParse(t, src).Root()
}

// registryWith resolves and registers components given as name/source pairs.
func registryWith(t *testing.T, components ...string) *Registry {
	t.Helper()
	reg := NewRegistry()
	for i := 0; i+1 < len(components); i += 2 {
		if _, err := ResolveComponent(components[i], schemaNode(t, components[i+1]), reg); err != nil {
			t.Fatalf("ResolveComponent(%s) error = %v", components[i], err)
		}
	}
	return reg
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return b
}
