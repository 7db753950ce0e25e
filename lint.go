package oasgen

import (
	"bytes"
	"cmp"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed lint.schema.json
var lintSchemaJSON []byte

const lintSchemaURL = "lint.schema.json"

// LintIssue is a shape violation found by Lint.
type LintIssue struct {
	// Path is the JSON pointer of the offending value.
	Path    string
	Message string
}

func (i LintIssue) String() string {
	return i.Path + ": " + i.Message
}

var compileLintSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(lintSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid lint schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(lintSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add lint schema: %w", err)
	}
	schema, err := compiler.Compile(lintSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile lint schema: %w", err)
	}
	return schema, nil
})

// Lint checks that doc has the shape the generator understands. It does not
// validate the document against OpenAPI itself.
func Lint(doc *Document) ([]LintIssue, error) {
	schema, err := compileLintSchema()
	if err != nil {
		return nil, err
	}

	value, err := doc.Root().Value()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	err = schema.Validate(instance)
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, fmt.Errorf("failed to lint document: %w", err)
	}

	printer := message.NewPrinter(language.English)
	var issues []LintIssue
	collectLintIssues(verr, printer, &issues)

	slices.SortStableFunc(issues, func(a, b LintIssue) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return slices.Compact(issues), nil
}

func collectLintIssues(verr *jsonschema.ValidationError, printer *message.Printer, issues *[]LintIssue) {
	path := instancePointer(verr.InstanceLocation)

	keywords := verr.ErrorKind.KeywordPath()
	if len(keywords) > 0 && keywords[len(keywords)-1] == "anyOf" {
		*issues = append(*issues, LintIssue{Path: path, Message: "schema must declare properties, type or $ref"})
		return
	}

	if len(verr.Causes) == 0 {
		*issues = append(*issues, LintIssue{Path: path, Message: verr.ErrorKind.LocalizedString(printer)})
		return
	}
	for _, cause := range verr.Causes {
		collectLintIssues(cause, printer, issues)
	}
}

func instancePointer(location []string) string {
	if len(location) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, token := range location {
		b.WriteString("/")
		b.WriteString(escapePointer(token))
	}
	return b.String()
}
