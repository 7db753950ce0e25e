package gocode

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/goatx/oasgen"
)

var testsTemplate = template.Must(template.New("tests").Funcs(template.FuncMap{
	"header": func() string { return oasgen.GeneratedHeader },
	"quote":  strconv.Quote,
	"type": func(s *oasgen.Schema) string {
		return typeExpr(s, "")
	},
}).Parse(`{{header}}

package {{.Package}}

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

var smokeClient = &http.Client{Timeout: 30 * time.Second}

func doRequest(t *testing.T, method, target string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := smokeClient.Do(req)
	if err != nil {
		t.Fatalf("failed to call %s %s: %v", method, target, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}
{{range .Tests}}
func {{.Name}}(t *testing.T) {
{{- range .Samples}}
	// {{.Name}} = {{.Value}}
{{- end}}
	resp := doRequest(t, {{quote .Method}}, {{quote .Target}})
{{- if .DecodeInto}}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	var got {{type .DecodeInto}}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
{{- else}}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
{{- end}}
}
{{end}}`))

// EmitTests renders one smoke test per route.
func (r *Renderer) EmitTests(suite *oasgen.TestSuite) (oasgen.File, error) {
	var buf bytes.Buffer
	data := struct {
		Package string
		Tests   []*oasgen.TestDecl
	}{
		Package: r.Package,
		Tests:   suite.Tests,
	}
	if err := testsTemplate.Execute(&buf, data); err != nil {
		return oasgen.File{Name: TestsFile}, fmt.Errorf("failed to execute tests template: %w", err)
	}

	src, err := format(TestsFile, buf.String())
	return oasgen.File{Name: TestsFile, Content: src}, err
}
