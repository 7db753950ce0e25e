package oasgen

// primitiveTypes maps abstract type and format names to Go types.
var primitiveTypes = map[string]string{
	"integer":   "int",
	"int32":     "int32",
	"int64":     "int64",
	"number":    "float64",
	"float":     "float32",
	"double":    "float64",
	"string":    "string",
	"boolean":   "bool",
	"byte":      "[]byte",
	"binary":    "[]byte",
	"date":      "time.Time",
	"date-time": "time.Time",
	"password":  "string",
	"email":     "string",
	"uuid":      "string",
	"uri":       "string",
	"hostname":  "string",
	"ipv4":      "string",
	"ipv6":      "string",
}

// LookupType returns the Go type for an abstract type or format name.
func LookupType(abstract string) (string, bool) {
	typ, ok := primitiveTypes[abstract]
	return typ, ok
}
