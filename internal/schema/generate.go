// Package schema generates JSON Schema from the compilerlint config types.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"

	"github.com/smykla-skalski/compilerlint/pkg/config"
)

const (
	schemaURI = "https://json-schema.org/draft/2020-12/schema"
	title     = "compilerlint configuration"
	baseURL   = "https://raw.githubusercontent.com/smykla-skalski/compilerlint/main/schema/"
)

// Filename returns the versioned schema file name.
func Filename() string {
	return fmt.Sprintf("config.v%d.schema.json", config.CurrentConfigVersion)
}

// URL returns where the schema is published.
func URL() string {
	return baseURL + Filename()
}

// SchemaDirective returns the Taplo schema comment placed at the top of
// written config files.
func SchemaDirective() string {
	return "#:schema " + URL()
}

// Generate reflects config.Config into a schema published at URL. Unknown
// keys are rejected so editors flag typos in section names.
func Generate() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true}

	s := r.Reflect(&config.Config{})
	s.Version = schemaURI
	s.ID = jsonschema.ID(URL())
	s.Title = title
	s.Description = "Settings for compilerlint, the React Compiler diagnostic linter."

	return s
}

// GenerateJSON encodes Generate with a trailing newline, pretty-printed when
// indent is set.
func GenerateJSON(indent bool) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if indent {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(Generate()); err != nil {
		return nil, errors.Wrap(err, "encoding schema")
	}

	return buf.Bytes(), nil
}
