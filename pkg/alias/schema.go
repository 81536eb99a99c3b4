package alias

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema rejects shapes json.Unmarshal alone would tolerate or
// mis-diagnose: a top-level array, an "aliases" field holding a sequence
// instead of a plain mapping, non-string versions. Anything it rejects is
// treated as corruption upstream.
const documentSchema = `{
	"type": "object",
	"properties": {
		"version": {"type": "string"},
		"aliases": {
			"type": "object",
			"additionalProperties": {"type": "object"}
		},
		"metadata": {"type": "object"}
	}
}`

var (
	schemaOnce sync.Once
	schemaInst *gojsonschema.Schema
	schemaErr  error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schemaInst, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	})
	return schemaInst, schemaErr
}

// validateShape checks the raw store document against documentSchema.
func validateShape(raw []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("compile store schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validate store document: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("store document shape: %s", errs[0].String())
		}
		return fmt.Errorf("store document shape invalid")
	}
	return nil
}
