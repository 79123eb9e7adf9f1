package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var catalogSchema []byte

const schemaURL = "rotawatch://schema/catalog.json"

// Validator checks catalog documents against the embedded JSON Schema.
type Validator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// NewValidator creates a new catalog validator. The schema is compiled on
// first use.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks raw catalog JSON against the schema.
func (v *Validator) Validate(data []byte) error {
	compiled, err := v.compile()
	if err != nil {
		return fmt.Errorf("schema compilation error: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	return compiled.Validate(doc)
}

func (v *Validator) compile() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(catalogSchema))
		if err != nil {
			v.err = fmt.Errorf("unmarshal schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if addErr := c.AddResource(schemaURL, doc); addErr != nil {
			v.err = fmt.Errorf("add schema resource: %w", addErr)
			return
		}

		v.compiled, v.err = c.Compile(schemaURL)
	})
	return v.compiled, v.err
}
