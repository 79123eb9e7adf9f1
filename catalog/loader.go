package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse validates raw catalog JSON and builds a Catalog from it.
//
// The document maps each map ID to {"name": ..., "festival": ...}.
func Parse(data []byte) (*Catalog, error) {
	if err := NewValidator().Validate(data); err != nil {
		return nil, fmt.Errorf("catalog: invalid document: %w", err)
	}

	var raw map[string]RawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	return New(raw)
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
