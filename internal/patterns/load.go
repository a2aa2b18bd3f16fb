package patterns

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// file is the on-disk shape of a marker override file.
type file struct {
	NameMarkers    []string `yaml:"name_markers" json:"name_markers"`
	AddressMarkers []string `yaml:"address_markers" json:"address_markers"`
	OrderMarkers   []string `yaml:"order_markers" json:"order_markers"`
	AmountUnits    []string `yaml:"amount_units" json:"amount_units"`
}

// buildMarkerSchema returns the JSON-Schema for marker override files as
// a generic map, validated locally before the library is compiled.
func buildMarkerSchema() map[string]any {
	markerList := map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    map[string]any{"type": "string", "minLength": 1},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name_markers":    markerList,
			"address_markers": markerList,
			"order_markers":   markerList,
			"amount_units":    markerList,
		},
	}
}

// Load reads a YAML marker override file, validates it against the
// marker schema, and returns a Library where any omitted marker group
// falls back to the built-in default.
func Load(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns file: %w", err)
	}
	return Parse(raw)
}

// Parse builds a Library from raw YAML marker configuration.
func Parse(raw []byte) (*Library, error) {
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("parse patterns yaml: %w", err)
	}
	if err := validateAgainstSchema(buildMarkerSchema(), generic); err != nil {
		return nil, fmt.Errorf("patterns config: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode patterns yaml: %w", err)
	}

	lib := Default()
	if len(f.NameMarkers) > 0 {
		lib.NameMarkers = f.NameMarkers
	}
	if len(f.AddressMarkers) > 0 {
		lib.AddressMarkers = f.AddressMarkers
	}
	if len(f.OrderMarkers) > 0 {
		lib.OrderMarkers = f.OrderMarkers
	}
	if len(f.AmountUnits) > 0 {
		lib.AmountUnits = f.AmountUnits
	}
	if err := lib.validate(); err != nil {
		return nil, err
	}
	lib.compile()
	return lib, nil
}

// validateAgainstSchema validates a decoded document against schemaMap.
// The document is round-tripped through JSON so YAML-decoded values use
// the types the validator expects.
func validateAgainstSchema(schemaMap map[string]any, doc any) error {
	sb, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("patterns.json", bytes.NewReader(sb)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("patterns.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	db, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var v any
	if err := json.Unmarshal(db, &v); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("does not match schema: %w", err)
	}
	return nil
}
