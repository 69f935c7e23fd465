package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/financeiro-script/nfse-validator/internal/common"
)

// overrideSchema constrains field-spec override files: a "fields" object
// keyed by field name, each entry carrying labels + pattern.
func overrideSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"fields": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"labels", "pattern"},
					"properties": map[string]any{
						"labels": map[string]any{
							"type":     "array",
							"minItems": 1,
							"items":    map[string]any{"type": "string", "minLength": 1},
						},
						"pattern": map[string]any{"type": "string", "minLength": 1},
					},
				},
			},
		},
		"required": []string{"fields"},
	}
}

type overrideFile struct {
	Fields map[string]FieldSpec `json:"fields"`
}

// LoadSpecs returns the built-in spec table merged with the overrides file
// at path, if any. An unreadable, schema-invalid, or uncompilable override
// is a configuration error and aborts the batch.
func LoadSpecs(path string) (SpecTable, error) {
	specs := DefaultSpecs()
	if path == "" {
		return specs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %v", common.ErrNotFound, err)
		}
		return nil, common.NewAppError("CONFIG_ERROR", fmt.Sprintf("read field specs %q", path), err)
	}
	if err := validateAgainstSchema(overrideSchema(), data); err != nil {
		return nil, common.NewAppError("CONFIG_ERROR", fmt.Sprintf("field specs %q", path),
			fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}

	var f overrideFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, common.NewAppError("CONFIG_ERROR", fmt.Sprintf("parse field specs %q", path), err)
	}

	for name, spec := range f.Fields {
		// overrides must capture something, same contract as the built-ins
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, common.NewAppError("CONFIG_ERROR",
				fmt.Sprintf("field %q pattern does not compile", name), err)
		}
		if re.NumSubexp() < 1 {
			return nil, common.NewAppError("CONFIG_ERROR",
				fmt.Sprintf("field %q pattern has no capture group", name), common.ErrInvalidInput)
		}
		specs[name] = spec
	}
	return specs, nil
}

// validateAgainstSchema validates data against schemaMap.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
