package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.schema.json
var schemaSource string

const schemaURL = "catalog.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
			schemaErr = fmt.Errorf("failed to add catalog schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validateSchema checks raw YAML against the catalog JSON schema. The YAML
// tree is re-encoded as JSON first so numbers reach the validator as
// json.Number.
func validateSchema(data []byte) error {
	schema, err := documentSchema()
	if err != nil {
		return err
	}

	var tree interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if tree == nil {
		tree = map[string]interface{}{}
	}

	encoded, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("catalog YAML is not representable as JSON: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return fmt.Errorf("failed to decode catalog tree: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("catalog does not match schema: %w", err)
	}
	return nil
}
