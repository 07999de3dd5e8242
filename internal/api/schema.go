package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"evalclient/internal/types"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const suiteSchemaURL = "https://evalclient.local/schemas/suite.schema.json"

// suiteSchema accepts both the descriptive and the short field names.
const suiteSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "instructionsMarkup": {"type": "string"},
      "executableScript": {"type": "string"},
      "instr": {"type": "string"},
      "script": {"type": "string"}
    },
    "anyOf": [
      {"required": ["executableScript"]},
      {"required": ["script"]}
    ]
  }
}`

var compiledSuiteSchema = mustCompileSuiteSchema()

func mustCompileSuiteSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(suiteSchemaURL, strings.NewReader(suiteSchema)); err != nil {
		panic(fmt.Sprintf("suite schema load failed: %v", err))
	}
	return c.MustCompile(suiteSchemaURL)
}

// decodeSuite validates and decodes a fetched suite payload.
func decodeSuite(body []byte) (types.Suite, error) {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledSuiteSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("suite does not match schema: %w", err)
	}

	var suite types.Suite
	if err := json.Unmarshal(body, &suite); err != nil {
		return nil, fmt.Errorf("failed to decode suite: %w", err)
	}
	if suite == nil {
		suite = types.Suite{}
	}
	return suite, nil
}
