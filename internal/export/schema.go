package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// exportSchema pins the shape consumers of the JSON export rely on.
const exportSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "currency", "upload_timestamp", "items"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "date": {"type": "string"},
      "total": {"type": ["number", "null"]},
      "currency": {"enum": ["USD", "EUR", "ALL", "GBP"]},
      "raw_text": {"type": "string"},
      "file_name": {"type": "string"},
      "upload_timestamp": {"type": "string"},
      "file_type": {"type": "string"},
      "items": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["item_name", "price", "category"],
          "properties": {
            "item_name": {"type": "string", "minLength": 1},
            "price": {"type": "number"},
            "category": {"enum": ["clothes", "food", "other"]}
          }
        }
      }
    }
  }
}`

// ValidateExport validates a serialized export document against the schema.
func ValidateExport(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("export.json", strings.NewReader(exportSchema)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("export.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal export: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("export does not match schema: %w", err)
	}
	return nil
}
