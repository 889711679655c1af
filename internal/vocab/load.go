package vocab

import (
	"encoding/json"
	"os"

	"github.com/screenware/resume-screener/internal/schemas"
)

// SchemaRelPath is the vocabulary schema location relative to the repo root.
const SchemaRelPath = "schemas/vocabulary.schema.json"

// Load reads a vocabulary JSON file, validates it against the vocabulary
// schema when the schema can be resolved, fills omitted tables from the
// defaults, and checks the required tables are present.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to read vocabulary file", Cause: err}
	}

	if schemaPath := schemas.ResolveSchemaPath(SchemaRelPath); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			return nil, &Error{Path: path, Message: "vocabulary file failed schema validation", Cause: err}
		}
	}

	var v Vocabulary
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &Error{Path: path, Message: "failed to parse vocabulary JSON", Cause: err}
	}

	v.MergeWithDefaults()
	if err := v.Validate(); err != nil {
		return nil, err
	}

	return &v, nil
}
