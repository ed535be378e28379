package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// JSONSchema validates attribute values against a JSON schema. Values are
// normalised through encoding/json first so Go integers and typed slices are
// checked the same way decoded documents are. The original value is returned
// unchanged on success.
func JSONSchema(schema *openapi3.Schema) Type {
	name := "schema"
	if schema != nil && schema.Type != nil {
		name = "schema(" + strings.Join(schema.Type.Slice(), "|") + ")"
	}
	return New(name, func(value any) (any, error) {
		if schema == nil {
			return value, nil
		}
		normalized, err := normalizeJSON(value)
		if err != nil {
			return nil, err
		}
		if err := schema.VisitJSON(normalized); err != nil {
			return nil, err
		}
		return value, nil
	})
}

func normalizeJSON(value any) (any, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("value is not JSON encodable: %w", err)
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}
