package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Schema wraps a kin-openapi schema describing the form input.
type Schema struct {
	root *openapi3.Schema
}

// New wraps an already built schema.
func New(root *openapi3.Schema) (*Schema, error) {
	if root == nil {
		return nil, errors.New("validation: schema is required")
	}
	return &Schema{root: root}, nil
}

// Parse decodes a JSON or YAML schema document.
func Parse(raw []byte) (*Schema, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("validation: decode schema: %w", err)
	}
	if doc == nil {
		return nil, errors.New("validation: schema document is empty")
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("validation: encode schema: %w", err)
	}
	root := &openapi3.Schema{}
	if err := json.Unmarshal(payload, root); err != nil {
		return nil, fmt.Errorf("validation: decode schema: %w", err)
	}
	return New(root)
}

// Root returns the wrapped schema.
func (s *Schema) Root() *openapi3.Schema { return s.root }

// Rules returns the rule descriptors for the datum at path, or nil when the
// schema places no constraint on it. Path segments name object properties;
// array levels are crossed implicitly.
func (s *Schema) Rules(path []string) []any {
	if s == nil || len(path) == 0 {
		return nil
	}

	var (
		current  = s.root
		required bool
	)
	for _, segment := range path {
		current = itemsOf(current)
		if current == nil {
			return nil
		}
		prop := current.Properties[segment]
		if prop == nil || prop.Value == nil {
			return nil
		}
		required = slices.Contains(current.Required, segment)
		current = prop.Value
	}

	var rules []any
	if required {
		rules = append(rules, predicate("filled?"))
	}
	rules = append(rules, constraints(current)...)
	if len(rules) == 0 {
		return nil
	}
	return []any{conjoin(rules)}
}

func itemsOf(schema *openapi3.Schema) *openapi3.Schema {
	for schema != nil && isType(schema, openapi3.TypeArray) {
		if schema.Items == nil {
			return nil
		}
		schema = schema.Items.Value
	}
	return schema
}

func isType(schema *openapi3.Schema, name string) bool {
	return schema.Type != nil && slices.Contains(schema.Type.Slice(), name)
}

func constraints(schema *openapi3.Schema) []any {
	var out []any
	if schema.Min != nil {
		if schema.ExclusiveMin {
			out = append(out, predicate("gt?", number(*schema.Min)))
		} else {
			out = append(out, predicate("gteq?", number(*schema.Min)))
		}
	}
	if schema.Max != nil {
		if schema.ExclusiveMax {
			out = append(out, predicate("lt?", number(*schema.Max)))
		} else {
			out = append(out, predicate("lteq?", number(*schema.Max)))
		}
	}
	if schema.MinLength > 0 {
		out = append(out, predicate("min_size?", schema.MinLength))
	}
	if schema.MaxLength != nil {
		out = append(out, predicate("max_size?", *schema.MaxLength))
	}
	if schema.MinItems > 0 {
		out = append(out, predicate("min_size?", schema.MinItems))
	}
	if schema.MaxItems != nil {
		out = append(out, predicate("max_size?", *schema.MaxItems))
	}
	if schema.Pattern != "" {
		out = append(out, predicate("format?", schema.Pattern))
	}
	if len(schema.Enum) > 0 {
		out = append(out, predicate("included_in?", append([]any(nil), schema.Enum...)))
	}
	return out
}

func predicate(name string, args ...any) []any {
	if args == nil {
		args = []any{}
	}
	return []any{"predicate", []any{name, args}}
}

// conjoin folds rules left to right into nested "and" descriptors.
func conjoin(rules []any) any {
	combined := rules[0]
	for _, next := range rules[1:] {
		combined = []any{"and", []any{combined, next}}
	}
	return combined
}

func number(value float64) any {
	if value == math.Trunc(value) && math.Abs(value) < 1<<53 {
		return int(value)
	}
	return value
}
