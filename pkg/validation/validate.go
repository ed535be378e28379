package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formalist/pkg/result"
)

// Issue is a single validation failure.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Issues validates input and reports every failure. The returned error is
// reserved for input that cannot be encoded as JSON.
func (s *Schema) Issues(input map[string]any) ([]Issue, error) {
	normalized, err := normalize(input)
	if err != nil {
		return nil, err
	}
	verr := s.root.VisitJSON(normalized, openapi3.MultiErrors())
	if verr == nil {
		return nil, nil
	}
	return collectIssues(nil, verr), nil
}

// Validate returns the nested errors map for input. It is empty when input
// satisfies the schema.
func (s *Schema) Validate(input map[string]any) (map[string]any, error) {
	issues, err := s.Issues(input)
	if err != nil {
		return nil, err
	}
	flat := make(map[string][]string, len(issues))
	for _, issue := range issues {
		flat[issue.Field] = result.MergeMessages(flat[issue.Field], issue.Message)
	}
	return result.NestErrors(flat), nil
}

func collectIssues(out []Issue, err error) []Issue {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, item := range e {
			out = collectIssues(out, item)
		}
		return out
	case *openapi3.SchemaError:
		pointer := e.JSONPointer()
		issue := Issue{
			Field:   strings.Join(pointer, "."),
			Message: strings.TrimSpace(e.Reason),
		}
		if len(pointer) > 0 {
			issue.Path = "/" + strings.Join(escapePointer(pointer), "/")
		}
		if issue.Message == "" {
			issue.Message = strings.TrimSpace(e.Error())
		}
		return append(out, issue)
	default:
		return append(out, Issue{Message: strings.TrimSpace(err.Error())})
	}
}

func escapePointer(segments []string) []string {
	out := make([]string, len(segments))
	for idx, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		out[idx] = strings.ReplaceAll(segment, "/", "~1")
	}
	return out
}

func normalize(input map[string]any) (any, error) {
	if input == nil {
		input = map[string]any{}
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("validation: input is not JSON encodable: %w", err)
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("validation: decode input: %w", err)
	}
	return out, nil
}
