package result

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ErrorsKey holds messages about an object or collection inside a nested
// error map.
const ErrorsKey = "_errors"

// NestErrors converts a flat payload keyed by dotted or JSON pointer paths
// ("reviews.0.rating", "/body/title", "$.tags[0]") into the nested error map
// shape used during resolution. Messages are trimmed and de-duplicated while
// preserving order. Form-level keys ("", "form", "non_field_errors", ...) land
// under ErrorsKey at the root.
func NestErrors(payload map[string][]string) map[string]any {
	out := make(map[string]any)
	if len(payload) == 0 {
		return out
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, rawPath := range keys {
		msgs := normalizeMessages(payload[rawPath])
		if len(msgs) == 0 {
			continue
		}
		segments := dropWrapperSegments(parsePathSegments(rawPath))
		if isFormLevelKey(rawPath) || len(segments) == 0 {
			out[ErrorsKey] = appendMessages(out[ErrorsKey], msgs)
			continue
		}
		insertMessages(out, segments, msgs)
	}
	return out
}

// MergeMessages concatenates message lists, trimming whitespace and dropping
// duplicates while preserving order.
func MergeMessages(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func insertMessages(root map[string]any, segments []string, msgs []string) {
	node := root
	for _, segment := range segments[:len(segments)-1] {
		node = ensureMap(node, segment)
	}
	last := segments[len(segments)-1]
	if nested, ok := node[last].(map[string]any); ok {
		nested[ErrorsKey] = appendMessages(nested[ErrorsKey], msgs)
		return
	}
	node[last] = appendMessages(node[last], msgs)
}

func ensureMap(node map[string]any, key string) map[string]any {
	switch existing := node[key].(type) {
	case map[string]any:
		return existing
	case []string:
		nested := map[string]any{ErrorsKey: existing}
		node[key] = nested
		return nested
	default:
		nested := make(map[string]any)
		node[key] = nested
		return nested
	}
}

func appendMessages(existing any, msgs []string) []string {
	current, _ := existing.([]string)
	return MergeMessages(current, msgs...)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return nil
	}

	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":    {},
		"request": {},
		"payload": {},
		"data":    {},
	}

	out := segments
	for len(out) > 1 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors", ErrorsKey:
		return true
	default:
		return false
	}
}

// messages flattens an error entry into the AST message list.
// messages returns the message list held by entry. Lists are passed through
// element for element; their items may be strings or any other descriptor.
// Maps contribute only their ErrorsKey entry.
func messages(entry any) []any {
	switch v := entry.(type) {
	case nil:
		return []any{}
	case string:
		return []any{v}
	case []string:
		out := make([]any, len(v))
		for idx, msg := range v {
			out[idx] = msg
		}
		return out
	case []any:
		return append([]any{}, v...)
	case map[string]any:
		return messages(v[ErrorsKey])
	case map[string][]string:
		return messages(v[ErrorsKey])
	}

	rv := reflect.ValueOf(entry)
	if kind := rv.Kind(); kind == reflect.Slice || kind == reflect.Array {
		out := make([]any, rv.Len())
		for idx := range out {
			out[idx] = rv.Index(idx).Interface()
		}
		return out
	}
	return []any{entry}
}

// collectionMessages returns the messages of a repeatable group. A list of
// per-occurrence error maps carries no collection messages.
func collectionMessages(entry any) []any {
	switch v := entry.(type) {
	case []map[string]any, map[int]any:
		return []any{}
	case []any:
		if isOccurrenceList(v) {
			return []any{}
		}
	}
	return messages(entry)
}

func nestedErrors(entry any) map[string]any {
	switch v := entry.(type) {
	case map[string]any:
		return v
	case map[string][]string:
		out := make(map[string]any, len(v))
		for key, msgs := range v {
			out[key] = msgs
		}
		return out
	default:
		return nil
	}
}

func nestedMap(entry any) map[string]any {
	switch v := entry.(type) {
	case map[string]any:
		return v
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = value
		}
		return out
	default:
		return nil
	}
}

func occurrences(entry any) []map[string]any {
	switch v := entry.(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, len(v))
		for idx, item := range v {
			out[idx] = nestedMap(item)
		}
		return out
	default:
		return nil
	}
}

func occurrenceErrors(entry any, idx int) map[string]any {
	switch v := entry.(type) {
	case map[string]any:
		return nestedErrors(v[strconv.Itoa(idx)])
	case map[int]any:
		return nestedErrors(v[idx])
	case []map[string]any:
		if idx < len(v) {
			return v[idx]
		}
	case []any:
		if idx < len(v) && isOccurrenceList(v) {
			return nestedErrors(v[idx])
		}
	}
	return nil
}

// isOccurrenceList reports whether items holds one error map (or nil) per
// occurrence rather than messages.
func isOccurrenceList(items []any) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		switch item.(type) {
		case nil, map[string]any, map[string][]string:
		default:
			return false
		}
	}
	return true
}
