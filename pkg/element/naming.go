package element

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// TypeName normalises a declaring name into the symbolic identifier used as
// registry key and AST tag. Namespace qualifiers are dropped and camelCase is
// split on word boundaries:
//
//	TypeName("MultiSelectionField")       // "multi_selection_field"
//	TypeName("elements.CheckBox")         // "check_box"
//	TypeName("rich-text area")            // "rich_text_area"
func TypeName(name string) string {
	trimmed := demodulize(strings.TrimSpace(name))
	if trimmed == "" {
		return ""
	}

	var segments []string
	for _, word := range splitWordsPattern.Split(trimmed, -1) {
		if word == "" {
			continue
		}
		segments = append(segments, strings.ToLower(splitCamel(word)))
	}
	return strings.Join(segments, "_")
}

func demodulize(name string) string {
	if idx := strings.LastIndexAny(name, ".:/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune('_')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	if (isLower(prev) || isDigit(prev)) && isUpper(r) {
		return true
	}
	// Acronym followed by a word: "HTMLField" splits before "F".
	if isUpper(prev) && isUpper(r) && index+1 < len(input) && isLower(rune(input[index+1])) {
		return true
	}
	return false
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
