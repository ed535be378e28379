// Package validation derives rule descriptors and error maps from a JSON
// schema. A Schema plugs into form instances as a result.RuleSet, and its
// Validate output has the nested shape result expects for the errors map.
package validation
