// Package result resolves bound element trees against an input map and an
// error map into the tagged-tuple AST consumed by renderers.
//
// Every node serialises as [type, [...]] where the inner list depends on the
// element kind:
//
//	field:   [name, type, value, rules, errors, config]
//	section: [name, children, config]
//	group:   [name, children, config]
//	attr:    [name, type, rules, errors, config, children]
//	many:    [name, type, rules, errors, config, template, occurrences]
//
// config is a list of [attribute, value] pairs for every non-nil attribute
// except name, type and default, which shape the tuple itself. Children always follow declaration order; occurrences follow
// input order.
//
// Error maps mirror the input shape: a leaf holds a list of messages, an attr
// holds a nested map and a many holds either a list of collection messages or
// a map keyed by occurrence index ("0", "1", ...). Messages about an object or
// collection itself live under ErrorsKey.
package result
