package result

import (
	"encoding/json"

	"github.com/goliatone/go-formalist/pkg/element"
)

// RuleSet supplies opaque rule descriptors for the datum at path. Occurrence
// indices of repeatable groups are not part of the path.
type RuleSet interface {
	Rules(path []string) []any
}

// RuleSetFunc adapts a function into a RuleSet.
type RuleSetFunc func(path []string) []any

// Rules calls the underlying function.
func (fn RuleSetFunc) Rules(path []string) []any {
	return fn(path)
}

// Node is one resolved element.
type Node interface {
	Element() *element.Resolved
	AST() []any
}

// Result is the resolved form: one node per top-level element in declaration
// order. Results are built per call and never shared.
type Result struct {
	nodes []Node
}

// New resolves elements against input and errors. rules may be nil.
func New(elements []*element.Resolved, input, errors map[string]any, rules RuleSet) *Result {
	s := scope{rules: rules}
	return &Result{nodes: s.resolveAll(elements, input, errors)}
}

// Nodes returns the top-level nodes.
func (r *Result) Nodes() []Node {
	return append([]Node(nil), r.nodes...)
}

// AST returns the list of top-level node tuples.
func (r *Result) AST() []any {
	return astList(r.nodes)
}

// MarshalJSON encodes the AST.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.AST())
}

type scope struct {
	rules RuleSet
	path  []string
}

func (s scope) child(name string) scope {
	path := make([]string, len(s.path), len(s.path)+1)
	copy(path, s.path)
	return scope{rules: s.rules, path: append(path, name)}
}

func (s scope) rulesFor(name string) []any {
	if s.rules == nil {
		return []any{}
	}
	rules := s.rules.Rules(s.child(name).path)
	if rules == nil {
		return []any{}
	}
	return rules
}

func (s scope) resolveAll(elements []*element.Resolved, input, errors map[string]any) []Node {
	nodes := make([]Node, 0, len(elements))
	for _, el := range elements {
		nodes = append(nodes, s.resolve(el, input, errors))
	}
	return nodes
}

func (s scope) resolve(el *element.Resolved, input, errors map[string]any) Node {
	name := el.Name()
	switch el.Type().Kind() {
	case element.KindSection:
		return &Section{el: el, children: s.resolveAll(el.Children(), input, errors)}
	case element.KindGroup:
		return &Group{el: el, children: s.resolveAll(el.Children(), input, errors)}
	case element.KindAttr:
		nested := s.child(name)
		return &Attr{
			el:       el,
			rules:    s.rulesFor(name),
			errors:   messages(errors[name]),
			children: nested.resolveAll(el.Children(), nestedMap(input[name]), nestedErrors(errors[name])),
		}
	case element.KindMany:
		return s.resolveMany(el, input, errors)
	default:
		value, ok := input[name]
		if !ok {
			value = el.Value("default")
		}
		return &Field{
			el:     el,
			value:  value,
			rules:  s.rulesFor(name),
			errors: messages(errors[name]),
		}
	}
}

func (s scope) resolveMany(el *element.Resolved, input, errors map[string]any) Node {
	name := el.Name()
	nested := s.child(name)
	children := el.Children()

	items := occurrences(input[name])
	resolved := make([][]Node, 0, len(items))
	for idx, item := range items {
		resolved = append(resolved, nested.resolveAll(children, item, occurrenceErrors(errors[name], idx)))
	}

	return &Many{
		el:          el,
		rules:       s.rulesFor(name),
		errors:      collectionMessages(errors[name]),
		template:    nested.resolveAll(children, nil, nil),
		occurrences: resolved,
	}
}

func astList(nodes []Node) []any {
	out := make([]any, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.AST())
	}
	return out
}

// structural attributes have their own tuple slot or drive resolution.
var structural = map[string]struct{}{
	element.NameAttribute: {},
	"type":                {},
	"default":             {},
}

func config(el *element.Resolved) []any {
	out := []any{}
	for _, attr := range el.Type().Schema().Attributes() {
		if _, skip := structural[attr.Name]; skip {
			continue
		}
		value := el.Value(attr.Name)
		if value == nil {
			continue
		}
		out = append(out, []any{attr.Name, value})
	}
	return out
}

func nameSlot(el *element.Resolved) any {
	if name := el.Name(); name != "" {
		return name
	}
	return nil
}
