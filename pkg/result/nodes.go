package result

import "github.com/goliatone/go-formalist/pkg/element"

// Field is a leaf node.
type Field struct {
	el     *element.Resolved
	value  any
	rules  []any
	errors []any
}

func (f *Field) Element() *element.Resolved { return f.el }

// Value returns the input value, or the default attribute when the input has
// no entry for the field.
func (f *Field) Value() any { return f.value }

// Errors returns the field's messages.
func (f *Field) Errors() []any { return f.errors }

func (f *Field) AST() []any {
	typeName := f.el.Type().TypeName()
	return []any{typeName, []any{nameSlot(f.el), typeName, f.value, f.rules, f.errors, config(f.el)}}
}

// Section is a named layout node.
type Section struct {
	el       *element.Resolved
	children []Node
}

func (s *Section) Element() *element.Resolved { return s.el }

// Children returns the child nodes in declaration order.
func (s *Section) Children() []Node { return append([]Node(nil), s.children...) }

func (s *Section) AST() []any {
	return []any{s.el.Type().TypeName(), []any{nameSlot(s.el), astList(s.children), config(s.el)}}
}

// Group is a layout row. Its name slot is nil unless a name is declared.
type Group struct {
	el       *element.Resolved
	children []Node
}

func (g *Group) Element() *element.Resolved { return g.el }

// Children returns the child nodes in declaration order.
func (g *Group) Children() []Node { return append([]Node(nil), g.children...) }

func (g *Group) AST() []any {
	return []any{g.el.Type().TypeName(), []any{nameSlot(g.el), astList(g.children), config(g.el)}}
}

// Attr is a nested object node.
type Attr struct {
	el       *element.Resolved
	rules    []any
	errors   []any
	children []Node
}

func (a *Attr) Element() *element.Resolved { return a.el }

// Children returns the child nodes in declaration order.
func (a *Attr) Children() []Node { return append([]Node(nil), a.children...) }

func (a *Attr) AST() []any {
	typeName := a.el.Type().TypeName()
	return []any{typeName, []any{nameSlot(a.el), typeName, a.rules, a.errors, config(a.el), astList(a.children)}}
}

// Many is a repeatable group node.
type Many struct {
	el          *element.Resolved
	rules       []any
	errors      []any
	template    []Node
	occurrences [][]Node
}

func (m *Many) Element() *element.Resolved { return m.el }

// Template returns the children resolved without input.
func (m *Many) Template() []Node { return append([]Node(nil), m.template...) }

// Occurrences returns one child list per input item.
func (m *Many) Occurrences() [][]Node { return append([][]Node(nil), m.occurrences...) }

func (m *Many) AST() []any {
	typeName := m.el.Type().TypeName()
	occurrences := make([]any, 0, len(m.occurrences))
	for _, children := range m.occurrences {
		occurrences = append(occurrences, astList(children))
	}
	return []any{typeName, []any{
		nameSlot(m.el), typeName, m.rules, m.errors, config(m.el), astList(m.template), occurrences,
	}}
}
