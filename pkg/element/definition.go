package element

import "sort"

// NameAttribute is the attribute that identifies an element's datum in input
// and error maps.
const NameAttribute = "name"

// Definition is an immutable declared node: an element type, raw attribute
// values (possibly Deferred) and ordered children.
type Definition struct {
	desc     *Descriptor
	attrs    map[string]any
	children []*Definition
}

// NewDefinition copies attrs and children into a new Definition.
func NewDefinition(desc *Descriptor, attrs map[string]any, children []*Definition) *Definition {
	copied := make(map[string]any, len(attrs))
	for key, value := range attrs {
		copied[key] = value
	}
	return &Definition{
		desc:     desc,
		attrs:    copied,
		children: append([]*Definition(nil), children...),
	}
}

// Type returns the element descriptor.
func (d *Definition) Type() *Descriptor { return d.desc }

// Name returns the name attribute when it is a literal string.
func (d *Definition) Name() string {
	name, _ := d.attrs[NameAttribute].(string)
	return name
}

// Attribute returns the raw value declared for name.
func (d *Definition) Attribute(name string) (any, bool) {
	value, ok := d.attrs[name]
	return value, ok
}

// Attributes returns a copy of the raw attribute values.
func (d *Definition) Attributes() map[string]any {
	out := make(map[string]any, len(d.attrs))
	for key, value := range d.attrs {
		out[key] = value
	}
	return out
}

// Children returns the child definitions in declaration order.
func (d *Definition) Children() []*Definition {
	return append([]*Definition(nil), d.children...)
}

func (d *Definition) attributeNames() []string {
	names := make([]string, 0, len(d.attrs))
	for name := range d.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Deferred is a placeholder for a value supplied by the dependency bag when a
// Definition is bound.
type Deferred struct {
	name string
}

// Dep references the dependency called name.
func Dep(name string) Deferred {
	return Deferred{name: name}
}

// Name returns the referenced dependency name.
func (d Deferred) Name() string { return d.name }

func (d Deferred) String() string { return "dep(" + d.name + ")" }

// Dependencies supplies values for Deferred references.
type Dependencies interface {
	Dependency(name string) (any, bool)
}

// Deps is a map-backed Dependencies bag.
type Deps map[string]any

// Dependency implements Dependencies.
func (d Deps) Dependency(name string) (any, bool) {
	value, ok := d[name]
	return value, ok
}

// DependencyFunc adapts a lookup function into Dependencies.
type DependencyFunc func(name string) (any, bool)

// Dependency calls the underlying function.
func (fn DependencyFunc) Dependency(name string) (any, bool) {
	return fn(name)
}
