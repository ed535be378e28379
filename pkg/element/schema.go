package element

import "github.com/goliatone/go-formalist/pkg/types"

// Attribute is one attribute schema entry.
type Attribute struct {
	Name    string
	Type    types.Type
	Default any
}

// Schema is an ordered set of attributes keyed by name. The zero value is an
// empty schema. Schemas are values: every operation returns a new Schema.
type Schema struct {
	attrs []Attribute
}

// NewSchema builds a schema from attrs; later entries replace earlier ones
// with the same name.
func NewSchema(attrs ...Attribute) Schema {
	return Schema{}.With(attrs...)
}

// With returns a copy of s with attrs declared on top. A redeclared name keeps
// its original position and takes the new type and default.
func (s Schema) With(attrs ...Attribute) Schema {
	out := Schema{attrs: make([]Attribute, len(s.attrs), len(s.attrs)+len(attrs))}
	copy(out.attrs, s.attrs)
	for _, attr := range attrs {
		if attr.Name == "" {
			continue
		}
		if idx := out.index(attr.Name); idx >= 0 {
			out.attrs[idx] = attr
			continue
		}
		out.attrs = append(out.attrs, attr)
	}
	return out
}

// Merge returns s overridden by own: entries of own win on name collisions.
func (s Schema) Merge(own Schema) Schema {
	return s.With(own.attrs...)
}

// Lookup returns the attribute declared under name.
func (s Schema) Lookup(name string) (Attribute, bool) {
	if idx := s.index(name); idx >= 0 {
		return s.attrs[idx], true
	}
	return Attribute{}, false
}

// Attributes returns the entries in declaration order.
func (s Schema) Attributes() []Attribute {
	return append([]Attribute(nil), s.attrs...)
}

// Names returns the attribute names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s.attrs))
	for idx, attr := range s.attrs {
		names[idx] = attr.Name
	}
	return names
}

// Len reports the number of attributes.
func (s Schema) Len() int { return len(s.attrs) }

func (s Schema) index(name string) int {
	for idx, attr := range s.attrs {
		if attr.Name == name {
			return idx
		}
	}
	return -1
}
