package element

import (
	"errors"

	"github.com/goliatone/go-formalist/pkg/types"
)

// Kind selects how an element resolves against input and errors.
type Kind int

const (
	// KindInherit defers to the parent descriptor (KindField at the root).
	KindInherit Kind = iota
	// KindField is a leaf carrying one input value.
	KindField
	// KindSection is a named layout container; children read the same input.
	KindSection
	// KindGroup is an unnamed layout row; children read the same input.
	KindGroup
	// KindAttr is a nested object; children read input[name].
	KindAttr
	// KindMany is a repeatable group; children resolve once per input item.
	KindMany
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindSection:
		return "section"
	case KindGroup:
		return "group"
	case KindAttr:
		return "attr"
	case KindMany:
		return "many"
	default:
		return "inherit"
	}
}

// Option configures a Descriptor while it is being defined.
type Option func(*Descriptor)

// Extends sets the parent descriptor whose schema (and kind) are inherited.
func Extends(parent *Descriptor) Option {
	return func(d *Descriptor) {
		d.parent = parent
	}
}

// Attr declares an attribute. Redeclaring a name replaces the earlier entry.
func Attr(name string, typ types.Type, defaultValue any) Option {
	return func(d *Descriptor) {
		d.own = d.own.With(Attribute{Name: name, Type: typ, Default: defaultValue})
	}
}

// Permit sets the policy for child elements. Policies are not inherited: a
// descriptor without Permit allows all children.
func Permit(policy PermittedChildren) Option {
	return func(d *Descriptor) {
		d.children = policy
	}
}

// OfKind sets the resolution kind.
func OfKind(kind Kind) Option {
	return func(d *Descriptor) {
		d.kind = kind
	}
}

// Descriptor is an immutable element type declaration.
type Descriptor struct {
	typeName string
	parent   *Descriptor
	own      Schema
	children PermittedChildren
	kind     Kind
}

// Define creates a descriptor. name is normalised with TypeName.
func Define(name string, options ...Option) (*Descriptor, error) {
	typeName := TypeName(name)
	if typeName == "" {
		return nil, errors.New("element: type name is required")
	}
	d := &Descriptor{typeName: typeName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d, nil
}

// MustDefine panics when Define fails. Useful for package-level declarations.
func MustDefine(name string, options ...Option) *Descriptor {
	d, err := Define(name, options...)
	if err != nil {
		panic(err)
	}
	return d
}

// TypeName returns the normalised symbolic type name.
func (d *Descriptor) TypeName() string { return d.typeName }

// Parent returns the descriptor this one extends, or nil.
func (d *Descriptor) Parent() *Descriptor { return d.parent }

// OwnSchema returns the attributes declared directly on d.
func (d *Descriptor) OwnSchema() Schema { return d.own }

// Schema returns the effective schema: the parent's effective schema merged
// with d's own attributes. It is computed on every call.
func (d *Descriptor) Schema() Schema {
	if d.parent == nil {
		return d.own
	}
	return d.parent.Schema().Merge(d.own)
}

// PermittedChildren returns the child policy (allow-all when unset).
func (d *Descriptor) PermittedChildren() PermittedChildren { return d.children }

// Kind returns the resolution kind, walking the parent chain when unset.
func (d *Descriptor) Kind() Kind {
	for cur := d; cur != nil; cur = cur.parent {
		if cur.kind != KindInherit {
			return cur.kind
		}
	}
	return KindField
}

// Is reports whether d is other or extends it.
func (d *Descriptor) Is(other *Descriptor) bool {
	for cur := d; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}
