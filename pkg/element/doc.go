// Package element holds the declaration model for form elements.
//
// A Descriptor identifies an element kind: its symbolic type name, its
// attribute Schema (merged along an explicit parent chain) and the
// PermittedChildren policy applied to elements nested inside it. Descriptors
// are immutable once defined and are published through a Registry keyed by
// type name.
//
// Declared trees are made of Definition nodes whose raw attribute values may
// include Deferred references. Binding a Definition against a Dependencies bag
// produces a parallel tree of Resolved nodes with defaults applied, deferred
// values looked up and every value passed through its attribute type.
package element
