// Package types provides the value types used by element attribute schemas.
// A Type validates a raw attribute value and returns its coerced form; the
// element package reports failures as attribute type errors naming the
// attribute, the element type and the offending value. nil is always accepted
// and means the attribute is unset.
package types
