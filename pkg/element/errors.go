package element

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrContainment           = errors.New("element: containment violation")
	ErrUnknownElement        = errors.New("element: unknown element type")
	ErrMissingDependency     = errors.New("element: missing dependency")
	ErrAttributeType         = errors.New("element: attribute type mismatch")
	ErrUnknownAttribute      = errors.New("element: unknown attribute")
	ErrDuplicateRegistration = errors.New("element: duplicate registration")
)

// ContainmentError reports a child declared under a parent whose policy does
// not permit it. Parent is empty for the form root.
type ContainmentError struct {
	Parent string
	Child  string
}

func (e *ContainmentError) Error() string {
	parent := e.Parent
	if parent == "" {
		parent = "form root"
	}
	return fmt.Sprintf("element: %q is not permitted in %s", e.Child, parent)
}

func (e *ContainmentError) Is(target error) bool { return target == ErrContainment }

// UnknownElementError reports a declaration naming no registered type.
type UnknownElementError struct {
	Name string
}

func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("element: no element type registered as %q", e.Name)
}

func (e *UnknownElementError) Is(target error) bool { return target == ErrUnknownElement }

// MissingDependencyError reports a Deferred whose name the dependency bag
// does not provide.
type MissingDependencyError struct {
	Element   string
	Attribute string
	Name      string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("element: %s.%s depends on %q, which is not provided", e.Element, e.Attribute, e.Name)
}

func (e *MissingDependencyError) Is(target error) bool { return target == ErrMissingDependency }

// AttributeTypeError reports a value rejected by its attribute type.
type AttributeTypeError struct {
	Element   string
	Attribute string
	Value     any
	Expected  string
	Err       error
}

func (e *AttributeTypeError) Error() string {
	msg := fmt.Sprintf("element: %s.%s expects %s, got %#v", e.Element, e.Attribute, e.Expected, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AttributeTypeError) Unwrap() error { return e.Err }

func (e *AttributeTypeError) Is(target error) bool { return target == ErrAttributeType }

// UnknownAttributeError reports an attribute the element's schema does not
// declare.
type UnknownAttributeError struct {
	Element   string
	Attribute string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("element: %s has no attribute %q", e.Element, e.Attribute)
}

func (e *UnknownAttributeError) Is(target error) bool { return target == ErrUnknownAttribute }

// DuplicateRegistrationError reports a second registration of a type name.
type DuplicateRegistrationError struct {
	Name string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("element: %q already registered", e.Name)
}

func (e *DuplicateRegistrationError) Is(target error) bool {
	return target == ErrDuplicateRegistration
}
