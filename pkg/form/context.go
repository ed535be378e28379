package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formalist/pkg/element"
)

// ErrContextEvaluated is returned when a Context is evaluated twice.
var ErrContextEvaluated = errors.New("form: definition context already evaluated")

// Attrs holds named attribute values for a declaration call.
type Attrs = map[string]any

// Block is a declaration block.
type Block func(c *Context)

type declState struct {
	err error
}

// Context evaluates declaration blocks into Definitions. It is single-use.
type Context struct {
	registry  *element.Registry
	policy    element.PermittedChildren
	parent    string
	elements  []*element.Definition
	state     *declState
	evaluated bool
}

// NewContext returns a root context resolving names through registry and
// admitting top-level elements according to policy.
func NewContext(registry *element.Registry, policy element.PermittedChildren) *Context {
	return &Context{
		registry: registry,
		policy:   policy,
		state:    &declState{},
	}
}

// Eval runs block and returns the declared definitions in call order.
func (c *Context) Eval(block Block) ([]*element.Definition, error) {
	if c.evaluated {
		return nil, ErrContextEvaluated
	}
	c.evaluated = true
	if block != nil {
		block(c)
	}
	if err := c.state.err; err != nil {
		return nil, err
	}
	return c.Elements(), nil
}

// Elements returns the definitions declared so far at this level.
func (c *Context) Elements() []*element.Definition {
	return append([]*element.Definition(nil), c.elements...)
}

// Err returns the first declaration failure, if any.
func (c *Context) Err() error { return c.state.err }

// Dep returns a Deferred reference to the named dependency.
func (c *Context) Dep(name string) element.Deferred {
	return element.Dep(name)
}

// Add declares an element of the registered type typeName. args accepts, in
// any order after the optional leading name: Attrs (merged, later maps win)
// and one nested Block. A leading argument that is neither becomes the name
// attribute unless Attrs sets "name" explicitly.
func (c *Context) Add(typeName string, args ...any) {
	if c.state.err != nil {
		return
	}
	if c.registry == nil {
		c.fail(errors.New("form: element registry is nil"))
		return
	}

	desc, err := c.registry.Lookup(typeName)
	if err != nil {
		c.fail(err)
		return
	}
	key := element.TypeName(typeName)
	if !c.policy.Permits(key) {
		c.fail(&element.ContainmentError{Parent: c.parent, Child: key})
		return
	}

	attrs, block, err := parseArgs(typeName, args)
	if err != nil {
		c.fail(err)
		return
	}

	child := &Context{
		registry:  c.registry,
		policy:    desc.PermittedChildren(),
		parent:    key,
		state:     c.state,
		evaluated: true,
	}
	if block != nil {
		block(child)
	}
	if c.state.err != nil {
		return
	}

	c.elements = append(c.elements, element.NewDefinition(desc, attrs, child.elements))
}

// Field declares a field.
func (c *Context) Field(args ...any) { c.Add("field", args...) }

// Section declares a section.
func (c *Context) Section(args ...any) { c.Add("section", args...) }

// Group declares a group.
func (c *Context) Group(args ...any) { c.Add("group", args...) }

// Attr declares a nested object.
func (c *Context) Attr(args ...any) { c.Add("attr", args...) }

// Many declares a repeatable group.
func (c *Context) Many(args ...any) { c.Add("many", args...) }

func (c *Context) fail(err error) {
	if c.state.err == nil {
		c.state.err = err
	}
}

func parseArgs(typeName string, args []any) (map[string]any, Block, error) {
	attrs := make(map[string]any)
	var (
		name    any
		hasName bool
		block   Block
	)

	for idx, arg := range args {
		switch v := arg.(type) {
		case map[string]any:
			for key, value := range v {
				attrs[key] = value
			}
		case Block:
			if block != nil {
				return nil, nil, fmt.Errorf("form: %s: more than one nested block", typeName)
			}
			block = v
		case func(*Context):
			if block != nil {
				return nil, nil, fmt.Errorf("form: %s: more than one nested block", typeName)
			}
			block = v
		default:
			if idx != 0 {
				return nil, nil, fmt.Errorf("form: %s: unexpected argument %#v at position %d", typeName, arg, idx)
			}
			name, hasName = v, true
		}
	}

	if _, explicit := attrs[element.NameAttribute]; hasName && !explicit {
		attrs[element.NameAttribute] = name
	}
	return attrs, block, nil
}
