package element

// Resolved is a Definition bound to a dependency bag: every schema attribute
// holds its final value. Resolved trees are never shared between binds.
type Resolved struct {
	desc     *Descriptor
	values   map[string]any
	children []*Resolved
}

// Type returns the element descriptor.
func (r *Resolved) Type() *Descriptor { return r.desc }

// Name returns the resolved name attribute, or "" when unset.
func (r *Resolved) Name() string {
	name, _ := r.values[NameAttribute].(string)
	return name
}

// Value returns the final value of attribute name.
func (r *Resolved) Value(name string) any { return r.values[name] }

// Values returns a copy of all final attribute values.
func (r *Resolved) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for key, value := range r.values {
		out[key] = value
	}
	return out
}

// Children returns the resolved children in declaration order.
func (r *Resolved) Children() []*Resolved {
	return append([]*Resolved(nil), r.children...)
}

// Bind resolves d and its children against deps. Unset attributes take their
// schema default, Deferred values are looked up in deps and every non-nil
// value is passed through its attribute type. The Definition is not modified.
func (d *Definition) Bind(deps Dependencies) (*Resolved, error) {
	schema := d.desc.Schema()
	typeName := d.desc.TypeName()

	for _, name := range d.attributeNames() {
		if _, ok := schema.Lookup(name); !ok {
			return nil, &UnknownAttributeError{Element: typeName, Attribute: name}
		}
	}

	values := make(map[string]any, schema.Len())
	for _, attr := range schema.Attributes() {
		raw, ok := d.attrs[attr.Name]
		if !ok {
			raw = attr.Default
		}
		raw, err := resolveDeferred(deps, typeName, attr.Name, raw)
		if err != nil {
			return nil, err
		}
		value, err := coerce(typeName, attr, raw)
		if err != nil {
			return nil, err
		}
		values[attr.Name] = value
	}

	children := make([]*Resolved, 0, len(d.children))
	for _, child := range d.children {
		resolved, err := child.Bind(deps)
		if err != nil {
			return nil, err
		}
		children = append(children, resolved)
	}

	return &Resolved{desc: d.desc, values: values, children: children}, nil
}

// BindAll binds each definition in order.
func BindAll(defs []*Definition, deps Dependencies) ([]*Resolved, error) {
	out := make([]*Resolved, 0, len(defs))
	for _, def := range defs {
		resolved, err := def.Bind(deps)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

// resolveDeferred replaces Deferred values, including those nested in []any
// and map[string]any, with their dependency values. Containers are copied.
func resolveDeferred(deps Dependencies, typeName, attribute string, raw any) (any, error) {
	switch v := raw.(type) {
	case Deferred:
		resolved, found := lookup(deps, v.name)
		if !found {
			return nil, &MissingDependencyError{Element: typeName, Attribute: attribute, Name: v.name}
		}
		return resolved, nil
	case []any:
		out := make([]any, len(v))
		for idx, item := range v {
			resolved, err := resolveDeferred(deps, typeName, attribute, item)
			if err != nil {
				return nil, err
			}
			out[idx] = resolved
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			resolved, err := resolveDeferred(deps, typeName, attribute, item)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	default:
		return raw, nil
	}
}

func lookup(deps Dependencies, name string) (any, bool) {
	if deps == nil {
		return nil, false
	}
	return deps.Dependency(name)
}

func coerce(typeName string, attr Attribute, raw any) (any, error) {
	if raw == nil || attr.Type == nil {
		return raw, nil
	}
	value, err := attr.Type.Coerce(raw)
	if err != nil {
		return nil, &AttributeTypeError{
			Element:   typeName,
			Attribute: attr.Name,
			Value:     raw,
			Expected:  attr.Type.Name(),
			Err:       err,
		}
	}
	return value, nil
}
