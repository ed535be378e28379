package form

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formalist/pkg/element"
	"github.com/goliatone/go-formalist/pkg/elements"
	"github.com/goliatone/go-formalist/pkg/result"
)

// Option customises a Form.
type Option func(*Form)

// WithRegistry sets the registry used to resolve element type names. The
// standard registry is used when omitted.
func WithRegistry(registry *element.Registry) Option {
	return func(f *Form) {
		f.registry = registry
	}
}

// WithPermittedChildren sets the policy for top-level elements.
func WithPermittedChildren(policy element.PermittedChildren) Option {
	return func(f *Form) {
		f.policy = policy
	}
}

// WithLogger routes declaration and build events to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Form) {
		f.logger = logger
	}
}

// WithName labels the form in log events and errors.
func WithName(name string) Option {
	return func(f *Form) {
		f.name = name
	}
}

// Form is a declared form. Its definitions are built on first use and reused
// for every build.
type Form struct {
	name     string
	block    Block
	registry *element.Registry
	policy   element.PermittedChildren
	logger   zerolog.Logger

	once        sync.Once
	definitions []*element.Definition
	err         error
}

// Define declares a form from block.
func Define(block Block, options ...Option) *Form {
	f := &Form{
		block:  block,
		policy: element.PermitAll(),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.registry == nil {
		f.registry = elements.DefaultRegistry()
	}
	return f
}

// Name returns the form label set with WithName.
func (f *Form) Name() string { return f.name }

// Registry returns the registry used for declarations.
func (f *Form) Registry() *element.Registry { return f.registry }

// Definitions evaluates the declaration block once and returns the top-level
// definitions in declaration order.
func (f *Form) Definitions() ([]*element.Definition, error) {
	f.once.Do(func() {
		defs, err := NewContext(f.registry, f.policy).Eval(f.block)
		if err != nil {
			f.err = f.wrap("declare", err)
			f.logger.Error().Err(err).Str("form", f.name).Msg("form declaration failed")
			return
		}
		f.definitions = defs
		f.logger.Debug().Str("form", f.name).Int("elements", len(defs)).Msg("form declared")
	})
	if f.err != nil {
		return nil, f.err
	}
	return append([]*element.Definition(nil), f.definitions...), nil
}

// New returns an instance carrying dependencies and a rule source.
func (f *Form) New(options ...InstanceOption) *Instance {
	inst := &Instance{form: f}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(inst)
	}
	return inst
}

// Build builds an instance without dependencies or rules.
func (f *Form) Build(input, errors map[string]any) (*result.Result, error) {
	return f.New().Build(input, errors)
}

func (f *Form) wrap(stage string, err error) error {
	if f.name == "" {
		return fmt.Errorf("form: %s: %w", stage, err)
	}
	return fmt.Errorf("form %q: %s: %w", f.name, stage, err)
}

// InstanceOption customises an Instance.
type InstanceOption func(*Instance)

// WithDependencies supplies values for Deferred attributes.
func WithDependencies(deps element.Dependencies) InstanceOption {
	return func(i *Instance) {
		i.deps = deps
	}
}

// WithRules supplies rule descriptors for every datum.
func WithRules(rules result.RuleSet) InstanceOption {
	return func(i *Instance) {
		i.rules = rules
	}
}

// Instance is a Form bound to its runtime collaborators.
type Instance struct {
	form  *Form
	deps  element.Dependencies
	rules result.RuleSet
}

// Bind resolves the form's definitions against the instance dependencies.
// Each call returns a fresh tree.
func (i *Instance) Bind() ([]*element.Resolved, error) {
	if i == nil || i.form == nil {
		return nil, errors.New("form: instance has no form")
	}
	defs, err := i.form.Definitions()
	if err != nil {
		return nil, err
	}
	resolved, err := element.BindAll(defs, i.deps)
	if err != nil {
		i.form.logger.Error().Err(err).Str("form", i.form.name).Msg("form bind failed")
		return nil, i.form.wrap("bind", err)
	}
	return resolved, nil
}

// Build binds the form and resolves it against input and errors. Neither map
// is modified.
func (i *Instance) Build(input, errors map[string]any) (*result.Result, error) {
	resolved, err := i.Bind()
	if err != nil {
		return nil, err
	}
	return result.New(resolved, input, errors, i.rules), nil
}
