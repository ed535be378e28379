package element

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formalist/pkg/types"
)

var (
	testField = MustDefine("field",
		Attr("name", types.Symbol, nil),
		Attr("label", types.String, nil),
		Attr("box_size", types.Enum(types.String, "small", "normal"), "normal"),
		Attr("options", types.OptionsList, nil),
	)
	testSection = MustDefine("section",
		Attr("name", types.Symbol, nil),
		OfKind(KindSection),
	)
)

var compareResolved = []cmp.Option{
	cmp.AllowUnexported(Resolved{}),
	cmp.Comparer(func(a, b *Descriptor) bool { return a == b }),
}

func TestBind_DefaultsDeferredAndCoercion(t *testing.T) {
	def := NewDefinition(testSection, map[string]any{"name": "main"}, []*Definition{
		NewDefinition(testField, map[string]any{
			"name":    "country",
			"options": Dep("countries"),
		}, nil),
		NewDefinition(testField, map[string]any{"name": "notes", "box_size": "small"}, nil),
	})

	deps := Deps{"countries": []any{[]any{"nz", "New Zealand"}}}
	resolved, err := def.Bind(deps)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	children := resolved.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}

	wantCountry := map[string]any{
		"name":     "country",
		"label":    nil,
		"box_size": "normal",
		"options":  [][]string{{"nz", "New Zealand"}},
	}
	if diff := cmp.Diff(wantCountry, children[0].Values()); diff != "" {
		t.Fatalf("country values mismatch (-want +got):\n%s", diff)
	}
	if children[1].Value("box_size") != "small" || children[1].Name() != "notes" {
		t.Fatalf("notes values: %#v", children[1].Values())
	}

	if _, isDeferred := def.Children()[0].Attributes()["options"].(Deferred); !isDeferred {
		t.Fatalf("bind mutated the definition tree")
	}
}

func TestBind_Deterministic(t *testing.T) {
	def := NewDefinition(testSection, map[string]any{"name": "main"}, []*Definition{
		NewDefinition(testField, map[string]any{"name": "a", "label": Dep("label")}, nil),
		NewDefinition(testField, map[string]any{"name": "b"}, nil),
	})
	deps := Deps{"label": "Label A"}

	first, err := def.Bind(deps)
	if err != nil {
		t.Fatalf("first bind: %v", err)
	}
	second, err := def.Bind(deps)
	if err != nil {
		t.Fatalf("second bind: %v", err)
	}
	if first == second {
		t.Fatalf("bind must allocate a fresh tree")
	}
	if diff := cmp.Diff(first, second, compareResolved...); diff != "" {
		t.Fatalf("binds differ (-first +second):\n%s", diff)
	}
}

func TestBind_Errors(t *testing.T) {
	cases := []struct {
		name  string
		def   *Definition
		deps  Dependencies
		check func(t *testing.T, err error)
	}{
		{
			name: "missing dependency",
			def:  NewDefinition(testField, map[string]any{"name": "x", "label": Dep("nope")}, nil),
			deps: Deps{},
			check: func(t *testing.T, err error) {
				var target *MissingDependencyError
				if !errors.As(err, &target) || target.Name != "nope" || target.Attribute != "label" {
					t.Fatalf("expected missing dependency for label, got %v", err)
				}
			},
		},
		{
			name: "nil dependency bag",
			def:  NewDefinition(testField, map[string]any{"label": Dep("label")}, nil),
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrMissingDependency) {
					t.Fatalf("expected missing dependency, got %v", err)
				}
			},
		},
		{
			name: "attribute type",
			def:  NewDefinition(testField, map[string]any{"name": "x", "box_size": "huge"}, nil),
			check: func(t *testing.T, err error) {
				var target *AttributeTypeError
				if !errors.As(err, &target) {
					t.Fatalf("expected attribute type error, got %v", err)
				}
				if target.Element != "field" || target.Attribute != "box_size" || target.Value != "huge" {
					t.Fatalf("attribute type error missing context: %+v", target)
				}
				if target.Expected == "" {
					t.Fatalf("attribute type error missing expected type")
				}
			},
		},
		{
			name: "deferred value type checked",
			def:  NewDefinition(testField, map[string]any{"label": Dep("label")}, nil),
			deps: Deps{"label": 42},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrAttributeType) {
					t.Fatalf("expected attribute type error, got %v", err)
				}
			},
		},
		{
			name: "unknown attribute",
			def:  NewDefinition(testField, map[string]any{"colour": "red"}, nil),
			check: func(t *testing.T, err error) {
				var target *UnknownAttributeError
				if !errors.As(err, &target) || target.Attribute != "colour" {
					t.Fatalf("expected unknown attribute error, got %v", err)
				}
			},
		},
		{
			name: "child failure surfaces",
			def: NewDefinition(testSection, map[string]any{"name": "s"}, []*Definition{
				NewDefinition(testField, map[string]any{"name": 12}, nil),
			}),
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrAttributeType) {
					t.Fatalf("expected child attribute error, got %v", err)
				}
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			resolved, err := tc.def.Bind(tc.deps)
			if err == nil {
				t.Fatalf("expected error, got %#v", resolved)
			}
			tc.check(t, err)
		})
	}
}

func TestBindAll_PreservesOrder(t *testing.T) {
	defs := []*Definition{
		NewDefinition(testField, map[string]any{"name": "a"}, nil),
		NewDefinition(testField, map[string]any{"name": "b"}, nil),
		NewDefinition(testSection, map[string]any{"name": "c"}, nil),
	}
	resolved, err := BindAll(defs, nil)
	if err != nil {
		t.Fatalf("bind all: %v", err)
	}
	var names []string
	for _, r := range resolved {
		names = append(names, r.Name())
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_NestedDeferred(t *testing.T) {
	options := []any{
		[]any{"nz", Dep("nz_label")},
		[]any{"au", "Australia"},
	}
	def := NewDefinition(testField, map[string]any{"name": "country", "options": options}, nil)

	resolved, err := def.Bind(Deps{"nz_label": "New Zealand"})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	want := [][]string{{"nz", "New Zealand"}, {"au", "Australia"}}
	if diff := cmp.Diff(want, resolved.Value("options")); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if _, ok := options[0].([]any)[1].(Deferred); !ok {
		t.Fatalf("definition attributes were modified: %#v", options)
	}

	_, err = def.Bind(Deps{})
	var missing *MissingDependencyError
	if !errors.As(err, &missing) || missing.Attribute != "options" || missing.Name != "nz_label" {
		t.Fatalf("expected missing nz_label for options, got %v", err)
	}
}
