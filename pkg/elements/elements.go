// Package elements declares the standard element kinds. They are plain
// descriptors: everything they do comes from their attribute schema, child
// policy and resolution kind.
package elements

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formalist/pkg/element"
	"github.com/goliatone/go-formalist/pkg/types"
)

// Element is the root of the standard hierarchy. It is not registered.
var Element = element.MustDefine("element",
	element.Attr(element.NameAttribute, types.Symbol, nil),
	element.Attr("label", types.String, nil),
)

// ValidationRules describes the inline rule map a field may carry in its
// validation attribute. Unknown keys are allowed.
var ValidationRules = openapi3.NewObjectSchema().
	WithProperty("filled", openapi3.NewBoolSchema()).
	WithProperty("min_size", openapi3.NewIntegerSchema().WithMin(0)).
	WithProperty("max_size", openapi3.NewIntegerSchema().WithMin(0)).
	WithProperty("gteq", openapi3.NewFloat64Schema()).
	WithProperty("lteq", openapi3.NewFloat64Schema()).
	WithProperty("format", openapi3.NewStringSchema()).
	WithProperty("included_in", openapi3.NewArraySchema())

// Leaf kinds.
var (
	Field = element.MustDefine("field",
		element.Extends(Element),
		element.OfKind(element.KindField),
		element.Attr("type", types.String, nil),
		element.Attr("default", types.Any, nil),
		element.Attr("hint", types.SafeHTML, nil),
		element.Attr("placeholder", types.String, nil),
		element.Attr("inline", types.Bool, nil),
		element.Attr("validation", types.JSONSchema(ValidationRules), nil),
		element.Permit(element.PermitNone()),
	)

	CheckBox = element.MustDefine("CheckBox",
		element.Extends(Element),
		element.OfKind(element.KindField),
		element.Attr("question_text", types.SafeHTML, nil),
		element.Permit(element.PermitNone()),
	)

	TextField = element.MustDefine("TextField",
		element.Extends(Field),
		element.Attr("password", types.Bool, nil),
		element.Attr("code", types.Bool, nil),
		element.Permit(element.PermitNone()),
	)

	TextArea = element.MustDefine("TextArea",
		element.Extends(Element),
		element.OfKind(element.KindField),
		element.Attr("box_size", types.Int, nil),
		element.Permit(element.PermitNone()),
	)

	RichTextArea = element.MustDefine("RichTextArea",
		element.Extends(Field),
		element.Attr("box_size", types.Enum(types.String, "single", "small", "normal", "large", "xlarge"), "normal"),
		element.Permit(element.PermitNone()),
	)

	SelectBox = element.MustDefine("SelectBox",
		element.Extends(Field),
		element.Attr("options", types.OptionsList, nil),
		element.Permit(element.PermitNone()),
	)

	SelectionField = element.MustDefine("SelectionField",
		element.Extends(Field),
		element.Attr("options", types.SelectionsList, nil),
		element.Attr("selector_label", types.String, nil),
		element.Attr("render_option_as", types.String, nil),
		element.Attr("render_selection_as", types.String, nil),
		element.Permit(element.PermitNone()),
	)

	MultiSelectionField = element.MustDefine("MultiSelectionField",
		element.Extends(SelectionField),
		element.Attr("sortable", types.Bool, nil),
		element.Permit(element.PermitNone()),
	)

	DateField = element.MustDefine("DateField",
		element.Extends(Field),
		element.Permit(element.PermitNone()),
	)

	HiddenField = element.MustDefine("HiddenField",
		element.Extends(Field),
		element.Permit(element.PermitNone()),
	)
)

// Leaves lists the leaf kinds permitted inside a Group.
var Leaves = []*element.Descriptor{
	Field, CheckBox, TextField, TextArea, RichTextArea, SelectBox,
	SelectionField, MultiSelectionField, DateField, HiddenField,
}

// Composite kinds.
var (
	Section = element.MustDefine("section",
		element.Extends(Element),
		element.OfKind(element.KindSection),
	)

	Group = element.MustDefine("group",
		element.Extends(Element),
		element.OfKind(element.KindGroup),
		element.Permit(element.PermitOnly(typeNames(Leaves)...)),
	)

	Attr = element.MustDefine("attr",
		element.Extends(Element),
		element.OfKind(element.KindAttr),
	)

	Many = element.MustDefine("many",
		element.Extends(Element),
		element.OfKind(element.KindMany),
		element.Attr("action_label", types.String, nil),
		element.Attr("placeholder", types.String, nil),
		element.Attr("allow_create", types.Bool, true),
		element.Attr("allow_update", types.Bool, true),
		element.Attr("allow_destroy", types.Bool, true),
		element.Attr("allow_reorder", types.Bool, true),
	)
)

// Standard lists every registered standard kind.
var Standard = append(append([]*element.Descriptor(nil), Leaves...), Section, Group, Attr, Many)

// DefaultRegistry returns a fresh registry holding the standard kinds under
// their type names. Callers may register custom kinds on the result.
func DefaultRegistry() *element.Registry {
	reg := element.NewRegistry()
	for _, d := range Standard {
		reg.MustRegister(d.TypeName(), d)
	}
	return reg
}

func typeNames(descriptors []*element.Descriptor) []string {
	names := make([]string, len(descriptors))
	for idx, d := range descriptors {
		names[idx] = d.TypeName()
	}
	return names
}
