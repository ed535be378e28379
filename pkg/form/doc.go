// Package form declares forms and builds them into result trees.
//
// A form is declared with a Block evaluated by a Context:
//
//	review := form.Define(func(c *form.Context) {
//		c.Field("title", form.Attrs{"type": "string"})
//		c.Many("reviews", func(c *form.Context) {
//			c.Field("summary")
//			c.Add("rich_text_area", "body", form.Attrs{"hint": c.Dep("body_hint")})
//		})
//	})
//
// Every call resolves its type name through an element.Registry and is
// checked against the permitted-children policy of the enclosing element
// before its nested block runs. The first failure stops the declaration and
// is returned by Form.Definitions and every Build.
//
// Definitions are computed once per Form. Building binds them against an
// instance's dependencies and resolves the bound tree against input and
// errors; builds share no mutable state and are safe to run concurrently.
package form
