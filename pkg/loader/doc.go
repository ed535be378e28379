// Package loader reads declarative form documents from an fs.FS.
//
// A document lists forms by id:
//
//	forms:
//	  article:
//	    permit: [field, section, many]
//	    elements:
//	      - type: field
//	        name: title
//	        attributes: {type: string}
//	      - type: select_box
//	        name: category
//	        attributes:
//	          options: {$dep: categories}
//	      - type: many
//	        name: reviews
//	        elements:
//	          - {type: field, name: summary}
//
// Each form replays its elements through a form.Context, so declaration
// errors are the same as for forms written in Go. A {$dep: name} value becomes
// an element.Deferred resolved at bind time, whether it is a whole attribute
// or nested inside a list or map.
package loader
