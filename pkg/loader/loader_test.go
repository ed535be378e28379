package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formalist/pkg/element"
	"github.com/goliatone/go-formalist/pkg/form"
)

const articleYAML = `
forms:
  article:
    permit: [field, select_box, many]
    elements:
      - type: field
        name: title
        attributes:
          type: string
      - type: select_box
        name: category
        attributes:
          options: {$dep: categories}
      - type: many
        name: reviews
        attributes:
          allow_reorder: false
        elements:
          - type: field
            name: summary
`

const contactJSON = `{
  "forms": {
    "contact": {
      "elements": [
        {"type": "section", "name": "details", "attributes": {"label": "Details"}, "elements": [
          {"type": "text_area", "name": "message", "attributes": {"box_size": 4}}
        ]}
      ]
    }
  }
}`

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/article.yaml": {Data: []byte(articleYAML)},
		"forms/contact.json": {Data: []byte(contactJSON)},
		"forms/README.md":    {Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"article", "contact"}, store.List()); diff != "" {
		t.Fatalf("form ids mismatch (-want +got):\n%s", diff)
	}
	if got := store.Source("article"); got != "forms/article.yaml" {
		t.Fatalf("source: got %q", got)
	}
	if _, ok := store.Form("missing"); ok {
		t.Fatalf("expected missing form lookup to fail")
	}

	article, ok := store.Form("article")
	if !ok {
		t.Fatalf("article form not loaded")
	}
	if article.Name() != "article" {
		t.Fatalf("form name: got %q", article.Name())
	}

	deps := element.Deps{"categories": [][]string{{"1", "Fiction"}, {"2", "Essay"}}}
	res, err := article.New(form.WithDependencies(deps)).Build(map[string]any{
		"title":   "Dune",
		"reviews": []any{map[string]any{"summary": "Epic"}},
	}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	ast := res.AST()
	wantCategory := []any{"select_box", []any{
		"category", "select_box", nil, []any{}, []any{},
		[]any{[]any{"options", [][]string{{"1", "Fiction"}, {"2", "Essay"}}}},
	}}
	if diff := cmp.Diff(wantCategory, ast[1]); diff != "" {
		t.Fatalf("category node mismatch (-want +got):\n%s", diff)
	}

	reviews := ast[2].([]any)[1].([]any)
	wantConfig := []any{
		[]any{"allow_create", true},
		[]any{"allow_update", true},
		[]any{"allow_destroy", true},
		[]any{"allow_reorder", false},
	}
	if diff := cmp.Diff(wantConfig, reviews[4]); diff != "" {
		t.Fatalf("reviews config mismatch (-want +got):\n%s", diff)
	}
	if got := len(reviews[6].([]any)); got != 1 {
		t.Fatalf("reviews occurrences: want 1, got %d", got)
	}

	contact, _ := store.Form("contact")
	res, err = contact.Build(map[string]any{"message": "hi"}, nil)
	if err != nil {
		t.Fatalf("build contact: %v", err)
	}
	want := []any{[]any{"section", []any{"details", []any{
		[]any{"text_area", []any{"message", "text_area", "hi", []any{}, []any{}, []any{[]any{"box_size", 4}}}},
	}, []any{[]any{"label", "Details"}}}}}
	if diff := cmp.Diff(want, res.AST()); diff != "" {
		t.Fatalf("contact ast mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_MissingDependency(t *testing.T) {
	store, err := LoadFS(fstest.MapFS{"article.yml": {Data: []byte(articleYAML)}}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	article, _ := store.Form("article")
	_, err = article.Build(map[string]any{}, nil)
	if !errors.Is(err, element.ErrMissingDependency) {
		t.Fatalf("expected missing dependency, got %v", err)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := []struct {
		name     string
		files    fstest.MapFS
		sentinel error
		contains string
	}{
		{
			name: "duplicate form id",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("forms:\n  article:\n    elements: []\n")},
				"b.yaml": {Data: []byte("forms:\n  article:\n    elements: []\n")},
			},
			contains: `duplicate form "article"`,
		},
		{
			name:     "unknown element type",
			files:    fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  f:\n    elements:\n      - {type: carousel, name: x}\n")}},
			sentinel: element.ErrUnknownElement,
		},
		{
			name:     "containment violation",
			files:    fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  f:\n    elements:\n      - type: group\n        elements:\n          - {type: section, name: s}\n")}},
			sentinel: element.ErrContainment,
		},
		{
			name:     "root permit",
			files:    fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  f:\n    permit: [field]\n    elements:\n      - {type: section, name: s}\n")}},
			sentinel: element.ErrContainment,
		},
		{
			name:     "unknown key",
			files:    fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  f:\n    elements:\n      - {type: field, nmae: x}\n")}},
			contains: "decode a.yaml",
		},
		{
			name:     "missing type",
			files:    fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  f:\n    elements:\n      - {name: x}\n")}},
			contains: "has no type",
		},
		{
			name:     "empty file",
			files:    fstest.MapFS{"a.json": {Data: []byte("  \n")}},
			contains: "is empty",
		},
		{
			name:     "invalid document",
			files:    fstest.MapFS{"a.yaml": {Data: []byte("forms: [unclosed")}},
			contains: "invalid JSON or YAML",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFS(tc.files, nil)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.sentinel != nil && !errors.Is(err, tc.sentinel) {
				t.Fatalf("expected %v, got %v", tc.sentinel, err)
			}
			if tc.contains != "" && !strings.Contains(err.Error(), tc.contains) {
				t.Fatalf("expected error containing %q, got %v", tc.contains, err)
			}
		})
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := LoadFS(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() || len(store.List()) != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestAttributeValue(t *testing.T) {
	if got := attributeValue(map[string]any{DepKey: "tags"}); got != element.Dep("tags") {
		t.Fatalf("expected deferred, got %#v", got)
	}
	plain := map[string]any{DepKey: "tags", "extra": true}
	if diff := cmp.Diff(plain, attributeValue(plain)); diff != "" {
		t.Fatalf("plain map changed (-want +got):\n%s", diff)
	}

	nested := []any{
		[]any{"nz", map[string]any{DepKey: "nz_label"}},
		map[string]any{"inner": map[string]any{DepKey: "inner"}},
	}
	want := []any{
		[]any{"nz", element.Dep("nz_label")},
		map[string]any{"inner": element.Dep("inner")},
	}
	if diff := cmp.Diff(want, attributeValue(nested), cmp.AllowUnexported(element.Deferred{})); diff != "" {
		t.Fatalf("nested deps mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_NestedDependency(t *testing.T) {
	doc := `
forms:
  shipping:
    elements:
      - type: select_box
        name: country
        attributes:
          options:
            - [nz, {$dep: nz_label}]
            - [au, Australia]
`
	store, err := LoadFS(fstest.MapFS{"shipping.yaml": {Data: []byte(doc)}}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	shipping, _ := store.Form("shipping")
	res, err := shipping.New(form.WithDependencies(element.Deps{"nz_label": "New Zealand"})).Build(nil, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	config := res.AST()[0].([]any)[1].([]any)[5]
	want := []any{[]any{"options", [][]string{{"nz", "New Zealand"}, {"au", "Australia"}}}}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}
