package result

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNestErrors(t *testing.T) {
	payload := map[string][]string{
		"title":                  {"title is missing", " title is missing "},
		"/body/reviews/0/rating": {"rating must be greater than or equal to 1"},
		"reviews[1].summary":     {"summary must be filled"},
		"reviews":                {"reviews must have 2 items"},
		"$.meta.pages":           {"pages must be filled"},
		"non_field_errors":       {"form is stale"},
		"":                       {"try again"},
		"ignored":                {"  "},
	}

	want := map[string]any{
		ErrorsKey: []string{"try again", "form is stale"},
		"title":   []string{"title is missing"},
		"reviews": map[string]any{
			ErrorsKey: []string{"reviews must have 2 items"},
			"0":       map[string]any{"rating": []string{"rating must be greater than or equal to 1"}},
			"1":       map[string]any{"summary": []string{"summary must be filled"}},
		},
		"meta": map[string]any{
			"pages": []string{"pages must be filled"},
		},
	}
	if diff := cmp.Diff(want, NestErrors(payload)); diff != "" {
		t.Fatalf("nested errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNestErrors_ParentAndChild(t *testing.T) {
	got := NestErrors(map[string][]string{
		"meta.pages": {"pages must be filled"},
		"meta":       {"meta is invalid"},
	})
	want := map[string]any{
		"meta": map[string]any{
			ErrorsKey: []string{"meta is invalid"},
			"pages":   []string{"pages must be filled"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("nested errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeMessages(t *testing.T) {
	merged := MergeMessages([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged messages mismatch (-want +got):\n%s", diff)
	}
}

func TestMessages(t *testing.T) {
	cases := []struct {
		name  string
		entry any
		want  []any
	}{
		{name: "nil", entry: nil, want: []any{}},
		{name: "single string", entry: "bad", want: []any{"bad"}},
		{name: "string slice", entry: []string{"a", "b"}, want: []any{"a", "b"}},
		{name: "any strings", entry: []any{"a"}, want: []any{"a"}},
		{name: "descriptors", entry: []any{map[string]any{"text": "too short", "code": 3}, 7}, want: []any{map[string]any{"text": "too short", "code": 3}, 7}},
		{name: "typed descriptor slice", entry: []map[string]string{{"text": "taken"}}, want: []any{map[string]string{"text": "taken"}}},
		{name: "single descriptor", entry: 42, want: []any{42}},
		{name: "nested map", entry: map[string]any{ErrorsKey: []string{"own"}, "child": []string{"x"}}, want: []any{"own"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, messages(tc.entry)); diff != "" {
			t.Errorf("%s: messages mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestCollectionMessages(t *testing.T) {
	cases := []struct {
		name  string
		entry any
		want  []any
	}{
		{name: "collection strings", entry: []any{"need two"}, want: []any{"need two"}},
		{name: "per occurrence list", entry: []any{nil, map[string]any{"x": []string{"y"}}}, want: []any{}},
		{name: "typed occurrence list", entry: []map[string]any{{"x": []string{"y"}}}, want: []any{}},
		{name: "int keyed", entry: map[int]any{0: map[string]any{}}, want: []any{}},
		{name: "index map", entry: map[string]any{ErrorsKey: []string{"own"}, "0": map[string]any{}}, want: []any{"own"}},
		{name: "descriptor", entry: []any{[]any{"min_size?", 2}}, want: []any{[]any{"min_size?", 2}}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, collectionMessages(tc.entry)); diff != "" {
			t.Errorf("%s: collection messages mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestOccurrenceErrors(t *testing.T) {
	byIndex := map[string]any{"1": map[string]any{"rating": []string{"bad"}}}
	if got := occurrenceErrors(byIndex, 1); got == nil || got["rating"] == nil {
		t.Fatalf("index keyed lookup failed: %#v", got)
	}
	if got := occurrenceErrors(byIndex, 0); got != nil {
		t.Fatalf("expected no errors for occurrence 0, got %#v", got)
	}

	list := []any{nil, map[string]any{"summary": []string{"empty"}}}
	if got := occurrenceErrors(list, 1); got == nil || got["summary"] == nil {
		t.Fatalf("list lookup failed: %#v", got)
	}
	if got := occurrenceErrors([]any{"collection message"}, 0); got != nil {
		t.Fatalf("message lists must not be treated as occurrences: %#v", got)
	}
	if got := occurrenceErrors(map[int]any{0: map[string]any{"x": []string{"y"}}}, 0); got == nil {
		t.Fatalf("int keyed lookup failed")
	}
}
