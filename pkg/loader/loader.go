package loader

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formalist/pkg/element"
	"github.com/goliatone/go-formalist/pkg/elements"
	"github.com/goliatone/go-formalist/pkg/form"
)

// DepKey marks an attribute value as a dependency reference.
const DepKey = "$dep"

// Store holds the forms declared by a set of documents.
type Store struct {
	forms   map[string]*form.Form
	sources map[string]string
}

// LoadFS walks fsys and loads every JSON/YAML document. A nil registry uses
// elements.DefaultRegistry. options apply to every loaded form; the form name
// and root policy always come from the document. Declarations are evaluated
// eagerly so invalid documents fail here.
func LoadFS(fsys fs.FS, registry *element.Registry, options ...form.Option) (*Store, error) {
	store := &Store{
		forms:   make(map[string]*form.Form),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}
	if registry == nil {
		registry = elements.DefaultRegistry()
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(doc.Forms))
		for id := range doc.Forms {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, rawID := range ids {
			id := strings.TrimSpace(rawID)
			if id == "" {
				return fmt.Errorf("loader: file %s defines an empty form id", path)
			}
			if prev, exists := store.sources[id]; exists {
				return fmt.Errorf("loader: duplicate form %q (file %s, first declared in %s)", id, path, prev)
			}
			f, err := buildForm(id, doc.Forms[rawID], registry, options)
			if err != nil {
				return fmt.Errorf("loader: file %s: %w", path, err)
			}
			store.forms[id] = f
			store.sources[id] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the form declared under id.
func (s *Store) Form(id string) (*form.Form, bool) {
	if s == nil {
		return nil, false
	}
	f, ok := s.forms[id]
	return f, ok
}

// Source returns the file that declared id.
func (s *Store) Source(id string) string {
	if s == nil {
		return ""
	}
	return s.sources[id]
}

// List returns the declared form ids in sorted order.
func (s *Store) List() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]formFile `mapstructure:"forms"`
}

type formFile struct {
	Permit   []string      `mapstructure:"permit"`
	Elements []elementFile `mapstructure:"elements"`
}

type elementFile struct {
	Type       string         `mapstructure:"type"`
	Name       string         `mapstructure:"name"`
	Attributes map[string]any `mapstructure:"attributes"`
	Elements   []elementFile  `mapstructure:"elements"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("loader: file %s is empty", source)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return documentFile{}, fmt.Errorf("loader: parse %s: invalid JSON or YAML", source)
		}
	}

	var doc documentFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return documentFile{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return documentFile{}, fmt.Errorf("loader: decode %s: %w", source, err)
	}
	return doc, nil
}

func buildForm(id string, raw formFile, registry *element.Registry, extra []form.Option) (*form.Form, error) {
	if err := checkElements(raw.Elements, id); err != nil {
		return nil, err
	}

	options := append([]form.Option{form.WithRegistry(registry)}, extra...)
	options = append(options, form.WithName(id))
	if len(raw.Permit) > 0 {
		options = append(options, form.WithPermittedChildren(element.PermitOnly(raw.Permit...)))
	}

	elems := raw.Elements
	f := form.Define(func(c *form.Context) { replay(c, elems) }, options...)
	if _, err := f.Definitions(); err != nil {
		return nil, err
	}
	return f, nil
}

func checkElements(elems []elementFile, where string) error {
	for idx, el := range elems {
		if strings.TrimSpace(el.Type) == "" {
			return fmt.Errorf("form %q: element %d has no type", where, idx)
		}
		if err := checkElements(el.Elements, where); err != nil {
			return err
		}
	}
	return nil
}

func replay(c *form.Context, elems []elementFile) {
	for _, el := range elems {
		args := make([]any, 0, 3)
		if el.Name != "" {
			args = append(args, el.Name)
		}
		args = append(args, attributes(el.Attributes))
		if len(el.Elements) > 0 {
			children := el.Elements
			args = append(args, form.Block(func(c *form.Context) { replay(c, children) }))
		}
		c.Add(el.Type, args...)
	}
}

func attributes(raw map[string]any) form.Attrs {
	attrs := make(form.Attrs, len(raw))
	for key, value := range raw {
		attrs[key] = attributeValue(value)
	}
	return attrs
}

func attributeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if name, ok := v[DepKey].(string); ok && len(v) == 1 {
			return element.Dep(name)
		}
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = attributeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = attributeValue(item)
		}
		return out
	default:
		return value
	}
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
