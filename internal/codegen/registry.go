// Package codegen renders the enum registry into Go source: typed constants,
// name tables, per-platform availability and constructor lookup tables.
package codegen

import (
	_ "embed"
	"strings"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"sigs.k8s.io/yaml"
)

//go:embed schema.yaml
var schemaYAML []byte

var schema *gojsonschema.Schema

func init() {
	data, err := yaml.YAMLToJSON(schemaYAML)
	if err != nil {
		panic(err)
	}
	schema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(err)
	}
}

// Registry is the metadata the generator consumes.
type Registry struct {
	Package string `json:"package"`
	Enums   []Enum `json:"enums"`
}

type Enum struct {
	Name string `json:"name"`
	// Doc is emitted verbatim as the type's doc comment.
	Doc string `json:"doc,omitempty"`
	// Factory makes the enum a table enum: one constructor slot per value.
	Factory *Factory `json:"factory,omitempty"`
	Values  []Value  `json:"values"`
}

// Factory names the constructor type stored in the lookup table and the
// type those constructors return.
type Factory struct {
	Type   string `json:"type"`
	Result string `json:"result"`
}

type Value struct {
	Name    string `json:"name"`
	Display string `json:"display,omitempty"`
	// Platforms lists the GOOS values the entry is available on. Empty means
	// every platform.
	Platforms   []string `json:"platforms,omitempty"`
	Constructor string   `json:"constructor,omitempty"`
}

// Validate checks raw registry YAML against the registry schema.
func Validate(src []byte) error {
	data, err := yaml.YAMLToJSON(src)
	if err != nil {
		return err
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}
	if !res.Valid() {
		errs := res.Errors()
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.String())
		}
		return errors.Errorf("invalid registry: %s", strings.Join(msgs, ";"))
	}
	return nil
}

// Parse validates and decodes a registry, filling in default display names.
func Parse(src []byte) (*Registry, error) {
	if err := Validate(src); err != nil {
		return nil, err
	}
	reg := &Registry{}
	if err := yaml.Unmarshal(src, reg); err != nil {
		return nil, errors.Wrap(err, "decoding registry")
	}
	if err := reg.complete(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Load reads and parses the registry at path.
func Load(fs vfs.FileSystem, path string) (*Registry, error) {
	src, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading registry %s", path)
	}
	reg, err := Parse(src)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return reg, nil
}

// complete applies the rules the schema cannot express.
func (r *Registry) complete() error {
	enums := make(map[string]bool, len(r.Enums))
	for i := range r.Enums {
		e := &r.Enums[i]
		if enums[e.Name] {
			return errors.Errorf("enum %s declared twice", e.Name)
		}
		enums[e.Name] = true

		names := make(map[string]bool, len(e.Values))
		displays := make(map[string]bool, len(e.Values))
		for j := range e.Values {
			v := &e.Values[j]
			if v.Display == "" {
				v.Display = strings.ToLower(v.Name)
			}
			if names[v.Name] {
				return errors.Errorf("%s: value %s declared twice", e.Name, v.Name)
			}
			if displays[v.Display] {
				return errors.Errorf("%s: display name %q declared twice", e.Name, v.Display)
			}
			names[v.Name] = true
			displays[v.Display] = true
			if v.Constructor != "" && e.Factory == nil {
				return errors.Errorf("%s: value %s has a constructor but the enum has no factory", e.Name, v.Name)
			}
		}
	}
	return nil
}
