// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package save

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/riftwalk/riftwalk/internal/interaction"
)

// SchemaID is the $id of the save schema.
const SchemaID = "https://riftwalk.dev/schemas/save.schema.json"

var (
	compileOnce sync.Once
	compiled    *jschema.Schema
	compileErr  error
)

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
}

// variantSchema reflects one interaction state body without its own
// $schema and $id.
func variantSchema(v any) *jsonschema.Schema {
	s := reflector().Reflect(v)
	s.Version = ""
	s.ID = ""
	return s
}

// stateEntrySchema describes [id, {"Variant": {...}}].
func stateEntrySchema() *jsonschema.Schema {
	variants := []struct {
		name string
		body any
	}{
		{"Door", &interaction.DoorState{}},
		{"Lever", &interaction.LeverState{}},
		{"Button", &interaction.ButtonState{}},
		{"Container", &interaction.ContainerState{}},
	}
	oneOf := make([]*jsonschema.Schema, 0, len(variants))
	for _, v := range variants {
		props := jsonschema.NewProperties()
		props.Set(v.name, variantSchema(v.body))
		oneOf = append(oneOf, &jsonschema.Schema{
			Type:       "object",
			Properties: props,
			Required:   []string{v.name},
		})
	}
	return &jsonschema.Schema{
		Type: "array",
		PrefixItems: []*jsonschema.Schema{
			{Type: "integer", Minimum: json.Number("0")},
			{OneOf: oneOf},
		},
	}
}

// Schema reflects the save envelope.
func Schema() *jsonschema.Schema {
	r := reflector()
	entry := reflect.TypeFor[interaction.StateEntry]()
	r.Mapper = func(t reflect.Type) *jsonschema.Schema {
		if t == entry {
			return stateEntrySchema()
		}
		return nil
	}
	s := r.Reflect(&Data{})
	s.ID = jsonschema.ID(SchemaID)
	s.Title = "Riftwalk Save"
	s.Description = "Save file envelope"
	return s
}

// GenerateSchema renders Schema as indented JSON.
func GenerateSchema() ([]byte, error) {
	b, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, oops.Code("SAVE_SERIALIZATION").Wrapf(err, "marshal save schema")
	}
	return b, nil
}

func compiledSchema() (*jschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := GenerateSchema()
		if err != nil {
			compileErr = err
			return
		}
		doc, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = oops.Code("SAVE_INVALID").Wrapf(err, "parse save schema")
			return
		}
		c := jschema.NewCompiler()
		if err := c.AddResource(SchemaID, doc); err != nil {
			compileErr = oops.Code("SAVE_INVALID").Wrapf(err, "add save schema")
			return
		}
		compiled, compileErr = c.Compile(SchemaID)
		if compileErr != nil {
			compileErr = oops.Code("SAVE_INVALID").Wrapf(compileErr, "compile save schema")
		}
	})
	return compiled, compileErr
}

// Validate checks raw JSON against the save schema.
func Validate(raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return oops.Code("SAVE_INVALID").Errorf("save data is empty")
	}
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	doc, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return oops.Code("SAVE_SERIALIZATION").Wrapf(err, "parse save")
	}
	if err := sch.Validate(doc); err != nil {
		return oops.Code("SAVE_INVALID").Wrapf(err, "save does not match schema")
	}
	return nil
}
