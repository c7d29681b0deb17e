package metadata

import "fmt"

// SchemaDraft is the JSON Schema dialect of generated schemas.
const SchemaDraft = "http://json-schema.org/draft-07/schema#"

// definitionsPrefix is the JSON pointer prefix of record references.
const definitionsPrefix = "#/definitions/"

// Schema is the subset of JSON Schema draft-07 used to describe the
// records. Type holds a string, or a []string for nullable fields.
type Schema struct {
	SchemaURI   string             `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	Ref         string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Title       string             `json:"title,omitempty" yaml:"title,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Type        any                `json:"type,omitempty" yaml:"type,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	AnyOf       []*Schema          `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty" yaml:"definitions,omitempty"`
}

// Nullable reports whether the schema admits null.
func (s *Schema) Nullable() bool {
	if types, ok := s.Type.([]string); ok {
		for _, t := range types {
			if t == "null" {
				return true
			}
		}
	}
	for _, alt := range s.AnyOf {
		if alt.Type == "null" {
			return true
		}
	}
	return false
}

// GenerateSchema returns the schema of a Metadata document under mode,
// with Attribute, Properties and AssetFile under definitions.
func GenerateSchema(mode Mode) *Schema {
	s, _ := RecordSchema(RecordMetadata, mode)
	return s
}

// RecordSchema returns a schema rooted at the named record. All records
// are listed under definitions so references resolve.
// Returns ErrUnknownRecord if name is not a record name.
func RecordSchema(name string, mode Mode) (*Schema, error) {
	rec, err := LookupRecord(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, name)
	}
	root := recordSchema(rec, mode)
	root.SchemaURI = SchemaDraft
	root.Title = fmt.Sprintf("%s (%s)", rec.Name, mode)
	root.Definitions = make(map[string]*Schema, len(Records()))
	for _, r := range Records() {
		root.Definitions[r.Name] = recordSchema(r, mode)
	}
	return root, nil
}

func recordSchema(rec RecordSpec, mode Mode) *Schema {
	s := &Schema{
		Description: rec.Description,
		Type:        "object",
		Properties:  make(map[string]*Schema, len(rec.Fields)),
	}
	for _, f := range rec.Fields {
		s.Properties[f.Name] = fieldSchema(f, mode)
	}
	if req := rec.RequiredFields(mode); len(req) > 0 {
		s.Required = req
	}
	return s
}

func fieldSchema(f Field, mode Mode) *Schema {
	required := f.Required(mode)
	s := &Schema{Description: f.Description}

	if f.Kind == KindRecord {
		ref := &Schema{Ref: definitionsPrefix + f.Ref}
		if required {
			s.Ref = ref.Ref
			return s
		}
		s.AnyOf = []*Schema{ref, {Type: "null"}}
		return s
	}

	if required {
		s.Type = string(f.Kind)
	} else {
		s.Type = []string{string(f.Kind), "null"}
	}
	switch f.Kind {
	case KindList:
		s.Items = &Schema{Ref: definitionsPrefix + f.Ref}
	case KindUint:
		zero := 0.0
		s.Minimum = &zero
	}
	return s
}
