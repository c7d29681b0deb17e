// Package conformance checks third-party metadata documents against the
// JSON Schema exported by pkg/metadata, without going through the codec.
package conformance

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mesh-intelligence/nftmeta/pkg/metadata"
)

// Problem is one schema violation.
type Problem struct {
	Field       string `json:"field"`       // Dotted location, "(root)" for the document itself.
	Description string `json:"description"` // Validator message.
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Field, p.Description)
}

// Report is the outcome of validating one document.
type Report struct {
	Record   string        `json:"record"`
	Mode     metadata.Mode `json:"mode"`
	Problems []Problem     `json:"problems"`
}

// Valid reports whether the document had no problems.
func (r *Report) Valid() bool {
	return len(r.Problems) == 0
}

// Validator validates documents against one record schema under one mode.
// A Validator is safe for concurrent use.
type Validator struct {
	record string
	mode   metadata.Mode
	schema *gojsonschema.Schema
}

// New returns a Validator for Metadata documents under mode.
func New(mode metadata.Mode) (*Validator, error) {
	return NewForRecord(metadata.RecordMetadata, mode)
}

// NewForRecord returns a Validator rooted at the named record.
// Returns metadata.ErrUnknownRecord for an unknown name and
// metadata.ErrUnknownMode for an invalid mode.
func NewForRecord(record string, mode metadata.Mode) (*Validator, error) {
	if !mode.Valid() {
		return nil, metadata.ErrUnknownMode
	}
	s, err := metadata.RecordSchema(record, mode)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", record, err)
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", record, err)
	}
	return &Validator{record: record, mode: mode, schema: compiled}, nil
}

// Mode returns the policy mode the validator enforces.
func (v *Validator) Mode() metadata.Mode { return v.mode }

// Validate checks a JSON document. Schema violations are reported in the
// Report; the error is non-nil only when doc is not well-formed JSON.
func (v *Validator) Validate(doc []byte) (*Report, error) {
	return v.validate(gojsonschema.NewBytesLoader(doc))
}

// ValidateTree checks a document already decoded into Go values, such as
// the result of yaml.Unmarshal into an any.
func (v *Validator) ValidateTree(tree any) (*Report, error) {
	return v.validate(gojsonschema.NewGoLoader(tree))
}

func (v *Validator) validate(loader gojsonschema.JSONLoader) (*Report, error) {
	result, err := v.schema.Validate(loader)
	if err != nil {
		return nil, fmt.Errorf("validate %s document: %w", v.record, err)
	}
	report := &Report{Record: v.record, Mode: v.mode, Problems: []Problem{}}
	for _, e := range result.Errors() {
		report.Problems = append(report.Problems, Problem{
			Field:       e.Field(),
			Description: e.Description(),
		})
	}
	return report, nil
}
