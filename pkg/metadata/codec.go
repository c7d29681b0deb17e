package metadata

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Record is the set of record types the codec accepts.
type Record interface {
	Metadata | Attribute | Properties | AssetFile
}

// Marshal encodes v as JSON under mode. Unset optional fields are
// omitted, unset required fields are written empty, and AssetFile's
// FileType is written as "type".
func Marshal[T Record](v T, mode Mode) ([]byte, error) {
	doc, err := toDoc(v, mode)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent[T Record](v T, mode Mode, prefix, indent string) ([]byte, error) {
	doc, err := toDoc(v, mode)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, prefix, indent)
}

// MarshalYAML encodes v as YAML under mode with the same field rules as
// Marshal.
func MarshalYAML[T Record](v T, mode Mode) ([]byte, error) {
	doc, err := toDoc(v, mode)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// Unmarshal decodes a JSON document under mode. It returns a
// *MissingFieldError when a required field is absent or null and a
// *TypeMismatchError when a value has the wrong shape. Unknown keys are
// ignored.
func Unmarshal[T Record](data []byte, mode Mode) (T, error) {
	var zero T
	if !mode.Valid() {
		return zero, ErrUnknownMode
	}
	tree, err := parseJSON(data)
	if err != nil {
		return zero, err
	}
	return fromTree[T](tree, mode)
}

// UnmarshalYAML decodes a YAML document under mode with the same rules
// as Unmarshal.
func UnmarshalYAML[T Record](data []byte, mode Mode) (T, error) {
	var zero T
	if !mode.Valid() {
		return zero, ErrUnknownMode
	}
	tree, err := parseYAML(data)
	if err != nil {
		return zero, err
	}
	return fromTree[T](tree, mode)
}

// Decode builds a record from a generic tree such as the result of
// json.Unmarshal into an any. Numbers may be json.Number, int, int64,
// uint64 or float64; an integer field accepts a float64 only when it is
// integral and in range, so sizes above 2^53 need json.Number to stay
// exact.
func Decode[T Record](tree any, mode Mode) (T, error) {
	var zero T
	if !mode.Valid() {
		return zero, ErrUnknownMode
	}
	return fromTree[T](tree, mode)
}

func toDoc(v any, mode Mode) (any, error) {
	if !mode.Valid() {
		return nil, ErrUnknownMode
	}
	switch r := v.(type) {
	case Metadata:
		return r.doc(mode), nil
	case Attribute:
		return r.doc(mode), nil
	case Properties:
		return r.doc(mode), nil
	case AssetFile:
		return r.doc(mode), nil
	}
	return nil, ErrUnsupportedDoc
}

func fromTree[T Record](tree any, mode Mode) (T, error) {
	var out T
	d := decoder{mode: mode}

	var (
		v   any
		err error
	)
	switch any(out).(type) {
	case Metadata:
		v, err = d.metadata(tree, "")
	case Attribute:
		v, err = d.attribute(tree, "")
	case Properties:
		v, err = d.properties(tree, "")
	case AssetFile:
		v, err = d.assetFile(tree, "")
	default:
		return out, ErrUnsupportedDoc
	}
	if err != nil {
		return out, err
	}
	return v.(T), nil
}
