package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// decoder walks a generic document tree (maps, slices and scalars) and
// builds records, enforcing the presence rules of mode.
type decoder struct {
	mode Mode
}

func (d decoder) metadata(v any, path string) (Metadata, error) {
	obj, err := d.object(v, "", path)
	if err != nil {
		return Metadata{}, err
	}

	var m Metadata
	texts := []struct {
		dst   **string
		field Field
	}{
		{&m.Name, fieldName},
		{&m.Description, fieldDescription},
		{&m.Image, fieldImage},
		{&m.AnimationURL, fieldAnimationURL},
		{&m.ExternalURL, fieldExternalURL},
	}
	for _, t := range texts {
		if *t.dst, err = d.text(obj, t.field, path); err != nil {
			return Metadata{}, err
		}
	}

	items, ok, err := d.list(obj, fieldAttributes, path)
	if err != nil {
		return Metadata{}, err
	}
	if ok {
		attrPath := joinPath(path, fieldAttributes.Name)
		m.Attributes = make([]Attribute, 0, len(items))
		for i, item := range items {
			a, err := d.attribute(item, indexPath(attrPath, i))
			if err != nil {
				return Metadata{}, err
			}
			m.Attributes = append(m.Attributes, a)
		}
	}

	raw, ok, err := d.lookup(obj, fieldProperties, path)
	if err != nil {
		return Metadata{}, err
	}
	if ok {
		p, err := d.properties(raw, joinPath(path, fieldProperties.Name))
		if err != nil {
			return Metadata{}, err
		}
		m.Properties = &p
	}
	return m, nil
}

func (d decoder) attribute(v any, path string) (Attribute, error) {
	obj, err := d.object(v, fieldAttributes.Name, path)
	if err != nil {
		return Attribute{}, err
	}
	var a Attribute
	if a.TraitType, err = d.text(obj, fieldTraitType, path); err != nil {
		return Attribute{}, err
	}
	if a.Value, err = d.text(obj, fieldValue, path); err != nil {
		return Attribute{}, err
	}
	return a, nil
}

func (d decoder) properties(v any, path string) (Properties, error) {
	obj, err := d.object(v, fieldProperties.Name, path)
	if err != nil {
		return Properties{}, err
	}
	var p Properties
	if p.Category, err = d.text(obj, fieldCategory, path); err != nil {
		return Properties{}, err
	}
	items, ok, err := d.list(obj, fieldFiles, path)
	if err != nil {
		return Properties{}, err
	}
	if ok {
		filesPath := joinPath(path, fieldFiles.Name)
		p.Files = make([]AssetFile, 0, len(items))
		for i, item := range items {
			f, err := d.assetFile(item, indexPath(filesPath, i))
			if err != nil {
				return Properties{}, err
			}
			p.Files = append(p.Files, f)
		}
	}
	return p, nil
}

func (d decoder) assetFile(v any, path string) (AssetFile, error) {
	obj, err := d.object(v, fieldFiles.Name, path)
	if err != nil {
		return AssetFile{}, err
	}
	var f AssetFile
	if f.URI, err = d.text(obj, fieldURI, path); err != nil {
		return AssetFile{}, err
	}
	if f.FileType, err = d.text(obj, fieldFileType, path); err != nil {
		return AssetFile{}, err
	}
	if f.CDN, err = d.boolean(obj, fieldCDN, path); err != nil {
		return AssetFile{}, err
	}
	if f.Resolution, err = d.text(obj, fieldResolution, path); err != nil {
		return AssetFile{}, err
	}
	if f.Size, err = d.uint(obj, fieldSize, path); err != nil {
		return AssetFile{}, err
	}
	return f, nil
}

// object asserts that v is a mapping. Keys that are not strings cannot
// name a field and are dropped along with other unknown keys.
func (d decoder) object(v any, name, path string) (map[string]any, error) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, nil
	case map[any]any:
		out := make(map[string]any, len(obj))
		for k, val := range obj {
			if s, ok := k.(string); ok {
				out[s] = val
			}
		}
		return out, nil
	}
	return nil, mismatch(name, path, "object", shapeOf(v))
}

// lookup returns the raw value of f. Absent and null both read as not
// set, which is an error only when mode requires f.
func (d decoder) lookup(obj map[string]any, f Field, path string) (any, bool, error) {
	v, ok := obj[f.Name]
	if !ok || v == nil {
		if f.Required(d.mode) {
			return nil, false, missing(f, joinPath(path, f.Name))
		}
		return nil, false, nil
	}
	return v, true, nil
}

func (d decoder) text(obj map[string]any, f Field, path string) (*string, error) {
	v, ok, err := d.lookup(obj, f, path)
	if err != nil || !ok {
		return nil, err
	}
	s, isText := v.(string)
	if !isText {
		return nil, mismatch(f.Name, joinPath(path, f.Name), "string", shapeOf(v))
	}
	return &s, nil
}

func (d decoder) boolean(obj map[string]any, f Field, path string) (*bool, error) {
	v, ok, err := d.lookup(obj, f, path)
	if err != nil || !ok {
		return nil, err
	}
	b, isBool := v.(bool)
	if !isBool {
		return nil, mismatch(f.Name, joinPath(path, f.Name), "boolean", shapeOf(v))
	}
	return &b, nil
}

func (d decoder) uint(obj map[string]any, f Field, path string) (*uint64, error) {
	v, ok, err := d.lookup(obj, f, path)
	if err != nil || !ok {
		return nil, err
	}
	n, isUint := toUint(v)
	if !isUint {
		return nil, mismatch(f.Name, joinPath(path, f.Name), "non-negative integer", describe(v))
	}
	return &n, nil
}

func (d decoder) list(obj map[string]any, f Field, path string) ([]any, bool, error) {
	v, ok, err := d.lookup(obj, f, path)
	if err != nil || !ok {
		return nil, false, err
	}
	items, isList := v.([]any)
	if !isList {
		return nil, false, mismatch(f.Name, joinPath(path, f.Name), "array", shapeOf(v))
	}
	return items, true, nil
}

// toUint accepts any non-negative integral number that fits in a
// uint64, whatever its spelling: 2048, 2048.0 and 2.048e3 are all 2048.
// Fractional, negative and overflowing values are rejected.
func toUint(v any) (uint64, bool) {
	switch n := v.(type) {
	case json.Number:
		return numberToUint(string(n))
	case int:
		return uint64(n), n >= 0
	case int64:
		return uint64(n), n >= 0
	case uint64:
		return n, true
	case float64:
		if n < 0 || n >= twoTo64 || n != math.Trunc(n) {
			return 0, false
		}
		return uint64(n), true
	}
	return 0, false
}

// twoTo64 is the smallest float64 that does not fit in a uint64.
const twoTo64 = float64(1 << 64)

// maxExponent bounds the exponent of a number token so big.Rat never
// expands a short token like 1e999999999 into a huge integer.
const maxExponent = 400

func numberToUint(s string) (uint64, bool) {
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u, true
	}
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		exp, err := strconv.Atoi(s[i+1:])
		if err != nil || exp > maxExponent || exp < -maxExponent {
			return 0, false
		}
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok || !r.IsInt() || r.Sign() < 0 || !r.Num().IsUint64() {
		return 0, false
	}
	return r.Num().Uint64(), true
}

func shapeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, int, int64, uint64, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// describe is shapeOf with the literal appended for numbers, so a bad
// size reads as "number -3" rather than just "number".
func describe(v any) string {
	switch n := v.(type) {
	case json.Number, int, int64, uint64:
		return fmt.Sprintf("number %v", n)
	case float64:
		return "number " + strconv.FormatFloat(n, 'g', -1, 64)
	}
	return shapeOf(v)
}

// parseJSON decodes data into a generic tree, keeping numbers as
// json.Number so sizes are not rounded through float64.
func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("parse json document: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse json document: unexpected data after top-level value")
	}
	return tree, nil
}

// parseYAML decodes data into the same generic tree shape parseJSON
// produces. An empty input yields a nil tree.
func parseYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml document: %w", err)
	}
	return nodeValue(&root)
}

// nodeValue converts a yaml node to a generic tree.
func nodeValue(n *yaml.Node) (any, error) {
	w := yamlWalker{active: make(map[*yaml.Node]bool)}
	return w.value(n)
}

// yamlWalker expands aliases itself, so it carries the same guards the
// yaml.v3 decoder applies: no recursive anchors and no alias bombs.
type yamlWalker struct {
	active     map[*yaml.Node]bool // anchored nodes on the current path
	aliasDepth int
	nodes      int // nodes visited
	aliased    int // nodes visited through an alias
}

// allowedAliasRatio mirrors yaml.v3: small documents may be mostly
// aliases, large ones may not.
func allowedAliasRatio(nodes int) float64 {
	switch {
	case nodes <= 400_000:
		return 0.99
	case nodes >= 4_000_000:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(nodes-400_000)/3_600_000)
	}
}

// value converts n to a generic tree. Scalars other than null, bool,
// int and float are kept as their source text, so a name that looks
// like a timestamp is still a string.
func (w *yamlWalker) value(n *yaml.Node) (any, error) {
	w.nodes++
	if w.aliasDepth > 0 {
		w.aliased++
	}
	if w.aliased > 100 && w.nodes > 1000 && float64(w.aliased)/float64(w.nodes) > allowedAliasRatio(w.nodes) {
		return nil, errors.New("parse yaml document: document contains excessive aliasing")
	}
	if n.Anchor != "" {
		w.active[n] = true
		defer delete(w.active, n)
	}

	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.value(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("parse yaml document: unknown anchor %q at line %d", n.Value, n.Line)
		}
		if w.active[n.Alias] {
			return nil, fmt.Errorf("parse yaml document: anchor %q is used inside itself at line %d", n.Value, n.Line)
		}
		w.aliasDepth++
		defer func() { w.aliasDepth-- }()
		return w.value(n.Alias)
	case yaml.MappingNode:
		obj := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := w.value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj[n.Content[i].Value] = val
		}
		return obj, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := w.value(c)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		return items, nil
	case yaml.ScalarNode:
		return scalarValue(n)
	}
	return nil, fmt.Errorf("parse yaml document: unsupported node kind %d at line %d", n.Kind, n.Line)
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return nil, err
		}
		return u, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	}
	return n.Value, nil
}
