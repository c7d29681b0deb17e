package metadata

import "gopkg.in/yaml.v3"

// encoding/json and yaml.v3 hooks. They apply DefaultMode so records can
// be embedded in other documents and marshalled with the standard calls.

func (m Metadata) MarshalJSON() ([]byte, error) { return Marshal(m, DefaultMode) }

func (m *Metadata) UnmarshalJSON(data []byte) error {
	return unmarshalInto(m, data)
}

func (m Metadata) MarshalYAML() (any, error) { return m.doc(DefaultMode), nil }

func (m *Metadata) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalNode(m, n)
}

func (a Attribute) MarshalJSON() ([]byte, error) { return Marshal(a, DefaultMode) }

func (a *Attribute) UnmarshalJSON(data []byte) error {
	return unmarshalInto(a, data)
}

func (a Attribute) MarshalYAML() (any, error) { return a.doc(DefaultMode), nil }

func (a *Attribute) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalNode(a, n)
}

func (p Properties) MarshalJSON() ([]byte, error) { return Marshal(p, DefaultMode) }

func (p *Properties) UnmarshalJSON(data []byte) error {
	return unmarshalInto(p, data)
}

func (p Properties) MarshalYAML() (any, error) { return p.doc(DefaultMode), nil }

func (p *Properties) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalNode(p, n)
}

func (f AssetFile) MarshalJSON() ([]byte, error) { return Marshal(f, DefaultMode) }

func (f *AssetFile) UnmarshalJSON(data []byte) error {
	return unmarshalInto(f, data)
}

func (f AssetFile) MarshalYAML() (any, error) { return f.doc(DefaultMode), nil }

func (f *AssetFile) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalNode(f, n)
}

func unmarshalInto[T Record](dst *T, data []byte) error {
	v, err := Unmarshal[T](data, DefaultMode)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func unmarshalNode[T Record](dst *T, n *yaml.Node) error {
	tree, err := nodeValue(n)
	if err != nil {
		return err
	}
	v, err := fromTree[T](tree, DefaultMode)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
