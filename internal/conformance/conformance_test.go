package conformance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/nftmeta/pkg/metadata"
)

const swordDoc = `{
	"name": "Sword",
	"description": "A sharp blade",
	"image": "ipfs://abc",
	"attributes": [{"trait_type": "Rarity", "value": "Legendary"}],
	"properties": {
		"category": "image",
		"files": [{"uri": "ipfs://def", "type": "image/png", "size": 2048}]
	}
}`

const completeDoc = `{
	"name": "", "description": "", "image": "", "animation_url": "", "external_url": "",
	"attributes": [], "properties": {"category": "", "files": []}
}`

func TestValidateScenario(t *testing.T) {
	v, err := New(metadata.ModeSemiStrict)
	require.NoError(t, err)
	assert.Equal(t, metadata.ModeSemiStrict, v.Mode())

	report, err := v.Validate([]byte(swordDoc))
	require.NoError(t, err)
	assert.True(t, report.Valid(), "problems: %v", report.Problems)
	assert.Equal(t, metadata.RecordMetadata, report.Record)
}

func TestValidateReportsMissingValue(t *testing.T) {
	v, err := New(metadata.ModeSemiStrict)
	require.NoError(t, err)

	report, err := v.Validate([]byte(`{"attributes":[{"trait_type":"Color"}]}`))
	require.NoError(t, err)
	require.False(t, report.Valid())
	require.Len(t, report.Problems, 1)
	assert.Contains(t, report.Problems[0].Description, "value")
	assert.Contains(t, report.Problems[0].String(), "attributes.0")
}

func TestValidateMalformedJSON(t *testing.T) {
	v, err := New(metadata.ModePermissive)
	require.NoError(t, err)
	_, err = v.Validate([]byte(`{"name":`))
	assert.Error(t, err)
}

func TestNewRejectsUnknownInputs(t *testing.T) {
	_, err := New(metadata.Mode(12))
	assert.ErrorIs(t, err, metadata.ErrUnknownMode)

	_, err = NewForRecord("Collection", metadata.ModeStrict)
	assert.ErrorIs(t, err, metadata.ErrUnknownRecord)
}

func TestValidateRecord(t *testing.T) {
	v, err := NewForRecord(metadata.RecordAssetFile, metadata.ModeStrict)
	require.NoError(t, err)

	report, err := v.Validate([]byte(`{"uri":"ipfs://x","type":"image/png","cdn":true}`))
	require.NoError(t, err)
	assert.True(t, report.Valid())

	report, err = v.Validate([]byte(`{"uri":"ipfs://x","cdn":"yes"}`))
	require.NoError(t, err)
	assert.Len(t, report.Problems, 2)
}

func TestValidateTreeFromYAML(t *testing.T) {
	var tree any
	require.NoError(t, yaml.Unmarshal([]byte("name: Sword\nattributes:\n  - trait_type: Rarity\n"), &tree))

	permissive, err := New(metadata.ModePermissive)
	require.NoError(t, err)
	report, err := permissive.ValidateTree(tree)
	require.NoError(t, err)
	assert.True(t, report.Valid())

	semi, err := New(metadata.ModeSemiStrict)
	require.NoError(t, err)
	report, err = semi.ValidateTree(tree)
	require.NoError(t, err)
	assert.False(t, report.Valid())
}

// The exported schema and the codec must accept exactly the same documents.
func TestSchemaAndCodecAgree(t *testing.T) {
	docs := map[string]string{
		"empty":                 `{}`,
		"scenario":              swordDoc,
		"complete empty values": completeDoc,
		"unknown keys":          `{"foo":1,"attributes":[{"trait_type":"a","value":"b","foo":1}]}`,
		"attribute no value":    `{"attributes":[{"trait_type":"Color"}]}`,
		"attribute null value":  `{"attributes":[{"trait_type":"Color","value":null}]}`,
		"null name":             `{"name":null}`,
		"numeric name":          `{"name":7}`,
		"null properties":       `{"properties":null}`,
		"properties no files":   `{"properties":{"category":"image"}}`,
		"negative size":         `{"properties":{"category":"c","files":[{"uri":"u","type":"t","size":-1}]}}`,
		"fractional size":       `{"properties":{"category":"c","files":[{"uri":"u","type":"t","size":1.5}]}}`,
		"decimal integral size": `{"properties":{"category":"c","files":[{"uri":"u","type":"t","size":2048.0}]}}`,
		"exponent size":         `{"properties":{"category":"c","files":[{"uri":"u","type":"t","size":1e3}]}}`,
		"negative zero size":    `{"properties":{"category":"c","files":[{"uri":"u","type":"t","size":-0}]}}`,
		"small exponent size":   `{"properties":{"category":"c","files":[{"uri":"u","type":"t","size":1e-3}]}}`,
		"text size":             `{"properties":{"category":"c","files":[{"uri":"u","type":"t","size":"1"}]}}`,
		"text cdn":              `{"properties":{"category":"c","files":[{"uri":"u","type":"t","cdn":"yes"}]}}`,
		"file no type":          `{"properties":{"category":"c","files":[{"uri":"u"}]}}`,
		"attributes object":     `{"attributes":{}}`,
		"root array":            `[]`,
		"root string":           `"Sword"`,
	}

	for _, mode := range metadata.Modes() {
		v, err := New(mode)
		require.NoError(t, err)
		for name, doc := range docs {
			t.Run(mode.String()+"/"+name, func(t *testing.T) {
				_, decodeErr := metadata.Unmarshal[metadata.Metadata]([]byte(doc), mode)
				report, err := v.Validate([]byte(doc))
				require.NoError(t, err)
				assert.Equal(t, decodeErr == nil, report.Valid(),
					"codec error: %v, schema problems: %v", decodeErr, report.Problems)
			})
		}
	}
}
