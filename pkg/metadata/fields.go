package metadata

// Kind is the value shape of a field on the wire.
type Kind string

// Field kinds. The values double as JSON Schema type names.
const (
	KindString Kind = "string"
	KindBool   Kind = "boolean"
	KindUint   Kind = "integer"
	KindList   Kind = "array"
	KindRecord Kind = "object"
)

// Field describes one field of a record: its wire name, shape,
// documentation and the least strict mode that requires it.
type Field struct {
	Name        string // Wire name.
	Kind        Kind
	Ref         string // Record name for KindRecord fields and KindList items.
	Description string

	requiredFrom Mode
}

// Required reports whether the field must be present under mode.
func (f Field) Required(mode Mode) bool {
	return mode >= f.requiredFrom
}

// RecordSpec describes one record type of the document.
type RecordSpec struct {
	Name        string
	Description string
	Fields      []Field
}

// Field returns the field with the given wire name.
func (r RecordSpec) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredFields lists the wire names required under mode, in
// declaration order. Returns an empty slice (not nil) when none are.
func (r RecordSpec) RequiredFields(mode Mode) []string {
	names := []string{}
	for _, f := range r.Fields {
		if f.Required(mode) {
			names = append(names, f.Name)
		}
	}
	return names
}

// Record names.
const (
	RecordMetadata   = "Metadata"
	RecordAttribute  = "Attribute"
	RecordProperties = "Properties"
	RecordAssetFile  = "AssetFile"
)

var (
	fieldName = Field{Name: "name", Kind: KindString, requiredFrom: ModeStrict,
		Description: "Name of the asset"}
	fieldDescription = Field{Name: "description", Kind: KindString, requiredFrom: ModeStrict,
		Description: "Description of the asset"}
	fieldImage = Field{Name: "image", Kind: KindString, requiredFrom: ModeStrict,
		Description: "URI pointing to the asset's logo"}
	fieldAnimationURL = Field{Name: "animation_url", Kind: KindString, requiredFrom: ModeStrict,
		Description: "URI pointing to the asset's animation"}
	fieldExternalURL = Field{Name: "external_url", Kind: KindString, requiredFrom: ModeStrict,
		Description: "URI pointing to an external URL defining the asset"}
	fieldAttributes = Field{Name: "attributes", Kind: KindList, Ref: RecordAttribute, requiredFrom: ModeStrict,
		Description: "Array of attributes defining the characteristics of the asset"}
	fieldProperties = Field{Name: "properties", Kind: KindRecord, Ref: RecordProperties, requiredFrom: ModeStrict,
		Description: "Additional properties that define the asset"}

	fieldTraitType = Field{Name: "trait_type", Kind: KindString, requiredFrom: ModeSemiStrict,
		Description: "The type of attribute"}
	fieldValue = Field{Name: "value", Kind: KindString, requiredFrom: ModeSemiStrict,
		Description: "The value for that attribute"}

	fieldCategory = Field{Name: "category", Kind: KindString, requiredFrom: ModeSemiStrict,
		Description: "A media category for the asset"}
	fieldFiles = Field{Name: "files", Kind: KindList, Ref: RecordAssetFile, requiredFrom: ModeSemiStrict,
		Description: "Additional files to include with the asset"}

	fieldURI = Field{Name: "uri", Kind: KindString, requiredFrom: ModeSemiStrict,
		Description: "The file's URI"}
	fieldFileType = Field{Name: "type", Kind: KindString, requiredFrom: ModeSemiStrict,
		Description: "The file's type"}
	fieldCDN = Field{Name: "cdn", Kind: KindBool, requiredFrom: modeNever,
		Description: "Whether the file is served from a CDN"}
	fieldResolution = Field{Name: "resolution", Kind: KindString, requiredFrom: modeNever,
		Description: "Defines the file's resolution if applicable"}
	fieldSize = Field{Name: "size", Kind: KindUint, requiredFrom: modeNever,
		Description: "The file's size in bytes if applicable"}
)

var (
	metadataRecord = RecordSpec{
		Name:        RecordMetadata,
		Description: "Metadata describing a digital asset",
		Fields: []Field{
			fieldName, fieldDescription, fieldImage, fieldAnimationURL,
			fieldExternalURL, fieldAttributes, fieldProperties,
		},
	}
	attributeRecord = RecordSpec{
		Name:        RecordAttribute,
		Description: "A characteristic of the asset",
		Fields:      []Field{fieldTraitType, fieldValue},
	}
	propertiesRecord = RecordSpec{
		Name:        RecordProperties,
		Description: "Auxiliary properties of the asset",
		Fields:      []Field{fieldCategory, fieldFiles},
	}
	assetFileRecord = RecordSpec{
		Name:        RecordAssetFile,
		Description: "A file associated with the asset",
		Fields:      []Field{fieldURI, fieldFileType, fieldCDN, fieldResolution, fieldSize},
	}
)

// Records returns the field table for all four record types, root first.
func Records() []RecordSpec {
	return []RecordSpec{metadataRecord, attributeRecord, propertiesRecord, assetFileRecord}
}

// LookupRecord returns the record with the given name.
// Returns ErrUnknownRecord if there is none.
func LookupRecord(name string) (RecordSpec, error) {
	for _, r := range Records() {
		if r.Name == name {
			return r, nil
		}
	}
	return RecordSpec{}, ErrUnknownRecord
}
