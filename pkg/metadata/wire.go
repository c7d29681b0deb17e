package metadata

// Wire documents mirror the records field for field with the external
// labels. Unset optional fields stay nil and are omitted; unset required
// fields are filled with empty values so they are always written.

type metadataDoc struct {
	Name         *string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description  *string         `json:"description,omitempty" yaml:"description,omitempty"`
	Image        *string         `json:"image,omitempty" yaml:"image,omitempty"`
	AnimationURL *string         `json:"animation_url,omitempty" yaml:"animation_url,omitempty"`
	ExternalURL  *string         `json:"external_url,omitempty" yaml:"external_url,omitempty"`
	Attributes   *[]attributeDoc `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Properties   *propertiesDoc  `json:"properties,omitempty" yaml:"properties,omitempty"`
}

type attributeDoc struct {
	TraitType *string `json:"trait_type,omitempty" yaml:"trait_type,omitempty"`
	Value     *string `json:"value,omitempty" yaml:"value,omitempty"`
}

type propertiesDoc struct {
	Category *string         `json:"category,omitempty" yaml:"category,omitempty"`
	Files    *[]assetFileDoc `json:"files,omitempty" yaml:"files,omitempty"`
}

type assetFileDoc struct {
	URI        *string `json:"uri,omitempty" yaml:"uri,omitempty"`
	FileType   *string `json:"type,omitempty" yaml:"type,omitempty"`
	CDN        *bool   `json:"cdn,omitempty" yaml:"cdn,omitempty"`
	Resolution *string `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Size       *uint64 `json:"size,omitempty" yaml:"size,omitempty"`
}

func (m Metadata) doc(mode Mode) metadataDoc {
	d := metadataDoc{
		Name:         emit(m.Name, fieldName, mode),
		Description:  emit(m.Description, fieldDescription, mode),
		Image:        emit(m.Image, fieldImage, mode),
		AnimationURL: emit(m.AnimationURL, fieldAnimationURL, mode),
		ExternalURL:  emit(m.ExternalURL, fieldExternalURL, mode),
	}
	if m.Attributes != nil || fieldAttributes.Required(mode) {
		attrs := make([]attributeDoc, 0, len(m.Attributes))
		for _, a := range m.Attributes {
			attrs = append(attrs, a.doc(mode))
		}
		d.Attributes = &attrs
	}
	switch {
	case m.Properties != nil:
		p := m.Properties.doc(mode)
		d.Properties = &p
	case fieldProperties.Required(mode):
		p := Properties{}.doc(mode)
		d.Properties = &p
	}
	return d
}

func (a Attribute) doc(mode Mode) attributeDoc {
	return attributeDoc{
		TraitType: emit(a.TraitType, fieldTraitType, mode),
		Value:     emit(a.Value, fieldValue, mode),
	}
}

func (p Properties) doc(mode Mode) propertiesDoc {
	d := propertiesDoc{
		Category: emit(p.Category, fieldCategory, mode),
	}
	if p.Files != nil || fieldFiles.Required(mode) {
		files := make([]assetFileDoc, 0, len(p.Files))
		for _, f := range p.Files {
			files = append(files, f.doc(mode))
		}
		d.Files = &files
	}
	return d
}

func (f AssetFile) doc(mode Mode) assetFileDoc {
	return assetFileDoc{
		URI:        emit(f.URI, fieldURI, mode),
		FileType:   emit(f.FileType, fieldFileType, mode),
		CDN:        f.CDN,
		Resolution: f.Resolution,
		Size:       f.Size,
	}
}

// emit returns the value to write for a text field: the value itself
// when set, an empty string when the field is required, nil otherwise.
func emit(v *string, f Field, mode Mode) *string {
	if v != nil {
		return v
	}
	if f.Required(mode) {
		empty := ""
		return &empty
	}
	return nil
}
