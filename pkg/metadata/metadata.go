package metadata

// Metadata is the top-level document describing one asset.
// Every field is optional except under ModeStrict.
type Metadata struct {
	Name         *string     // Name of the asset.
	Description  *string     // Description of the asset.
	Image        *string     // URI of the asset's logo or preview.
	AnimationURL *string     // URI of animated or interactive media.
	ExternalURL  *string     // URI of an external page defining the asset.
	Attributes   []Attribute // Traits in display order; nil when not set.
	Properties   *Properties // Category and auxiliary files.
}

// NewMetadata returns an empty document with every field unset.
func NewMetadata() Metadata {
	return Metadata{}
}

// WithName returns m with name set.
func (m Metadata) WithName(name string) Metadata {
	m.Name = &name
	return m
}

// WithDescription returns m with description set.
func (m Metadata) WithDescription(description string) Metadata {
	m.Description = &description
	return m
}

// WithImage returns m with image set.
func (m Metadata) WithImage(image string) Metadata {
	m.Image = &image
	return m
}

// WithAnimationURL returns m with animation_url set.
func (m Metadata) WithAnimationURL(animationURL string) Metadata {
	m.AnimationURL = &animationURL
	return m
}

// WithExternalURL returns m with external_url set.
func (m Metadata) WithExternalURL(externalURL string) Metadata {
	m.ExternalURL = &externalURL
	return m
}

// WithAttributes returns m with attributes set. The slice is stored as
// given; a nil slice becomes an empty, present sequence.
func (m Metadata) WithAttributes(attributes []Attribute) Metadata {
	if attributes == nil {
		attributes = []Attribute{}
	}
	m.Attributes = attributes
	return m
}

// WithProperties returns m with properties set.
func (m Metadata) WithProperties(properties Properties) Metadata {
	m.Properties = &properties
	return m
}

// GetName returns the name, or "" when unset.
func (m Metadata) GetName() string { return deref(m.Name) }

// GetDescription returns the description, or "" when unset.
func (m Metadata) GetDescription() string { return deref(m.Description) }

// GetImage returns the image URI, or "" when unset.
func (m Metadata) GetImage() string { return deref(m.Image) }

// GetAnimationURL returns the animation URI, or "" when unset.
func (m Metadata) GetAnimationURL() string { return deref(m.AnimationURL) }

// GetExternalURL returns the external URI, or "" when unset.
func (m Metadata) GetExternalURL() string { return deref(m.ExternalURL) }

// Validate returns a *MissingFieldError for the first field that mode
// requires and m does not set, checking nested records too.
func (m Metadata) Validate(mode Mode) error {
	if !mode.Valid() {
		return ErrUnknownMode
	}
	return m.validate(mode, "")
}

func (m Metadata) validate(mode Mode, path string) error {
	checks := []struct {
		set   bool
		field Field
	}{
		{m.Name != nil, fieldName},
		{m.Description != nil, fieldDescription},
		{m.Image != nil, fieldImage},
		{m.AnimationURL != nil, fieldAnimationURL},
		{m.ExternalURL != nil, fieldExternalURL},
		{m.Attributes != nil, fieldAttributes},
		{m.Properties != nil, fieldProperties},
	}
	for _, c := range checks {
		if err := present(c.set, c.field, mode, path); err != nil {
			return err
		}
	}
	attrPath := joinPath(path, fieldAttributes.Name)
	for i, a := range m.Attributes {
		if err := a.validate(mode, indexPath(attrPath, i)); err != nil {
			return err
		}
	}
	if m.Properties != nil {
		return m.Properties.validate(mode, joinPath(path, fieldProperties.Name))
	}
	return nil
}

// present fails when a field required under mode is not set.
func present(set bool, f Field, mode Mode, path string) error {
	if !set && f.Required(mode) {
		return missing(f, joinPath(path, f.Name))
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
