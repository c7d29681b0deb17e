package metadata

// Attribute is one trait of an asset, e.g. {"trait_type": "Color", "value": "Blue"}.
type Attribute struct {
	TraitType *string // Name of the characteristic.
	Value     *string // Value of the characteristic.
}

// NewAttribute returns an attribute with both fields set.
func NewAttribute(traitType, value string) Attribute {
	return Attribute{TraitType: &traitType, Value: &value}
}

// WithTraitType returns a with trait_type set.
func (a Attribute) WithTraitType(traitType string) Attribute {
	a.TraitType = &traitType
	return a
}

// WithValue returns a with value set.
func (a Attribute) WithValue(value string) Attribute {
	a.Value = &value
	return a
}

// GetTraitType returns the trait type, or "" when unset.
func (a Attribute) GetTraitType() string { return deref(a.TraitType) }

// GetValue returns the value, or "" when unset.
func (a Attribute) GetValue() string { return deref(a.Value) }

// Validate returns a *MissingFieldError if mode requires a field a does not set.
func (a Attribute) Validate(mode Mode) error {
	if !mode.Valid() {
		return ErrUnknownMode
	}
	return a.validate(mode, "")
}

func (a Attribute) validate(mode Mode, path string) error {
	if err := present(a.TraitType != nil, fieldTraitType, mode, path); err != nil {
		return err
	}
	return present(a.Value != nil, fieldValue, mode, path)
}
