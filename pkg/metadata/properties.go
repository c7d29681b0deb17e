package metadata

// Properties bundles the media category and auxiliary files of an asset.
type Properties struct {
	Category *string     // Media category, e.g. "image" or "video".
	Files    []AssetFile // Files in presentation order; nil when not set.
}

// NewProperties returns properties with both fields set. A nil files
// slice is stored as an empty, present sequence.
func NewProperties(category string, files []AssetFile) Properties {
	if files == nil {
		files = []AssetFile{}
	}
	return Properties{Category: &category, Files: files}
}

// WithCategory returns p with category set.
func (p Properties) WithCategory(category string) Properties {
	p.Category = &category
	return p
}

// WithFiles returns p with files set. A nil slice becomes an empty,
// present sequence.
func (p Properties) WithFiles(files []AssetFile) Properties {
	if files == nil {
		files = []AssetFile{}
	}
	p.Files = files
	return p
}

// GetCategory returns the category, or "" when unset.
func (p Properties) GetCategory() string { return deref(p.Category) }

// Validate returns a *MissingFieldError if mode requires a field p does
// not set, checking every file as well.
func (p Properties) Validate(mode Mode) error {
	if !mode.Valid() {
		return ErrUnknownMode
	}
	return p.validate(mode, "")
}

func (p Properties) validate(mode Mode, path string) error {
	if err := present(p.Category != nil, fieldCategory, mode, path); err != nil {
		return err
	}
	if err := present(p.Files != nil, fieldFiles, mode, path); err != nil {
		return err
	}
	filesPath := joinPath(path, fieldFiles.Name)
	for i, f := range p.Files {
		if err := f.validate(mode, indexPath(filesPath, i)); err != nil {
			return err
		}
	}
	return nil
}
