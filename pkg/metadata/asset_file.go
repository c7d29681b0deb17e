package metadata

// AssetFile references one file associated with the asset. FileType is
// written as "type" on the wire.
type AssetFile struct {
	URI        *string // File location.
	FileType   *string // MIME type or category of the file.
	CDN        *bool   // True if served from a CDN; nil means unknown.
	Resolution *string // e.g. "1920x1080".
	Size       *uint64 // Size in bytes.
}

// NewAssetFile returns a file reference with uri and type set and the
// optional hints unset.
func NewAssetFile(uri, fileType string) AssetFile {
	return AssetFile{URI: &uri, FileType: &fileType}
}

// WithURI returns f with uri set.
func (f AssetFile) WithURI(uri string) AssetFile {
	f.URI = &uri
	return f
}

// WithFileType returns f with type set.
func (f AssetFile) WithFileType(fileType string) AssetFile {
	f.FileType = &fileType
	return f
}

// SetCDN overwrites the cdn flag. The flag is always present afterwards.
func (f *AssetFile) SetCDN(cdn bool) {
	f.CDN = &cdn
}

// WithCDN returns f marked as served from a CDN.
func (f AssetFile) WithCDN() AssetFile {
	f.SetCDN(true)
	return f
}

// WithResolution returns f with resolution set.
func (f AssetFile) WithResolution(resolution string) AssetFile {
	f.Resolution = &resolution
	return f
}

// WithSize returns f with size set.
func (f AssetFile) WithSize(size uint64) AssetFile {
	f.Size = &size
	return f
}

// GetURI returns the URI, or "" when unset.
func (f AssetFile) GetURI() string { return deref(f.URI) }

// GetFileType returns the file type, or "" when unset.
func (f AssetFile) GetFileType() string { return deref(f.FileType) }

// GetResolution returns the resolution, or "" when unset.
func (f AssetFile) GetResolution() string { return deref(f.Resolution) }

// GetSize returns the size in bytes, or 0 when unset.
func (f AssetFile) GetSize() uint64 { return deref(f.Size) }

// IsCDN reports whether the file is known to be CDN-served. An unset
// flag reads as false.
func (f AssetFile) IsCDN() bool { return deref(f.CDN) }

// Validate returns a *MissingFieldError if mode requires a field f does not set.
func (f AssetFile) Validate(mode Mode) error {
	if !mode.Valid() {
		return ErrUnknownMode
	}
	return f.validate(mode, "")
}

func (f AssetFile) validate(mode Mode, path string) error {
	checks := []struct {
		set   bool
		field Field
	}{
		{f.URI != nil, fieldURI},
		{f.FileType != nil, fieldFileType},
		{f.CDN != nil, fieldCDN},
		{f.Resolution != nil, fieldResolution},
		{f.Size != nil, fieldSize},
	}
	for _, c := range checks {
		if err := present(c.set, c.field, mode, path); err != nil {
			return err
		}
	}
	return nil
}
