// Package probe builds AssetFile entries from files on local disk.
package probe

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/mesh-intelligence/nftmeta/pkg/metadata"
)

// headerSize is how many leading bytes filetype needs to match.
const headerSize = 262

// DefaultType is reported when neither the content nor the extension
// identifies the file.
const DefaultType = "application/octet-stream"

// ErrNotRegular is returned for directories, devices and other
// non-regular files.
var ErrNotRegular = errors.New("not a regular file")

// Options tune the AssetFile that File builds.
type Options struct {
	URI string // Published location. Defaults to a file:// URI of the absolute path.
	CDN *bool  // Sets the cdn flag when non-nil.
}

// File opens path and returns an AssetFile with the detected MIME type,
// the byte size and, for PNG, JPEG and GIF images, the resolution.
func File(path string, opts Options) (metadata.AssetFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return metadata.AssetFile{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return metadata.AssetFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return metadata.AssetFile{}, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return metadata.AssetFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	fileType := DetectType(head[:n], path)

	uri := opts.URI
	if uri == "" {
		if uri, err = fileURI(path); err != nil {
			return metadata.AssetFile{}, err
		}
	}

	asset := metadata.NewAssetFile(uri, fileType).WithSize(uint64(info.Size()))
	if strings.HasPrefix(fileType, "image/") {
		if res, ok := resolution(f); ok {
			asset = asset.WithResolution(res)
		}
	}
	if opts.CDN != nil {
		asset.SetCDN(*opts.CDN)
	}
	return asset, nil
}

// DetectType returns the MIME type of a file from its leading bytes,
// falling back to the extension of name and then to DefaultType.
func DetectType(head []byte, name string) string {
	kind, err := filetype.Match(head)
	if err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		if media, _, err := mime.ParseMediaType(t); err == nil {
			return media
		}
		return t
	}
	return DefaultType
}

func resolution(r io.ReadSeeker) (string, bool) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", false
	}
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), true
}

func fileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
