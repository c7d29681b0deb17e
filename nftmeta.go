// Package nftmeta holds module-level constants for the nftmeta schema library.
package nftmeta

// Version is the release version reported by the nftmeta CLI.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/nftmeta"
