// Command nftmeta builds, checks and converts NFT metadata documents.
package main

import "github.com/mesh-intelligence/nftmeta/internal/cli"

func main() {
	cli.Execute()
}
