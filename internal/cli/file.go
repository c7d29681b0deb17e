package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nftmeta/internal/probe"
)

func newFileCmd() *cobra.Command {
	var (
		uri string
		cdn bool
	)

	cmd := &cobra.Command{
		Use:   "file PATH",
		Short: "Describe a local file as an asset file entry",
		Long: "Detect the MIME type, size and image resolution of a local file and print\n" +
			"the resulting AssetFile record. The URI defaults to a file:// URI.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := probe.Options{URI: uri}
			if cmd.Flags().Changed("cdn") {
				opts.CDN = &cdn
			}
			asset, err := probe.File(args[0], opts)
			if err != nil {
				return inputError(err)
			}
			log.Debug().Str("path", args[0]).Str("type", asset.GetFileType()).Uint64("size", asset.GetSize()).Msg("probed")
			return writeRecord(cmd, asset)
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "", "published URI of the file")
	cmd.Flags().BoolVar(&cdn, "cdn", false, "mark the file as served from a CDN")
	return cmd
}
