package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nftmeta/pkg/metadata"
)

func newConvertCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Re-encode a document under another mode or format",
		Long: "Read a document under the --from mode and write it under --mode in --format.\n" +
			"Required fields of the output mode that the input lacks are written empty.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inMode, err := metadata.ParseMode(from)
			if err != nil {
				return userError(fmt.Errorf("--from: %w", err))
			}

			m, err := readMetadata(cmd, args[0], inMode)
			if err != nil {
				return err
			}
			if err := m.Validate(cfg.Mode); err != nil {
				log.Warn().Err(err).Stringer("mode", cfg.Mode).Msg("document incomplete for output mode; writing empty values")
			}
			log.Debug().Str("file", args[0]).Stringer("from", inMode).Stringer("to", cfg.Mode).Msg("converting")
			return writeRecord(cmd, m)
		},
	}

	cmd.Flags().StringVar(&from, "from", metadata.ModePermissive.String(), "mode to read the input under")
	return cmd
}
