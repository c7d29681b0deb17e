package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/nftmeta/pkg/metadata"
)

func newSchemaCmd() *cobra.Command {
	var record string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of a record",
		Long: "Print the JSON Schema (draft-07) of a record under the selected mode.\n" +
			"Records: Metadata, Attribute, Properties, AssetFile.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := metadata.RecordSchema(record, cfg.Mode)
			if err != nil {
				if errors.Is(err, metadata.ErrUnknownRecord) {
					return userError(err)
				}
				return sysError(err)
			}

			var out []byte
			if cfg.Format == formatYAML {
				out, err = yaml.Marshal(s)
			} else {
				out, err = json.MarshalIndent(s, "", cfg.Indent)
				out = append(out, '\n')
			}
			if err != nil {
				return sysError(fmt.Errorf("encode schema: %w", err))
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&record, "record", metadata.RecordMetadata, "record to describe")
	return cmd
}
