package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/nftmeta/pkg/metadata"
)

// stdinName selects standard input in place of a file name.
const stdinName = "-"

// inputFormat picks the document format from a file name. YAML files are
// recognised by extension; everything else, including stdin, is JSON.
func inputFormat(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// readInput reads a named file, or stdin when name is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, sysError(fmt.Errorf("read stdin: %w", err))
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, inputError(err)
	}
	return data, nil
}

// decodeMetadata decodes a Metadata document in the given format.
func decodeMetadata(data []byte, format string, mode metadata.Mode) (metadata.Metadata, error) {
	if format == formatYAML {
		return metadata.UnmarshalYAML[metadata.Metadata](data, mode)
	}
	return metadata.Unmarshal[metadata.Metadata](data, mode)
}

// readMetadata reads and decodes the Metadata document named by name.
func readMetadata(cmd *cobra.Command, name string, mode metadata.Mode) (metadata.Metadata, error) {
	data, err := readInput(cmd, name)
	if err != nil {
		return metadata.Metadata{}, err
	}
	m, err := decodeMetadata(data, inputFormat(name), mode)
	if err != nil {
		return metadata.Metadata{}, userError(fmt.Errorf("%s: %w", name, err))
	}
	return m, nil
}

// writeRecord encodes v under the configured mode and format to the
// command's output.
func writeRecord[T metadata.Record](cmd *cobra.Command, v T) error {
	var (
		out []byte
		err error
	)
	if cfg.Format == formatYAML {
		out, err = metadata.MarshalYAML(v, cfg.Mode)
	} else {
		out, err = metadata.MarshalIndent(v, cfg.Mode, "", cfg.Indent)
		out = append(out, '\n')
	}
	if err != nil {
		return sysError(fmt.Errorf("encode: %w", err))
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// parseTree decodes a document into a generic tree for schema validation.
func parseTree(data []byte, format string) (any, error) {
	var tree any
	if format == formatYAML {
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
		return tree, nil
	}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
