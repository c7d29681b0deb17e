package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nftmeta/internal/probe"
	"github.com/mesh-intelligence/nftmeta/pkg/metadata"
)

// newFlags holds the values of the new command's flags.
type newFlags struct {
	name         string
	description  string
	image        string
	animationURL string
	externalURL  string
	attrs        []string
	category     string
	files        []string
}

func newNewCmd() *cobra.Command {
	var nf newFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold a metadata document",
		Long: "Build a metadata document from flags. Only flags given on the command line\n" +
			"are set; --file probes a local file for its type, size and resolution.",
		Example: "  nftmeta new --name Sword --image ipfs://abc --attr Rarity=Legendary --category image",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := buildMetadata(cmd, nf)
			if err != nil {
				return err
			}
			if err := m.Validate(cfg.Mode); err != nil {
				log.Warn().Err(err).Stringer("mode", cfg.Mode).Msg("document incomplete; writing empty values")
			}
			return writeRecord(cmd, m)
		},
	}

	f := cmd.Flags()
	f.StringVar(&nf.name, "name", "", "asset name")
	f.StringVar(&nf.description, "description", "", "asset description")
	f.StringVar(&nf.image, "image", "", "image URI")
	f.StringVar(&nf.animationURL, "animation-url", "", "animation URI")
	f.StringVar(&nf.externalURL, "external-url", "", "external URL")
	f.StringArrayVar(&nf.attrs, "attr", nil, "attribute as trait=value (repeatable)")
	f.StringVar(&nf.category, "category", "", "properties category")
	f.StringArrayVar(&nf.files, "file", nil, "local file to describe under properties.files (repeatable)")
	return cmd
}

func buildMetadata(cmd *cobra.Command, nf newFlags) (metadata.Metadata, error) {
	changed := cmd.Flags().Changed
	m := metadata.NewMetadata()

	if changed("name") {
		m = m.WithName(nf.name)
	}
	if changed("description") {
		m = m.WithDescription(nf.description)
	}
	if changed("image") {
		m = m.WithImage(nf.image)
	}
	if changed("animation-url") {
		m = m.WithAnimationURL(nf.animationURL)
	}
	if changed("external-url") {
		m = m.WithExternalURL(nf.externalURL)
	}

	if changed("attr") {
		attrs, err := parseAttributes(nf.attrs)
		if err != nil {
			return metadata.Metadata{}, userError(err)
		}
		m = m.WithAttributes(attrs)
	}

	if changed("category") || changed("file") {
		var props metadata.Properties
		if changed("category") {
			props = props.WithCategory(nf.category)
		}
		if changed("file") {
			files := make([]metadata.AssetFile, 0, len(nf.files))
			for _, path := range nf.files {
				asset, err := probe.File(path, probe.Options{})
				if err != nil {
					return metadata.Metadata{}, inputError(err)
				}
				files = append(files, asset)
			}
			props = props.WithFiles(files)
		}
		m = m.WithProperties(props)
	}
	return m, nil
}

// parseAttributes turns trait=value pairs into attributes.
func parseAttributes(pairs []string) ([]metadata.Attribute, error) {
	attrs := make([]metadata.Attribute, 0, len(pairs))
	for _, pair := range pairs {
		trait, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("attribute %q: want trait=value", pair)
		}
		attrs = append(attrs, metadata.NewAttribute(trait, value))
	}
	return attrs, nil
}
