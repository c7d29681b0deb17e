package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nftmeta/pkg/metadata"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print a human-readable summary of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMetadata(cmd, args[0], metadata.ModePermissive)
			if err != nil {
				return err
			}
			printMetadata(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

func printMetadata(w io.Writer, m metadata.Metadata) {
	field := func(label string, v *string) {
		if v != nil {
			fmt.Fprintf(w, "%-14s %s\n", label+":", *v)
		}
	}
	field("Name", m.Name)
	field("Description", m.Description)
	field("Image", m.Image)
	field("Animation URL", m.AnimationURL)
	field("External URL", m.ExternalURL)

	if m.Attributes != nil {
		fmt.Fprintf(w, "Attributes:    %d\n", len(m.Attributes))
		for _, a := range m.Attributes {
			fmt.Fprintf(w, "  %s: %s\n", a.GetTraitType(), a.GetValue())
		}
	}

	if m.Properties == nil {
		return
	}
	p := m.Properties
	field("Category", p.Category)
	if p.Files == nil {
		return
	}
	var total uint64
	for _, f := range p.Files {
		total += f.GetSize()
	}
	fmt.Fprintf(w, "Files:         %d (%s)\n", len(p.Files), humanize.Bytes(total))
	for _, f := range p.Files {
		fmt.Fprintf(w, "  %s\n", describeFile(f))
	}
}

func describeFile(f metadata.AssetFile) string {
	var parts []string
	if f.FileType != nil {
		parts = append(parts, f.GetFileType())
	}
	if f.Size != nil {
		parts = append(parts, humanize.Bytes(f.GetSize()))
	}
	if f.Resolution != nil {
		parts = append(parts, f.GetResolution())
	}
	if f.IsCDN() {
		parts = append(parts, "cdn")
	}
	if len(parts) == 0 {
		return f.GetURI()
	}
	return fmt.Sprintf("%s (%s)", f.GetURI(), strings.Join(parts, ", "))
}
