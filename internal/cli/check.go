package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nftmeta/internal/conformance"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate metadata documents",
		Long: "Decode each document under the selected mode and validate it against the\n" +
			"exported JSON Schema. Prints ok or one line per problem; exits 1 if any\n" +
			"document fails. Use - to read JSON from stdin.",
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	validator, err := conformance.New(cfg.Mode)
	if err != nil {
		return sysError(fmt.Errorf("build validator: %w", err))
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, name := range args {
		data, err := readInput(cmd, name)
		if err != nil {
			return err
		}
		format := inputFormat(name)

		ok := true
		if _, err := decodeMetadata(data, format, cfg.Mode); err != nil {
			fmt.Fprintf(out, "%s: %v\n", name, err)
			ok = false
		}

		if tree, err := parseTree(data, format); err == nil {
			report, err := validator.ValidateTree(tree)
			if err != nil {
				// The tree came from the user's document, e.g. a YAML
				// mapping with non-string keys has no JSON form.
				return userError(fmt.Errorf("%s: validate: %w", name, err))
			}
			for _, p := range report.Problems {
				fmt.Fprintf(out, "%s: schema: %s\n", name, p)
				ok = false
			}
		}

		log.Debug().Str("file", name).Bool("ok", ok).Stringer("mode", cfg.Mode).Msg("checked")
		if ok {
			fmt.Fprintf(out, "%s: ok\n", name)
		} else {
			failed++
		}
	}

	if failed > 0 {
		return userError(fmt.Errorf("%d of %d documents failed under %s", failed, len(args), cfg.Mode))
	}
	return nil
}
