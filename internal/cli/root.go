// Package cli implements the nftmeta command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	mode      string
	format    string
	indent    string
	verbose   bool
}

var (
	flags rootFlags

	// cfg is the merged configuration, loaded before each command runs.
	cfg settings

	log = zerolog.Nop()
)

// NewRootCmd creates the top-level "nftmeta" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	cfg = settings{}
	log = zerolog.Nop()

	root := &cobra.Command{
		Use:   "nftmeta",
		Short: "Build, check and convert NFT metadata documents",
		Long: "nftmeta works with NFT metadata documents (name, description, media links,\n" +
			"attributes and asset files) under permissive, semi-strict or strict policy.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: prepare,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&flags.mode, flagMode, defaultMode, "policy mode: permissive, semi-strict or strict")
	pf.StringVar(&flags.format, flagFormat, formatJSON, "output format: json or yaml")
	pf.StringVar(&flags.indent, flagIndent, defaultIndent, "JSON indentation")
	pf.BoolVarP(&flags.verbose, flagVerbose, "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newNewCmd())
	root.AddCommand(newFileCmd())
	root.AddCommand(newShowCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd()))
}

// run executes root, reports a failure on its error stream and returns
// the process exit code.
func run(root *cobra.Command) int {
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	return exitCode(err)
}

// prepare loads configuration and sets up logging. The version command
// needs neither.
func prepare(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	dir, err := resolveConfigDir()
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	v, err := loadConfig(dir, cmd.Root().PersistentFlags())
	if err != nil {
		return sysError(fmt.Errorf("load config: %w", err))
	}

	s, err := settingsFrom(v)
	if err != nil {
		return userError(err)
	}
	cfg = s
	log = newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	log.Debug().
		Str("config_dir", dir).
		Str("config_file", v.ConfigFileUsed()).
		Stringer("mode", cfg.Mode).
		Str("format", cfg.Format).
		Msg("configuration loaded")
	return nil
}
