package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/nftmeta/internal/paths"
	"github.com/mesh-intelligence/nftmeta/pkg/metadata"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "NFTMETA"

	// Config keys; each has a persistent flag of the same name.
	flagMode    = "mode"
	flagFormat  = "format"
	flagIndent  = "indent"
	flagVerbose = "verbose"

	formatJSON = "json"
	formatYAML = "yaml"

	defaultIndent = "  "
)

var defaultMode = metadata.DefaultMode.String()

// settings is the merged view of config.yaml, environment and flags.
type settings struct {
	Mode    metadata.Mode
	Format  string
	Indent  string
	Verbose bool
}

// configFile holds the structure written to config.yaml.
type configFile struct {
	Mode    string `yaml:"mode"`
	Format  string `yaml:"format"`
	Indent  string `yaml:"indent"`
	Verbose bool   `yaml:"verbose"`
}

func defaultConfigFile() configFile {
	return configFile{
		Mode:   defaultMode,
		Format: formatJSON,
		Indent: defaultIndent,
	}
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flags.configDir)
}

// loadConfig reads config.yaml from configDir using Viper. Environment
// variables prefixed NFTMETA_ override the file and flags set on the
// command line override both. A missing config.yaml is not an error.
func loadConfig(configDir string, fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	def := defaultConfigFile()
	v.SetDefault(flagMode, def.Mode)
	v.SetDefault(flagFormat, def.Format)
	v.SetDefault(flagIndent, def.Indent)
	v.SetDefault(flagVerbose, def.Verbose)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{flagMode, flagFormat, flagIndent, flagVerbose} {
		if f := fs.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// settingsFrom validates the merged configuration.
func settingsFrom(v *viper.Viper) (settings, error) {
	mode, err := metadata.ParseMode(v.GetString(flagMode))
	if err != nil {
		return settings{}, err
	}
	format := strings.ToLower(v.GetString(flagFormat))
	if format != formatJSON && format != formatYAML {
		return settings{}, fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatYAML)
	}
	return settings{
		Mode:    mode,
		Format:  format,
		Indent:  v.GetString(flagIndent),
		Verbose: v.GetBool(flagVerbose),
	}, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether a file was written.
func writeConfigIfMissing(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	def := defaultConfigFile()
	data, err := yaml.Marshal(&def)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
