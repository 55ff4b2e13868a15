/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/toothbrush/tk-dump/internal/termfmt"
	"github.com/toothbrush/tk-dump/tavernkeeper"
	"gopkg.in/yaml.v2"
)

const defaultConfig = "~/.config/tk-dump.yaml"

var (
	// Store the result of binding cobra flags
	Config string
	Debug  bool

	// Resolved path of the config file, empty if none was read.
	ConfigActual string

	NoColor bool

	UserID    string
	SessionID string
	// Command to run to retrieve the session token, as an alternative to SessionID
	SessionCmd []string

	LocalStore string
	Host       string
	// Pause before every request
	Delay time.Duration

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "tk-dump",
	Short: "Export everything you own on Tavern Keeper",
	Long: `
Tavern Keeper won't be around forever.  This tool walks your characters and campaigns (roleplays,
messages, comments, discussions) and saves every one of them as a JSON file, plus character
portraits, in a timestamped export directory.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("tk-dump: failed to initialise config: %w", err)
		}

		termfmt.Disable(NoColor)
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: "+defaultConfig+", respects TK_DUMP_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().BoolVar(&NoColor, "no-color", false, "don't colour warnings")
	rootCmd.PersistentFlags().StringVar(&UserID, "user-id", "", "your Tavern Keeper user id")
	rootCmd.PersistentFlags().StringVar(&SessionID, "session-id", "", "value of your tavern-keeper session cookie")
	rootCmd.PersistentFlags().StringSliceVar(&SessionCmd, "session-cmd", []string{}, "shell command to retrieve the session cookie value")
	rootCmd.PersistentFlags().StringVar(&LocalStore, "store", ".", "directory in which to create the export_data_* directory")
	rootCmd.PersistentFlags().StringVar(&Host, "host", "", "Tavern Keeper host (default https://www.tavern-keeper.com)")
	rootCmd.PersistentFlags().DurationVar(&Delay, "delay", tavernkeeper.DefaultDelay, "pause before every request to Tavern Keeper")
}

func initializeConfig(cmd *cobra.Command) error {
	explicit := true
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("TK_DUMP_CONFIG")
		if envConfig != "" {
			Config = envConfig
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = defaultConfig
			explicit = false
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("tk-dump: unable to expand homedir: %w", err)
	}
	Config = config

	if _, err := os.Stat(Config); errors.Is(err, os.ErrNotExist) {
		if !explicit {
			// flags only, that's fine.
			debugLog("No config file at %s, using flags only.\n", Config)
			return nil
		}
		return fmt.Errorf("tk-dump: specified config file does not exist: %w", err)
	}

	yamlFile, err := os.ReadFile(Config)
	if err != nil {
		return fmt.Errorf("tk-dump: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("tk-dump: issue parsing config file: %w", err)
	}
	ConfigActual = Config

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("tk-dump: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	NoColor     *bool `yaml:"no-color,omitempty"`
	WithVCR     *bool `yaml:"with-vcr,omitempty"`
	Transcripts *bool `yaml:"transcripts,omitempty"`

	UserID     string   `yaml:"user-id,omitempty"`
	SessionID  string   `yaml:"session-id,omitempty"`
	SessionCmd []string `yaml:"session-cmd,omitempty"`
	StorePath  string   `yaml:"store,omitempty"`
	Host       string   `yaml:"host,omitempty"`
	Delay      string   `yaml:"delay,omitempty"`
}

// Bind each config file value onto its cobra flag, unless the flag was given on the command line.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key, _, _ := strings.Cut(field.Tag("yaml"), ",")
		if key == "" {
			return fmt.Errorf("tk-dump: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// the flag is unknown, which is fine: `config show` has no --delay but your YAML
			// file may well define one.
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr:
			// YamlConfig only uses pointers for bools.
			b, ok := field.Value().(*bool)
			if !ok {
				return fmt.Errorf("tk-dump: found unrecognised field: %+v", field)
			}
			if b != nil {
				if err := cmd.Flags().Set(key, fmt.Sprintf("%v", *b)); err != nil {
					return fmt.Errorf("tk-dump: bad value for %s: %w", key, err)
				}
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("tk-dump: found unrecognised field: %+v", field)
			}
			if s != "" {
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("tk-dump: bad value for %s: %w", key, err)
				}
			}

		case reflect.Slice:
			ss, ok := field.Value().([]string)
			if !ok {
				return fmt.Errorf("tk-dump: found unrecognised field: %+v", field)
			}
			for _, s := range ss {
				// yes, repeatedly calling Set() appends to the slice...
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("tk-dump: bad value for %s: %w", key, err)
				}
			}

		default:
			return fmt.Errorf("tk-dump: found unrecognised field: %+v", field)
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("tk-dump: execution error: %w", err)
	}

	return nil
}
