/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configUsage = strings.TrimSpace(`
Commands in this namespace help you check which settings an export would run with, and which file
they came from.
`)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to work with the app config",
	Long:  configUsage,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config as YAML",
	Long: strings.TrimSpace(`
Print the settings in effect after merging the config file and command line flags.  The output is
itself a valid config file.  The session id is redacted.
`),
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(effectiveConfig())
		if err != nil {
			return fmt.Errorf("config: couldn't render config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

var configWhichCmd = &cobra.Command{
	Use:   "which",
	Short: "Print the resolved config path",
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		if ConfigActual == "" {
			fmt.Printf("No config file in use (looked for %s)\n", Config)
			return
		}
		fmt.Println(ConfigActual)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configWhichCmd)
}

// effectiveConfig collects the persistent settings as they are now.  Settings that only export
// commands have a flag for are reported as the config file has them.
func effectiveConfig() YamlConfig {
	noColor := NoColor
	c := YamlConfig{
		NoColor:     &noColor,
		WithVCR:     ParsedConfig.WithVCR,
		Transcripts: ParsedConfig.Transcripts,
		UserID:      UserID,
		SessionCmd:  SessionCmd,
		StorePath:   LocalStore,
		Host:        Host,
		Delay:       Delay.String(),
	}
	if SessionID != "" {
		c.SessionID = "REDACTED"
	}
	return c
}
