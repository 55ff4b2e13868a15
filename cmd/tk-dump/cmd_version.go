/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Version can be pinned at build time with -ldflags "-X main.Version=v1.2.3".  Left empty, it is
// worked out from the build info.
var Version = ""

var versionUsage = strings.TrimSpace(`
Show version information.  This is also the User-Agent sent to Tavern Keeper.
`)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  versionUsage,
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(userAgent())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// userAgent names this binary for the remote service, e.g. "tk-dump/v0.3.0".
func userAgent() string {
	if Version != "" {
		return "tk-dump/" + Version
	}
	info, ok := debug.ReadBuildInfo()
	return "tk-dump/" + buildVersion(info, ok)
}

// buildVersion prefers the module version ("go install ...@v0.3.0"), then the VCS revision the
// binary was built from, and falls back to "devel".
func buildVersion(info *debug.BuildInfo, ok bool) string {
	if !ok || info == nil {
		return "devel"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	var dirty bool
	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			revision = kv.Value
		case "vcs.modified":
			dirty = kv.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}

	if len(revision) > 12 {
		revision = revision[:12]
	}
	v := "devel-" + revision
	if dirty {
		v += "-dirty"
	}
	return v
}
