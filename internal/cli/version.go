package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version and Commit are set at build time via -ldflags.
//
//	go build -ldflags "-X github.com/scbrown/deliverable/internal/cli.Version=v0.1.0
//	  -X github.com/scbrown/deliverable/internal/cli.Commit=3f9e2a1"
var (
	Version = ""
	Commit  = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and commit hash",
	Long: `Print the dlvr version string.

Release builds show the tagged version, other builds show "dev". The
commit hash comes from -ldflags or, failing that, from the VCS stamp Go
embeds in the binary.

Examples:
  dlvr v0.1.0 (3f9e2a1)
  dlvr dev (3f9e2a1)`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionString(Version, Commit))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionString formats the version line, filling the commit from build
// info when none was set at link time.
func versionString(v, c string) string {
	if v == "" {
		v = "dev"
	}
	if c == "" {
		c = commitFromBuildInfo()
	}
	if c == "" {
		return "dlvr " + v
	}
	return fmt.Sprintf("dlvr %s (%s)", v, shortCommit(c))
}

// commitFromBuildInfo extracts vcs.revision from Go's embedded build info.
func commitFromBuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
