package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of docchat",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docchat %s\n", resolveVersion())
	},
}

// resolveVersion falls back to the module version recorded by `go install`
// when no ldflags version was injected.
func resolveVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
