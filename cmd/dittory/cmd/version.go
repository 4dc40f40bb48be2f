package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display detailed version information including commit hash, build date, and the TypeScript AST service dittory was built against.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dittory version %s\n", Version)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Printf("Go: %s\n", runtime.Version())
		fmt.Printf("TypeScript service: %s\n", typescriptGoVersion())
	},
}

// typescriptGoVersion reports the resolved version of the
// microsoft/typescript-go module dittory's AST service is built
// against, read from the binary's own build info rather than
// hardcoded, so it tracks go.mod without a second place to update.
func typescriptGoVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == "github.com/microsoft/typescript-go" {
			return dep.Version
		}
	}
	return "unknown"
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
