package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dittory/dittory/internal/analyzer"
	"github.com/dittory/dittory/internal/config"
	"github.com/dittory/dittory/internal/report"
	"github.com/dittory/dittory/pkg/dittory"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dittory [directory]",
	Short: "Find parameters always supplied with the same value",
	Long: `dittory is a whole-program static analyzer for TypeScript/TSX that
detects parameters of exported functions, class methods, and UI
component props that are always supplied with the same literal value
at every call site across a codebase.

Such parameters are candidates to be removed, fixed to a constant, or
converted to a default — dittory is a refactoring advisor, not a
linter that rewrites code.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runAnalyze,
}

var flags = config.Defaults()

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.Flags().IntVar(&flags.MinUsages, "min", flags.MinUsages, "minimum call sites a parameter must appear at to be reportable")
	rootCmd.Flags().StringVar(&flags.Target, "target", flags.Target, "which declarations to analyze: all|components|functions")
	rootCmd.Flags().StringVar(&flags.Output, "output", flags.Output, "report format: simple|verbose")
	rootCmd.Flags().StringVar(&flags.Tsconfig, "tsconfig", flags.Tsconfig, "path to tsconfig.json (defaults to the compiler's built-in options)")
	rootCmd.Flags().StringSliceVar(&flags.Exclude, "exclude", nil, "additional glob patterns to exclude, beyond the built-in test/story filter")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	dir := flags.Directory
	if len(args) == 1 {
		dir = args[0]
	}

	fileConfig, err := config.Load(".")
	if err != nil {
		return exitError(err)
	}
	resolved := applyUnsetFlags(cmd, flags, fileConfig)
	resolved.Directory = dir

	if err := resolved.Validate(); err != nil {
		return exitError(err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "analyzing %s (min=%d target=%s)\n", resolved.Directory, resolved.MinUsages, resolved.Target)
	}

	engine, err := dittory.New(
		dittory.WithMinUsages(resolved.MinUsages),
		dittory.WithTarget(targetFromString(resolved.Target)),
		dittory.WithAllowedValueKinds(resolved.AllowedValueKinds...),
		dittory.WithExclude(resolved.Exclude...),
		dittory.WithTsconfig(resolved.Tsconfig),
	)
	if err != nil {
		return exitError(err)
	}

	result, err := engine.Analyze(resolved.Directory)
	if err != nil {
		return exitError(err)
	}

	if err := report.Write(os.Stdout, resolved.Output, result.ConstantParams); err != nil {
		return exitError(err)
	}
	return nil
}

// applyUnsetFlags overlays the config file on top of defaults, but only
// for flags the user did not pass explicitly on the command line —
// implementing spec.md §6's "CLI flags > config file > defaults".
func applyUnsetFlags(cmd *cobra.Command, current config.Options, file *config.File) config.Options {
	merged := config.Defaults().ApplyFile(file)
	if cmd.Flags().Changed("min") {
		merged.MinUsages = current.MinUsages
	}
	if cmd.Flags().Changed("target") {
		merged.Target = current.Target
	}
	if cmd.Flags().Changed("output") {
		merged.Output = current.Output
	}
	if cmd.Flags().Changed("tsconfig") {
		merged.Tsconfig = current.Tsconfig
	}
	if cmd.Flags().Changed("exclude") {
		merged.Exclude = current.Exclude
	}
	return merged
}

func targetFromString(s string) analyzer.Target {
	switch s {
	case "components":
		return analyzer.TargetComponents
	case "functions":
		return analyzer.TargetFunctions
	default:
		return analyzer.TargetAll
	}
}

// exitError formats err for the CLI boundary (spec.md §7's
// configuration/validation and fatal-runtime error surfaces), silences
// cobra's own usage/error printing for a runtime failure, and ensures
// Execute() reports it through a non-zero exit code.
func exitError(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	return err
}
