// Package cmd wires the pyforge command line. Subcommands stay thin: they
// translate flags into a cli.Config and hand off to the pipeline.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/toyz/pyforge/internal/errors"
	"github.com/toyz/pyforge/internal/utils"
)

var (
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pyforge",
	Short: "Forge pytest scaffolds from Python source files",
	Long: `pyforge inspects a Python source file, discovers its functions and
class methods, and writes a companion pytest file with one failing stub test
per callable. The stubs are syntactically complete starting points; filling
in real assertions is up to you.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and reports any failure through the
// diagnostic system. It returns a non-nil error so main can exit non-zero.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		diag := newDiagnostics()
		diag.Error("%s", err.Error())
		if forgeErr, ok := err.(errors.ForgeError); ok {
			diag.Suggestions(forgeErr.Suggestions())
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show detailed progress output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only show errors")

	rootCmd.AddCommand(
		newForgeCommand(),
		newCleanCommand(),
		newVersionCommand(),
	)
}

// newDiagnostics builds the diagnostic system from the persistent flags
func newDiagnostics() *utils.DiagnosticSystem {
	switch {
	case quiet:
		return utils.NewQuietDiagnostics()
	case verbose:
		return utils.NewVerboseDiagnostics()
	default:
		return utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
}
