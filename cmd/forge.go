package cmd

import (
	"github.com/spf13/cobra"
	"github.com/toyz/pyforge/internal/cli"
)

var (
	forgeFunction  string
	forgeOutput    string
	forgeOverwrite bool
)

// newForgeCommand creates the forge command
func newForgeCommand() *cobra.Command {
	forgeCmd := &cobra.Command{
		Use:   "forge <source.py>",
		Short: "Generate a pytest scaffold for a Python source file",
		Long: `Analyze a Python source file and write test_<stem>.py into the output
directory, with one stub test per module-level function and class method.

An existing test file is left alone unless --overwrite is given; the run
still succeeds so repeated invocations are safe. Callables marked with a
'# forge::skip' comment on the preceding line are excluded, and
'# forge::name <identifier>' renames the generated test.`,
		Args: cobra.ExactArgs(1),
		RunE: runForge,
	}

	forgeCmd.Flags().StringVarP(&forgeFunction, "function", "f", "", "only forge a test for the named callable")
	forgeCmd.Flags().StringVarP(&forgeOutput, "output", "o", "", "output directory (default: [tool.pyforge] in pyproject.toml, then 'tests')")
	forgeCmd.Flags().BoolVarP(&forgeOverwrite, "overwrite", "w", false, "replace an existing test file")

	return forgeCmd
}

func runForge(cmd *cobra.Command, args []string) error {
	diag := newDiagnostics()
	forger := cli.NewForger(diag)

	summary, err := forger.Run(&cli.Config{
		SourcePath:   args[0],
		FunctionName: forgeFunction,
		OutputDir:    forgeOutput,
		Overwrite:    forgeOverwrite,
	})
	if err != nil {
		return err
	}

	if verbose && summary.Written {
		diag.Summary("Forge summary", map[string]interface{}{
			"callables found": summary.CallablesFound,
			"skipped":         summary.Skipped,
			"filtered out":    summary.Filtered,
			"tests forged":    summary.TestsForged,
			"output":          summary.OutputPath,
		})
	}
	return nil
}
