package cmd

import (
	"github.com/spf13/cobra"
	"github.com/toyz/pyforge/internal/cli"
)

// newCleanCommand creates the clean command
func newCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <directory>...",
		Short: "Remove forged test files from directories",
		Long: `Delete the test files pyforge previously generated in the given
directories. Only test_*.py files that begin with the pyforge header are
removed; hand-written tests are never touched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClean,
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	diag := newDiagnostics()
	cleaner := cli.NewCleaner(diag)

	total := 0
	for _, dir := range args {
		removed, err := cleaner.Clean(dir)
		if err != nil {
			return err
		}
		total += removed
	}

	diag.Success("removed %d forged test file(s)", total)
	return nil
}
