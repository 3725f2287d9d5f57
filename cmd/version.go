package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags
var Version = "0.1.0"

// newVersionCommand creates the version command
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pyforge version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pyforge %s\n", Version)
		},
	}
}
