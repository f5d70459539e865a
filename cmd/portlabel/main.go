// portlabel applies interface descriptions from a spreadsheet to a switch.
//
// Usage:
//
//	portlabel apply --target <switch> --username <user> --file <table>
//	portlabel version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "portlabel",
		Short:             "Bulk interface description updates for network switches",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		Long: `portlabel reads (description, interface) rows from an XLSX or CSV table,
opens an SSH session to the switch (falling back to Telnet), sets each
interface description and writes the per-row status back into the table.

  portlabel apply --target 10.0.0.1 --username admin --file ports.xlsx`,
	}
	root.AddCommand(newApplyCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "portlabel %s (built %s)\n", version, buildTime)
		},
	}
}
