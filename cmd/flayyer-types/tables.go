package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-flayyer/pkg/agent"
	"github.com/goliatone/go-flayyer/pkg/sizes"
)

var tablesJSON bool

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "List the output size presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tablesJSON {
			return writeJSON(cmd.OutOrStdout(), sizes.All())
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tWIDTH\tHEIGHT")
		for _, name := range sizes.Names() {
			size := sizes.MustLookup(name)
			fmt.Fprintf(w, "%s\t%d\t%d\n", name, size.Width, size.Height)
		}
		fmt.Fprintf(w, "%s\t-\t-\n", sizes.Free)
		return w.Flush()
	},
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the recognized crawler agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tablesJSON {
			return writeJSON(cmd.OutOrStdout(), agent.Names())
		}
		for _, name := range agent.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	sizesCmd.Flags().BoolVar(&tablesJSON, "json", false, "Print JSON")
	agentsCmd.Flags().BoolVar(&tablesJSON, "json", false, "Print JSON")
}
