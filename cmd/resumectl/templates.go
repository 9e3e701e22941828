package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mycv/internal/render"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the layout gallery",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, lay := range render.Templates() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-4s %-18s %s\n", lay.ID, lay.Name, lay.Skeleton)
		}
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
