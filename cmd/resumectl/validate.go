package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mycv/internal/resume"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a document against the resume schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, raw, err := readDocument(args[0])
		if err != nil {
			return err
		}
		if err := resume.Validate(raw); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
